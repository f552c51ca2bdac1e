package domain

import (
	"strings"
	"time"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

type Recipe struct {
	Id           int64
	UserId       int64
	Name         string
	Description  string
	Instructions string
	Servings     int
	Ingredients  []RecipeIngredient
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeIngredient is an ingredient line of a recipe.
type RecipeIngredient struct {
	Id         int64
	RecipeId   int64
	Ingredient Ingredient

	// amount expression, like "1 1/2". See ParseQuantity.
	Quantity string

	// unit of the line. When it is empty, a unit in Quantity is used.
	Unit string
}

// Requirement returns how much of the ingredient the line needs.
func (ri RecipeIngredient) Requirement() (Quantity, error) {
	q, err := ParseQuantity(ri.Quantity)
	if err != nil {
		return Quantity{}, err
	}
	if u := strings.TrimSpace(ri.Unit); u != "" {
		q.Unit = MergeUnits(u, q.Unit)
	}
	return q, nil
}

// IngredientRef refers an ingredient by id, or by name to find-or-create.
type IngredientRef struct {
	Id   int64
	Name string
}

type RecipeIngredientParam struct {
	Ingredient IngredientRef
	Quantity   string
	Unit       string
}

type RecipeParam struct {
	Name         string
	Description  string
	Instructions string

	// 0 means default (1).
	Servings    int
	Ingredients []RecipeIngredientParam
}

// Validate normalizes and checks the parameter.
func (p RecipeParam) Validate() (RecipeParam, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return RecipeParam{}, domerr.NewInvalidParam("name", "should not be empty")
	}
	if p.Servings == 0 {
		p.Servings = 1
	}
	if p.Servings < 0 {
		return RecipeParam{}, domerr.NewInvalidParam("servings", "should be positive")
	}

	lines := make([]RecipeIngredientParam, 0, len(p.Ingredients))
	for _, l := range p.Ingredients {
		if l.Ingredient.Id == 0 {
			name, err := NormalizeName(l.Ingredient.Name)
			if err != nil {
				return RecipeParam{}, domerr.NewInvalidParam(
					"ingredients", "each line should have ingredient id or name",
				)
			}
			l.Ingredient.Name = name
		} else if l.Ingredient.Id < 0 {
			return RecipeParam{}, domerr.NewInvalidParam("ingredients", "ingredient id should be positive")
		}

		l.Quantity = strings.TrimSpace(l.Quantity)
		l.Unit = strings.TrimSpace(l.Unit)
		if _, err := ParseQuantity(l.Quantity); err != nil {
			return RecipeParam{}, domerr.NewInvalidParam("ingredients.quantity", err.Error())
		}
		lines = append(lines, l)
	}
	p.Ingredients = lines
	return p, nil
}
