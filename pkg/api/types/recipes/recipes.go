package recipes

import (
	"github.com/opst/mealplanner/pkg/api/types/catalog"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
)

type Summary struct {
	Id       int64  `json:"id"`
	UserId   int64  `json:"userId"`
	Name     string `json:"name"`
	Servings int    `json:"servings"`
}

type Line struct {
	Id         int64         `json:"id"`
	Ingredient catalog.Entry `json:"ingredient"`
	Quantity   string        `json:"quantity"`
	Unit       string        `json:"unit,omitempty"`
}

type Detail struct {
	Summary
	Description  string          `json:"description"`
	Instructions string          `json:"instructions"`
	Ingredients  []Line          `json:"ingredients"`
	CreatedAt    rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt    rfctime.RFC3339 `json:"updatedAt"`
}

// IngredientRef refers an ingredient by id, or by name.
//
// An ingredient referred by name is created when it is not in the catalog.
type IngredientRef struct {
	Id   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type LineParam struct {
	Ingredient IngredientRef `json:"ingredient"`
	Quantity   string        `json:"quantity"`
	Unit       string        `json:"unit,omitempty"`
}

type Param struct {
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Instructions string      `json:"instructions,omitempty"`
	Servings     int         `json:"servings,omitempty"`
	Ingredients  []LineParam `json:"ingredients"`
}
