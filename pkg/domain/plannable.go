package domain

import (
	"fmt"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// PlannableType tags what is scheduled in a meal plan.
type PlannableType string

const (
	PlannableRecipe PlannableType = "recipe"
	PlannableItem   PlannableType = "item"
)

func AsPlannableType(s string) (PlannableType, error) {
	switch t := PlannableType(s); t {
	case PlannableRecipe, PlannableItem:
		return t, nil
	}
	return "", fmt.Errorf(
		"%w: plannable type should be one of %q or %q: %q",
		domerr.ErrInvalidParam, PlannableRecipe, PlannableItem, s,
	)
}

// Plannable is a polymorphic reference to a Recipe or an Item.
type Plannable struct {
	Type PlannableType
	Id   int64

	// display name. It is filled by repositories on read.
	Name string
}

func (p Plannable) SameAs(o Plannable) bool {
	return p.Type == o.Type && p.Id == o.Id
}

func (p Plannable) String() string {
	return fmt.Sprintf("%s:%d", p.Type, p.Id)
}
