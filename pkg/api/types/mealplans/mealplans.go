package mealplans

import (
	"github.com/opst/mealplanner/pkg/api/types/shopping"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
)

// Plannable is what a meal plan schedules.
//
// Type is "recipe" or "item".
type Plannable struct {
	Type string `json:"type"`
	Id   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type Detail struct {
	Id        int64           `json:"id"`
	UserId    int64           `json:"userId"`
	Date      rfctime.Date    `json:"date"`
	Slot      string          `json:"slot"`
	Plannable Plannable       `json:"plannable"`
	Servings  *int            `json:"servings,omitempty"`
	Note      string          `json:"note,omitempty"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt rfctime.RFC3339 `json:"updatedAt"`
}

type Param struct {
	Date      rfctime.Date `json:"date"`
	Slot      string       `json:"slot"`
	Plannable Plannable    `json:"plannable"`
	Servings  *int         `json:"servings,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// Result of adding a meal plan into the shopping list.
type ShoppingResult struct {
	MealPlan Detail            `json:"mealPlan"`
	Entries  []shopping.Detail `json:"entries"`
}
