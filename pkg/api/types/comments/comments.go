package comments

import "github.com/opst/mealplanner/pkg/utils/rfctime"

type Detail struct {
	Id        int64           `json:"id"`
	UserId    int64           `json:"userId"`
	On        On              `json:"on"`
	Body      string          `json:"body"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt rfctime.RFC3339 `json:"updatedAt"`
}

// On is what a comment is attached to.
//
// Type is "recipe" or "meal_plan".
type On struct {
	Type string `json:"type"`
	Id   int64  `json:"id"`
}

type Param struct {
	Body string `json:"body"`
}
