// Package catalog declares wire types of ingredients and items.
//
// Both are shaped the same way.
package catalog

import "github.com/opst/mealplanner/pkg/utils/rfctime"

type Entry struct {
	Id        int64           `json:"id"`
	Name      string          `json:"name"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func (e Entry) Equal(o Entry) bool {
	return e.Id == o.Id && e.Name == o.Name && e.CreatedAt.Equal(o.CreatedAt)
}

// find-or-create, or rename.
type Param struct {
	Name string `json:"name"`
}
