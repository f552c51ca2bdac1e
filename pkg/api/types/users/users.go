package users

import "github.com/opst/mealplanner/pkg/utils/rfctime"

type Detail struct {
	Id        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Admin     bool            `json:"admin"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Name == o.Name &&
		d.Email == o.Email &&
		d.Admin == o.Admin &&
		d.CreatedAt.Equal(o.CreatedAt)
}

// Create or update a user. Admin only.
type Param struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}
