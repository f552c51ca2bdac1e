package domain

import (
	"strings"
	"time"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// Ingredient is a catalog entry used in recipes.
type Ingredient struct {
	Id        int64
	Name      string
	CreatedAt time.Time
}

// Item is a catalog entry which is bought (or eaten) as it is.
type Item struct {
	Id        int64
	Name      string
	CreatedAt time.Time
}

// NormalizeName trims spaces and squashes inner spaces of a catalog name.
//
// Catalog names are compared case-insensitively in database.
func NormalizeName(name string) (string, error) {
	n := strings.Join(strings.Fields(name), " ")
	if n == "" {
		return "", domerr.NewInvalidParam("name", "should not be empty")
	}
	return n, nil
}
