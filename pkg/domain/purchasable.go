package domain

import (
	"fmt"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// PurchasableType tags which catalog a Purchasable points.
type PurchasableType string

const (
	PurchasableItem       PurchasableType = "item"
	PurchasableIngredient PurchasableType = "ingredient"
)

func AsPurchasableType(s string) (PurchasableType, error) {
	switch t := PurchasableType(s); t {
	case PurchasableItem, PurchasableIngredient:
		return t, nil
	}
	return "", fmt.Errorf(
		"%w: purchasable type should be one of %q or %q: %q",
		domerr.ErrInvalidParam, PurchasableItem, PurchasableIngredient, s,
	)
}

// Purchasable is a polymorphic reference to an Item or an Ingredient.
type Purchasable struct {
	Type PurchasableType
	Id   int64

	// display name. It is filled by repositories on read.
	Name string
}

// SameAs tells p and o point the same catalog entry.
func (p Purchasable) SameAs(o Purchasable) bool {
	return p.Type == o.Type && p.Id == o.Id
}

func (p Purchasable) String() string {
	return fmt.Sprintf("%s:%d", p.Type, p.Id)
}

// PurchasableRef is how a client refers a Purchasable.
//
// Either (Type, Id) or Name should be set.
// A Name is resolved by find-or-create of an Item.
type PurchasableRef struct {
	Type PurchasableType
	Id   int64
	Name string
}

func (r PurchasableRef) Validate() (PurchasableRef, error) {
	if r.Type != "" || r.Id != 0 {
		if r.Name != "" {
			return PurchasableRef{}, domerr.NewInvalidParam(
				"purchasable", "either type+id or name should be set, not both",
			)
		}
		if _, err := AsPurchasableType(string(r.Type)); err != nil {
			return PurchasableRef{}, err
		}
		if r.Id <= 0 {
			return PurchasableRef{}, domerr.NewInvalidParam("purchasable.id", "should be positive")
		}
		return r, nil
	}

	name, err := NormalizeName(r.Name)
	if err != nil {
		return PurchasableRef{}, domerr.NewInvalidParam(
			"purchasable", "either type+id or name should be set",
		)
	}
	r.Name = name
	return r, nil
}

// ByName tells the reference should be resolved by name.
func (r PurchasableRef) ByName() bool {
	return r.Type == "" && r.Name != ""
}
