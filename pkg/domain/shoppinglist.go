package domain

import (
	"strings"
	"time"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

type ShoppingListEntry struct {
	Id          int64
	UserId      int64
	Purchasable Purchasable
	Quantity    Quantity
	Purchased   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pending tells the entry is not purchased yet.
//
// A user has at most one pending entry per Purchasable.
func (e ShoppingListEntry) Pending() bool {
	return !e.Purchased
}

// Requirement is a request to buy some quantity of a Purchasable.
type Requirement struct {
	Purchasable Purchasable
	Quantity    Quantity
}

// Merge returns the quantity of entry after the requirement is merged into.
//
// It fails with ErrConflict when entry is purchased or points other Purchasable,
// since purchased entries are kept as history and are never merged into.
func (e ShoppingListEntry) Merge(r Requirement) (ShoppingListEntry, error) {
	if e.Purchased {
		return ShoppingListEntry{}, domerr.ErrConflict
	}
	if !e.Purchasable.SameAs(r.Purchasable) {
		return ShoppingListEntry{}, domerr.ErrConflict
	}
	e.Quantity = e.Quantity.Add(r.Quantity)
	return e, nil
}

// MergeRequirements squashes requirements for the same Purchasable, keeping order of first appearance.
func MergeRequirements(reqs []Requirement) []Requirement {
	ret := make([]Requirement, 0, len(reqs))
	index := map[Purchasable]int{}
	for _, r := range reqs {
		key := Purchasable{Type: r.Purchasable.Type, Id: r.Purchasable.Id}
		if nth, ok := index[key]; ok {
			ret[nth].Quantity = ret[nth].Quantity.Add(r.Quantity)
			continue
		}
		index[key] = len(ret)
		ret = append(ret, r)
	}
	return ret
}

// ShoppingListAddParam is a request from a client to add something to the list.
type ShoppingListAddParam struct {
	Purchasable PurchasableRef

	// amount expression. See ParseQuantity.
	Quantity string
	Unit     string
}

func (p ShoppingListAddParam) Validate() (ShoppingListAddParam, Quantity, error) {
	ref, err := p.Purchasable.Validate()
	if err != nil {
		return ShoppingListAddParam{}, Quantity{}, err
	}
	p.Purchasable = ref

	q, err := ParseQuantity(p.Quantity)
	if err != nil {
		return ShoppingListAddParam{}, Quantity{}, domerr.NewInvalidParam("quantity", err.Error())
	}
	if q.Amount <= 0 {
		return ShoppingListAddParam{}, Quantity{}, domerr.NewInvalidParam("quantity", "should be positive")
	}
	if u := strings.TrimSpace(p.Unit); u != "" {
		q.Unit = MergeUnits(u, q.Unit)
	}
	return p, q, nil
}

// ShoppingListUpdate changes an entry. nil fields are left as they are.
type ShoppingListUpdate struct {
	Quantity  *Quantity
	Purchased *bool
}

type ShoppingListFindQuery struct {
	// nil means both.
	Purchased *bool
}
