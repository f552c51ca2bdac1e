// Package binding composes wire types from domain types, and vice versa.
package binding

import (
	"time"

	apicatalog "github.com/opst/mealplanner/pkg/api/types/catalog"
	apicomments "github.com/opst/mealplanner/pkg/api/types/comments"
	apimealplans "github.com/opst/mealplanner/pkg/api/types/mealplans"
	apipayments "github.com/opst/mealplanner/pkg/api/types/payments"
	apirecipes "github.com/opst/mealplanner/pkg/api/types/recipes"
	apishopping "github.com/opst/mealplanner/pkg/api/types/shopping"
	apiusers "github.com/opst/mealplanner/pkg/api/types/users"
	"github.com/opst/mealplanner/pkg/domain"
	"github.com/opst/mealplanner/pkg/utils"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
)

func ComposeUser(u domain.User) apiusers.Detail {
	return apiusers.Detail{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		Admin:     u.Admin,
		CreatedAt: rfctime.RFC3339(u.CreatedAt),
	}
}

func UserParam(p apiusers.Param) domain.UserParam {
	return domain.UserParam{Name: p.Name, Email: p.Email, Admin: p.Admin}
}

func ComposeIngredient(i domain.Ingredient) apicatalog.Entry {
	return apicatalog.Entry{Id: i.Id, Name: i.Name, CreatedAt: rfctime.RFC3339(i.CreatedAt)}
}

func ComposeItem(i domain.Item) apicatalog.Entry {
	return apicatalog.Entry{Id: i.Id, Name: i.Name, CreatedAt: rfctime.RFC3339(i.CreatedAt)}
}

func ComposeRecipeSummary(r domain.Recipe) apirecipes.Summary {
	return apirecipes.Summary{
		Id:       r.Id,
		UserId:   r.UserId,
		Name:     r.Name,
		Servings: r.Servings,
	}
}

func ComposeRecipe(r domain.Recipe) apirecipes.Detail {
	return apirecipes.Detail{
		Summary:      ComposeRecipeSummary(r),
		Description:  r.Description,
		Instructions: r.Instructions,
		Ingredients: utils.Map(r.Ingredients, func(l domain.RecipeIngredient) apirecipes.Line {
			return apirecipes.Line{
				Id:         l.Id,
				Ingredient: ComposeIngredient(l.Ingredient),
				Quantity:   l.Quantity,
				Unit:       l.Unit,
			}
		}),
		CreatedAt: rfctime.RFC3339(r.CreatedAt),
		UpdatedAt: rfctime.RFC3339(r.UpdatedAt),
	}
}

func RecipeParam(p apirecipes.Param) domain.RecipeParam {
	return domain.RecipeParam{
		Name:         p.Name,
		Description:  p.Description,
		Instructions: p.Instructions,
		Servings:     p.Servings,
		Ingredients: utils.Map(p.Ingredients, func(l apirecipes.LineParam) domain.RecipeIngredientParam {
			return domain.RecipeIngredientParam{
				Ingredient: domain.IngredientRef{Id: l.Ingredient.Id, Name: l.Ingredient.Name},
				Quantity:   l.Quantity,
				Unit:       l.Unit,
			}
		}),
	}
}

func ComposeMealPlan(m domain.MealPlan) apimealplans.Detail {
	return apimealplans.Detail{
		Id:     m.Id,
		UserId: m.UserId,
		Date:   rfctime.DateOf(m.Date),
		Slot:   string(m.Slot),
		Plannable: apimealplans.Plannable{
			Type: string(m.Plannable.Type),
			Id:   m.Plannable.Id,
			Name: m.Plannable.Name,
		},
		Servings:  m.Servings,
		Note:      m.Note,
		CreatedAt: rfctime.RFC3339(m.CreatedAt),
		UpdatedAt: rfctime.RFC3339(m.UpdatedAt),
	}
}

// MealPlanParam converts a wire parameter. Its validation is left to domain.MealPlanParam.Validate.
func MealPlanParam(p apimealplans.Param) domain.MealPlanParam {
	return domain.MealPlanParam{
		Date: p.Date.Time(),
		Slot: domain.Slot(p.Slot),
		Plannable: domain.Plannable{
			Type: domain.PlannableType(p.Plannable.Type),
			Id:   p.Plannable.Id,
		},
		Servings: p.Servings,
		Note:     p.Note,
	}
}

func ComposeShoppingListEntry(e domain.ShoppingListEntry) apishopping.Detail {
	return apishopping.Detail{
		Id:     e.Id,
		UserId: e.UserId,
		Purchasable: apishopping.Purchasable{
			Type: string(e.Purchasable.Type),
			Id:   e.Purchasable.Id,
			Name: e.Purchasable.Name,
		},
		Quantity:  e.Quantity.Amount,
		Unit:      e.Quantity.Unit,
		Purchased: e.Purchased,
		CreatedAt: rfctime.RFC3339(e.CreatedAt),
		UpdatedAt: rfctime.RFC3339(e.UpdatedAt),
	}
}

func ShoppingListAddParam(p apishopping.AddParam) domain.ShoppingListAddParam {
	return domain.ShoppingListAddParam{
		Purchasable: domain.PurchasableRef{
			Type: domain.PurchasableType(p.Purchasable.Type),
			Id:   p.Purchasable.Id,
			Name: p.Purchasable.Name,
		},
		Quantity: p.Quantity,
		Unit:     p.Unit,
	}
}

// ShoppingListUpdate applies p onto the current state of the entry.
//
// Quantity and unit are changed together; the omitted one is taken from current.
func ShoppingListUpdate(current domain.ShoppingListEntry, p apishopping.UpdateParam) domain.ShoppingListUpdate {
	upd := domain.ShoppingListUpdate{Purchased: p.Purchased}
	if p.Quantity != nil || p.Unit != nil {
		q := current.Quantity
		if p.Quantity != nil {
			q.Amount = *p.Quantity
		}
		if p.Unit != nil {
			q.Unit = *p.Unit
		}
		upd.Quantity = &q
	}
	return upd
}

func ComposePayment(p domain.Payment) apipayments.Detail {
	return apipayments.Detail{
		Id:          p.Id,
		UserId:      p.UserId,
		EntryId:     p.EntryId,
		Amount:      p.Amount,
		Note:        p.Note,
		CompletedAt: rfctimePtr(p.CompletedAt),
		DeletedAt:   rfctimePtr(p.DeletedAt),
		CreatedAt:   rfctime.RFC3339(p.CreatedAt),
		UpdatedAt:   rfctime.RFC3339(p.UpdatedAt),
	}
}

func PaymentParam(p apipayments.Param) domain.PaymentParam {
	return domain.PaymentParam{EntryId: p.EntryId, Amount: p.Amount, Note: p.Note}
}

func ComposeComment(c domain.Comment) apicomments.Detail {
	return apicomments.Detail{
		Id:     c.Id,
		UserId: c.UserId,
		On: apicomments.On{
			Type: string(c.Commentable.Type),
			Id:   c.Commentable.Id,
		},
		Body:      c.Body,
		CreatedAt: rfctime.RFC3339(c.CreatedAt),
		UpdatedAt: rfctime.RFC3339(c.UpdatedAt),
	}
}

func rfctimePtr(t *time.Time) *rfctime.RFC3339 {
	if t == nil {
		return nil
	}
	r := rfctime.RFC3339(*t)
	return &r
}
