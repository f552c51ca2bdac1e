package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/api/binding"
	"github.com/opst/mealplanner/pkg/domain"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
)

// Resources registers resource routes into g, scoped by scope.
//
// The same routes are served for users (OwnScope) and for the back-office (AdminScope).
func Resources(g *echo.Group, db dbmealplanner.Database, scope Scope) {
	g.GET("/ingredients/", SearchCatalogHandler(db.Ingredient(), binding.ComposeIngredient))
	g.POST("/ingredients/", FindOrCreateCatalogHandler(db.Ingredient(), binding.ComposeIngredient))
	g.GET("/ingredients/:id/", GetCatalogHandler(db.Ingredient(), binding.ComposeIngredient, "id"))

	g.GET("/items/", SearchCatalogHandler(db.Item(), binding.ComposeItem))
	g.POST("/items/", FindOrCreateCatalogHandler(db.Item(), binding.ComposeItem))
	g.GET("/items/:id/", GetCatalogHandler(db.Item(), binding.ComposeItem, "id"))

	g.GET("/recipes/", FindRecipeHandler(db.Recipe(), scope))
	g.POST("/recipes/", CreateRecipeHandler(db.Recipe(), scope))
	g.GET("/recipes/:id/", GetRecipeHandler(db.Recipe(), scope, "id"))
	g.PUT("/recipes/:id/", UpdateRecipeHandler(db.Recipe(), scope, "id"))
	g.DELETE("/recipes/:id/", DeleteRecipeHandler(db.Recipe(), scope, "id"))
	g.GET("/recipes/:id/comments/", FindCommentHandler(db.Comment(), scope, domain.CommentOnRecipe, "id"))
	g.POST("/recipes/:id/comments/", CreateCommentHandler(db.Comment(), scope, domain.CommentOnRecipe, "id"))

	g.GET("/mealplans/", FindMealPlanHandler(db.MealPlan(), scope))
	g.POST("/mealplans/", CreateMealPlanHandler(db.MealPlan(), scope))
	g.GET("/mealplans/:id/", GetMealPlanHandler(db.MealPlan(), scope, "id"))
	g.PUT("/mealplans/:id/", UpdateMealPlanHandler(db.MealPlan(), scope, "id"))
	g.DELETE("/mealplans/:id/", DeleteMealPlanHandler(db.MealPlan(), scope, "id"))
	g.POST(
		"/mealplans/:id/shopping/",
		AddMealPlanToShoppingHandler(db.MealPlan(), db.Recipe(), db.ShoppingList(), scope, "id"),
	)
	g.GET("/mealplans/:id/comments/", FindCommentHandler(db.Comment(), scope, domain.CommentOnMealPlan, "id"))
	g.POST("/mealplans/:id/comments/", CreateCommentHandler(db.Comment(), scope, domain.CommentOnMealPlan, "id"))

	g.PUT("/comments/:id/", UpdateCommentHandler(db.Comment(), scope, "id"))
	g.DELETE("/comments/:id/", DeleteCommentHandler(db.Comment(), scope, "id"))

	g.GET("/shopping/", FindShoppingListHandler(db.ShoppingList(), scope))
	g.POST("/shopping/", AddShoppingListHandler(db.ShoppingList(), scope))
	g.GET("/shopping/:id/", GetShoppingListHandler(db.ShoppingList(), scope, "id"))
	g.PUT("/shopping/:id/", UpdateShoppingListHandler(db.ShoppingList(), scope, "id"))
	g.DELETE("/shopping/:id/", DeleteShoppingListHandler(db.ShoppingList(), scope, "id"))

	g.GET("/payments/", FindPaymentHandler(db.Payment(), scope))
	g.POST("/payments/", CreatePaymentHandler(db.Payment(), scope))
	g.GET("/payments/:id/", GetPaymentHandler(db.Payment(), scope, "id"))
	g.DELETE("/payments/:id/", DeletePaymentHandler(db.Payment(), scope, "id"))
	g.PUT("/payments/:id/complete/", CompletePaymentHandler(db.Payment(), scope, "id"))
	g.DELETE("/payments/:id/complete/", UncompletePaymentHandler(db.Payment(), scope, "id"))
	g.PUT("/payments/:id/restore/", RestorePaymentHandler(db.Payment(), scope, "id"))
	g.DELETE("/payments/:id/purge/", PurgePaymentHandler(db.Payment(), scope, "id"))
}

// Admin registers back-office only routes into g.
//
// g should be guarded by auth.RequireAdmin.
func Admin(g *echo.Group, db dbmealplanner.Database) {
	Resources(g, db, AdminScope(db.User()))

	g.GET("/users/", ListUsersHandler(db.User()))
	g.POST("/users/", CreateUserHandler(db.User()))
	g.GET("/users/:id/", GetUserHandler(db.User(), "id"))
	g.PUT("/users/:id/", UpdateUserHandler(db.User(), "id"))
	g.DELETE("/users/:id/", DeleteUserHandler(db.User(), "id"))

	g.PUT("/ingredients/:id/", RenameCatalogHandler(db.Ingredient(), binding.ComposeIngredient, "id"))
	g.DELETE("/ingredients/:id/", DeleteCatalogHandler(db.Ingredient(), "id"))
	g.PUT("/items/:id/", RenameCatalogHandler(db.Item(), binding.ComposeItem, "id"))
	g.DELETE("/items/:id/", DeleteCatalogHandler(db.Item(), "id"))

	g.DELETE("/payments/expired/", PurgeExpiredPaymentHandler(db.Payment()))
}
