package domain

import (
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
)

const MaxRecipeNameLength = 200

type (
	RecipeFields struct {
		Name        string `json:"name" validate:"required,max=200"`
		Text        string `json:"text" validate:"required"`
		ImageRef    string `json:"image,omitempty" validate:"omitempty,max=500"`
		CookingTime int    `json:"cooking_time"`
	}

	IngredientLine struct {
		IngredientID uint64 `json:"id" validate:"required"`
		Amount       int    `json:"amount"`
	}

	// ComposeRecipeRequest is the full submission for both create and
	// update. Numeric constraints are checked by the recipe service so they
	// come back with field codes.
	ComposeRecipeRequest struct {
		RecipeFields
		Ingredients []IngredientLine `json:"ingredients" validate:"dive"`
		Tags        []uint64         `json:"tags"`
	}

	IngredientLineView struct {
		ID              uint64 `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeView struct {
		ID          uint64               `json:"id"`
		AuthorID    uint64               `json:"author"`
		Name        string               `json:"name"`
		Text        string               `json:"text"`
		ImageRef    string               `json:"image,omitempty"`
		CookingTime int                  `json:"cooking_time"`
		CreatedAt   time.Time            `json:"created_at"`
		Ingredients []IngredientLineView `json:"ingredients"`
		Tags        []TagResponse        `json:"tags"`
		IsFavorited bool                 `json:"is_favorited"`
		IsInCart    bool                 `json:"is_in_shopping_cart"`
	}

	RecipeFilter struct {
		PaginationRequest
		AuthorID         uint64   `query:"author"`
		TagSlugs         []string `query:"tags"`
		IsFavorited      bool     `query:"is_favorited"`
		IsInShoppingCart bool     `query:"is_in_shopping_cart"`
	}

	RecipeListResponse struct {
		Recipes []RecipeView `json:"results"`
		PaginationResponse
	}
)
