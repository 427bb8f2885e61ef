package recipe

import (
	"strings"
	"testing"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() domain.ComposeRecipeRequest {
	return domain.ComposeRecipeRequest{
		RecipeFields: domain.RecipeFields{Name: "Pancakes", Text: "Mix and fry.", CookingTime: 20},
		Ingredients: []domain.IngredientLine{
			{IngredientID: 1, Amount: 200},
			{IngredientID: 2, Amount: 1},
		},
		Tags: []uint64{3, 1, 3},
	}
}

func TestValidateSubmission(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *domain.ComposeRecipeRequest)
		code   string
		field  string
	}{
		{"blank name", func(r *domain.ComposeRecipeRequest) { r.Name = "  " }, domain.CodeInvalidName, "name"},
		{"long name", func(r *domain.ComposeRecipeRequest) { r.Name = strings.Repeat("a", 201) }, domain.CodeInvalidName, "name"},
		{"blank text", func(r *domain.ComposeRecipeRequest) { r.Text = "" }, domain.CodeEmptyText, "text"},
		{"zero cooking time", func(r *domain.ComposeRecipeRequest) { r.CookingTime = 0 }, domain.CodeNonPositiveCookingTime, "cooking_time"},
		{"negative cooking time", func(r *domain.ComposeRecipeRequest) { r.CookingTime = -5 }, domain.CodeNonPositiveCookingTime, "cooking_time"},
		{"no ingredients", func(r *domain.ComposeRecipeRequest) { r.Ingredients = nil }, domain.CodeEmptyIngredients, "ingredients"},
		{"zero amount", func(r *domain.ComposeRecipeRequest) { r.Ingredients[1].Amount = 0 }, domain.CodeNonPositiveAmount, "ingredients[1].amount"},
		{"duplicate ingredient", func(r *domain.ComposeRecipeRequest) {
			r.Ingredients = append(r.Ingredients, domain.IngredientLine{IngredientID: 1, Amount: 5})
		}, domain.CodeDuplicateIngredient, "ingredients[2].id"},
		{"first violation wins", func(r *domain.ComposeRecipeRequest) {
			r.Ingredients = []domain.IngredientLine{{IngredientID: 1, Amount: 1}, {IngredientID: 1, Amount: 0}}
		}, domain.CodeNonPositiveAmount, "ingredients[1].amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			_, err := validateSubmission("recipe.compose", req)
			require.Error(t, err)

			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, domain.KindInvalidInput, de.Kind)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.field, de.Field)
		})
	}
}

func TestValidateSubmissionDedupesTags(t *testing.T) {
	tags, err := validateSubmission("recipe.compose", validRequest())
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 1}, tags)
}
