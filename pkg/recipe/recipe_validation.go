package recipe

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fxckultimv/foodgram-project-react/domain"
)

// validateSubmission runs every check that needs no storage access and
// returns the tag ids with duplicates dropped, first occurrence kept.
// The first violation found is reported.
func validateSubmission(op string, req domain.ComposeRecipeRequest) ([]uint64, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxRecipeNameLength {
		return nil, domain.NewInvalidInput(op, domain.CodeInvalidName, "name",
			fmt.Sprintf("name must be 1 to %d characters", domain.MaxRecipeNameLength))
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, domain.NewInvalidInput(op, domain.CodeEmptyText, "text", "text is required")
	}
	if req.CookingTime < 1 {
		return nil, domain.NewInvalidInput(op, domain.CodeNonPositiveCookingTime, "cooking_time",
			"cooking time must be at least 1 minute")
	}
	if len(req.Ingredients) == 0 {
		return nil, domain.NewInvalidInput(op, domain.CodeEmptyIngredients, "ingredients",
			"at least one ingredient is required")
	}

	seen := make(map[uint64]struct{}, len(req.Ingredients))
	for i, line := range req.Ingredients {
		if line.Amount < 1 {
			return nil, domain.NewInvalidInput(op, domain.CodeNonPositiveAmount,
				fmt.Sprintf("ingredients[%d].amount", i), "amount must be at least 1")
		}
		if _, dup := seen[line.IngredientID]; dup {
			return nil, domain.NewInvalidInput(op, domain.CodeDuplicateIngredient,
				fmt.Sprintf("ingredients[%d].id", i),
				fmt.Sprintf("ingredient %d is listed more than once", line.IngredientID))
		}
		seen[line.IngredientID] = struct{}{}
	}

	return dedupeIDs(req.Tags), nil
}

func dedupeIDs(ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// firstMissing returns the index in want of the first id that is not in
// found, or -1.
func firstMissing(want []uint64, found map[uint64]struct{}) int {
	for i, id := range want {
		if _, ok := found[id]; !ok {
			return i
		}
	}
	return -1
}
