package presenters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(domain.ErrDuplicateIngredient))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(domain.ErrAlreadyExists))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(domain.ErrNotFound))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(domain.ErrUnknownTag))
	assert.Equal(t, fiber.StatusForbidden, StatusFor(domain.ErrForbidden))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(domain.ErrMissingEntity))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(errors.New("db down")))
}

func TestRenderShoppingList(t *testing.T) {
	out := RenderShoppingList([]domain.ShoppingListItem{
		{IngredientID: 1, Name: "flour", MeasurementUnit: "g", TotalAmount: 200},
		{IngredientID: 2, Name: "sugar", MeasurementUnit: "g", TotalAmount: 80},
	})
	assert.Equal(t, "Shopping list\n\nflour (g): 200\nsugar (g): 80\n", out)

	assert.Contains(t, RenderShoppingList(nil), "empty")
}

func TestErrorResponseHidesServerErrorDetail(t *testing.T) {
	cause := fmt.Errorf("insert recipes: %w", errors.New(`pq: connection refused to "db:5432"`))
	app := fiber.New()
	app.Get("/infra", func(c *fiber.Ctx) error {
		return DomainErrorResponse(c, domain.MessageFailedCreateRecipe, domain.Wrap(domain.KindInfrastructure, "recipe.compose", cause))
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return DomainErrorResponse(c, domain.MessageFailedCreateRecipe, domain.ErrDuplicateIngredient)
	})

	call := func(path string) (int, Response, string) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body Response
		require.NoError(t, json.Unmarshal(raw, &body))
		return resp.StatusCode, body, string(raw)
	}

	status, body, raw := call("/infra")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, string(domain.KindInfrastructure), body.Error.Kind)
	assert.Equal(t, domain.MessageFailedProcessRequest, body.Error.Detail)
	assert.NotContains(t, raw, "connection refused")

	status, body, _ = call("/conflict")
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, domain.ErrDuplicateIngredient.Error(), body.Error.Detail)
}
