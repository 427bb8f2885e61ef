package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fxckultimv/foodgram-project-react/internal/testutil"
	"github.com/fxckultimv/foodgram-project-react/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "FOODGRAM"
)

type apiFixture struct {
	t      *testing.T
	app    *fiber.App
	tokens jwt.JWTService
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind string `json:"kind"`
		Code string `json:"code"`
	} `json:"error"`
}

func newAPIFixture(t *testing.T) (*apiFixture, map[string]uint64) {
	t.Helper()
	db := testutil.DB(t)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	sugar := testutil.CreateIngredient(t, db, "sugar", "g")
	breakfast := testutil.CreateTag(t, db, "Breakfast", "#E26C2D")

	app, err := NewApp(db, AppOptions{JWTSecret: testSecret, JWTIssuer: testIssuer})
	require.NoError(t, err)

	return &apiFixture{t: t, app: app, tokens: jwt.NewJWTService(testSecret, testIssuer)}, map[string]uint64{
		"alice":     alice.ID,
		"bob":       bob.ID,
		"flour":     flour.ID,
		"sugar":     sugar.ID,
		"breakfast": breakfast.ID,
	}
}

func (f *apiFixture) do(method, path string, userID uint64, body any) (*http.Response, envelope) {
	f.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if userID != 0 {
		token, err := f.tokens.GenerateTokenUser(userID, time.Hour)
		require.NoError(f.t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(f.t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(f.t, err)
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) && len(raw) > 0 {
		require.NoError(f.t, json.Unmarshal(raw, &env))
	} else {
		env.Data = raw
	}
	return resp, env
}

func recipeBody(ids map[string]uint64, name string, flourAmount int) map[string]any {
	return map[string]any{
		"name":         name,
		"text":         "mix and bake",
		"cooking_time": 30,
		"ingredients": []map[string]any{
			{"id": ids["flour"], "amount": flourAmount},
			{"id": ids["sugar"], "amount": 50},
		},
		"tags": []uint64{ids["breakfast"], ids["breakfast"]},
	}
}

func TestNewAppRequiresSecret(t *testing.T) {
	_, err := NewApp(testutil.DB(t), AppOptions{})
	assert.Error(t, err)
}

func TestRecipeLifecycleOverHTTP(t *testing.T) {
	f, ids := newAPIFixture(t)

	resp, env := f.do(fiber.MethodPost, "/api/recipes", ids["alice"], recipeBody(ids, "Pancakes", 100))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	var created struct {
		ID          uint64 `json:"id"`
		Author      uint64 `json:"author"`
		Ingredients []struct {
			ID     uint64 `json:"id"`
			Amount int    `json:"amount"`
		} `json:"ingredients"`
		Tags        []struct{ ID uint64 } `json:"tags"`
		IsFavorited bool                  `json:"is_favorited"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, ids["alice"], created.Author)
	assert.Len(t, created.Ingredients, 2)
	assert.Len(t, created.Tags, 1)
	recipePath := fmt.Sprintf("/api/recipes/%d", created.ID)

	// anonymous read
	resp, _ = f.do(fiber.MethodGet, recipePath, 0, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// bob may not replace alice's recipe
	resp, env = f.do(fiber.MethodPut, recipePath, ids["bob"], recipeBody(ids, "Stolen", 1))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "forbidden", env.Error.Kind)

	resp, _ = f.do(fiber.MethodPatch, recipePath, ids["alice"], recipeBody(ids, "Better pancakes", 200))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// bob favorites and carts it, a second favorite conflicts
	resp, _ = f.do(fiber.MethodPost, recipePath+"/favorite", ids["bob"], nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, env = f.do(fiber.MethodPost, recipePath+"/favorite", ids["bob"], nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "already_exists", env.Error.Kind)
	resp, _ = f.do(fiber.MethodPost, recipePath+"/shopping_cart", ids["bob"], nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env = f.do(fiber.MethodGet, recipePath, ids["bob"], nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.IsFavorited)

	resp, env = f.do(fiber.MethodGet, "/api/recipes/download_shopping_cart", ids["bob"], nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "shopping_list.txt")
	assert.Contains(t, string(env.Data), "flour (g): 200")
	assert.Contains(t, string(env.Data), "sugar (g): 50")

	resp, _ = f.do(fiber.MethodDelete, recipePath+"/shopping_cart", ids["bob"], nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, env = f.do(fiber.MethodDelete, recipePath+"/shopping_cart", ids["bob"], nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "not_found", env.Error.Kind)

	resp, _ = f.do(fiber.MethodDelete, recipePath, ids["alice"], nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, env = f.do(fiber.MethodGet, recipePath, 0, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "missing_entity", env.Error.Kind)
}

func TestCreateRecipeValidationOverHTTP(t *testing.T) {
	f, ids := newAPIFixture(t)

	resp, _ := f.do(fiber.MethodPost, "/api/recipes", 0, recipeBody(ids, "Pancakes", 100))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := recipeBody(ids, "Pancakes", 100)
	body["ingredients"] = []map[string]any{
		{"id": ids["flour"], "amount": 100},
		{"id": ids["flour"], "amount": 20},
	}
	resp, env := f.do(fiber.MethodPost, "/api/recipes", ids["alice"], body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_input", env.Error.Kind)
	assert.Equal(t, "duplicate_ingredient", env.Error.Code)

	body = recipeBody(ids, "Pancakes", 100)
	body["tags"] = []uint64{999}
	resp, env = f.do(fiber.MethodPost, "/api/recipes", ids["alice"], body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown_tag", env.Error.Code)

	resp, _ = f.do(fiber.MethodGet, "/api/recipes/abc", 0, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubscriptionsOverHTTP(t *testing.T) {
	f, ids := newAPIFixture(t)

	resp, _ := f.do(fiber.MethodPost, "/api/recipes", ids["bob"], recipeBody(ids, "Porridge", 80))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env := f.do(fiber.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", ids["alice"]), ids["alice"], nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_target", env.Error.Kind)

	resp, env = f.do(fiber.MethodPost, "/api/users/999/subscribe", ids["alice"], nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown_reference", env.Error.Kind)

	resp, _ = f.do(fiber.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", ids["bob"]), ids["alice"], nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env = f.do(fiber.MethodGet, "/api/users/subscriptions?recipes_limit=1", ids["alice"], nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list struct {
		Results []struct {
			ID           uint64 `json:"id"`
			RecipesCount int64  `json:"recipes_count"`
		} `json:"results"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Results, 1)
	assert.Equal(t, ids["bob"], list.Results[0].ID)
	assert.EqualValues(t, 1, list.Results[0].RecipesCount)

	resp, _ = f.do(fiber.MethodDelete, fmt.Sprintf("/api/users/%d/subscribe", ids["bob"]), ids["alice"], nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestCatalogAndPingRoutes(t *testing.T) {
	f, ids := newAPIFixture(t)

	resp, _ := f.do(fiber.MethodGet, "/api/ping", 0, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, env := f.do(fiber.MethodGet, "/api/ingredients?name=FL", 0, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ingredients []struct {
		ID   uint64 `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ingredients))
	require.Len(t, ingredients, 1)
	assert.Equal(t, ids["flour"], ingredients[0].ID)

	resp, _ = f.do(fiber.MethodGet, fmt.Sprintf("/api/tags/%d", ids["breakfast"]), 0, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = f.do(fiber.MethodGet, "/api/tags/999", 0, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(fiber.MethodGet, "/metrics", 0, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPanicIsRecoveredAndLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	app, err := NewApp(testutil.DB(t), AppOptions{JWTSecret: testSecret, JWTIssuer: testIssuer})
	require.NoError(t, err)
	app.Get("/api/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	req := httptest.NewRequest(fiber.MethodGet, "/api/boom", nil)
	req.Header.Set("X-Request-ID", "req-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-ID"))

	var access map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "request" && entry["path"] == "/api/boom" {
			access = entry
		}
	}
	require.NotNil(t, access, buf.String())
	assert.Equal(t, "req-1", access["request_id"])
	assert.EqualValues(t, fiber.StatusInternalServerError, access["status"])
	assert.Equal(t, "error", access["level"])
}

func TestPreflightIsNotRateLimited(t *testing.T) {
	app, err := NewApp(testutil.DB(t), AppOptions{JWTSecret: testSecret, JWTIssuer: testIssuer, RateLimitMax: 1})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(fiber.MethodOptions, "/api/recipes", nil)
		req.Header.Set(fiber.HeaderOrigin, "https://foodgram.example")
		req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPost)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode, "preflight %d", i)
		assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
