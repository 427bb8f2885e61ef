package routes

import (
	"github.com/fxckultimv/foodgram-project-react/internal/api/handlers"
	"github.com/fxckultimv/foodgram-project-react/internal/middleware"
	"github.com/fxckultimv/foodgram-project-react/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	RecipeHandler       handlers.RecipeHandler
	ToggleHandler       handlers.ToggleHandler
	CatalogHandler      handlers.CatalogHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.GuestRoute()
	c.Catalog()
	c.Recipes()
	c.Users()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/tags")
	tags.Get("", c.CatalogHandler.GetTags)
	tags.Get("/:id", c.CatalogHandler.GetTag)

	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.CatalogHandler.GetIngredients)
	ingredients.Get("/:id", c.CatalogHandler.GetIngredient)
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuth(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	recipes.Get("", optional, c.RecipeHandler.GetRecipes)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)

	// registered before /:id so it is not parsed as an id
	recipes.Get("/download_shopping_cart", auth, c.RecipeHandler.DownloadShoppingCart)

	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", auth, c.ToggleHandler.AddFavorite)
	recipes.Delete("/:id/favorite", auth, c.ToggleHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", auth, c.ToggleHandler.AddToCart)
	recipes.Delete("/:id/shopping_cart", auth, c.ToggleHandler.RemoveFromCart)
}

func (c *Config) Users() {
	users := c.App.Group("/api/users", c.Middleware.AuthMiddleware(c.JWTService))
	users.Get("/subscriptions", c.SubscriptionHandler.GetSubscriptions)
	users.Post("/:id/subscribe", c.ToggleHandler.Subscribe)
	users.Delete("/:id/subscribe", c.ToggleHandler.Unsubscribe)
}
