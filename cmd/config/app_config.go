package config

import (
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/internal/api/handlers"
	"github.com/fxckultimv/foodgram-project-react/internal/api/presenters"
	"github.com/fxckultimv/foodgram-project-react/internal/api/routes"
	"github.com/fxckultimv/foodgram-project-react/internal/middleware"
	"github.com/fxckultimv/foodgram-project-react/internal/utils"
	"github.com/fxckultimv/foodgram-project-react/pkg/catalog"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/fxckultimv/foodgram-project-react/pkg/jwt"
	"github.com/fxckultimv/foodgram-project-react/pkg/metrics"
	"github.com/fxckultimv/foodgram-project-react/pkg/recipe"
	"github.com/fxckultimv/foodgram-project-react/pkg/shopping"
	"github.com/fxckultimv/foodgram-project-react/pkg/subscription"
	"github.com/fxckultimv/foodgram-project-react/pkg/toggle"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type AppOptions struct {
	JWTSecret    string
	JWTIssuer    string
	RateLimitMax int // requests per second per client, 0 disables the limiter
	Registry     *prometheus.Registry
}

// AppOptionsFromConfig reads the options from the loaded configuration.
func AppOptionsFromConfig() AppOptions {
	return AppOptions{
		JWTSecret:    utils.GetConfig("JWT_SECRET"),
		JWTIssuer:    utils.GetConfig("JWT_ISSUER"),
		RateLimitMax: utils.GetConfigInt("RATE_LIMIT_MAX", 20),
		Registry:     prometheus.NewRegistry(),
	}
}

func NewApp(db *gorm.DB, opts AppOptions) (*fiber.App, error) {
	if opts.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// the logger wraps recover so a panicking handler still gets an access line
	app.Use(middlewares.RequestLogger())
	app.Use(recover.New())
	// preflights are answered before the limiter counts them
	app.Use(middlewares.CORSMiddleware())

	fiberProm := fiberprometheus.NewWithRegistry(opts.Registry, "foodgram", "http", "", nil)
	fiberProm.RegisterAt(app, "/metrics")
	app.Use(fiberProm.Middleware)

	if opts.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitMax,
			Expiration: 1 * time.Second,
		}))
	}

	hooks, err := metrics.NewPrometheusHooks(opts.Registry)
	if err != nil {
		return nil, err
	}
	txRunner := database.NewTxRunner(db)

	// Repository
	catalogRepository := catalog.NewCatalogRepository(db)
	toggleRepository := toggle.NewToggleRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret, opts.JWTIssuer)
	catalogService := catalog.NewCatalogService(catalogRepository, txRunner, validator, hooks)
	toggleService := toggle.NewToggleService(toggleRepository, txRunner, hooks)
	recipeService := recipe.NewRecipeService(recipeRepository, catalogRepository, toggleService, txRunner, hooks)
	shoppingService := shopping.NewShoppingService(shoppingRepository, hooks)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, shoppingService, validator)
	toggleHandler := handlers.NewToggleHandler(toggleService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		RecipeHandler:       recipeHandler,
		ToggleHandler:       toggleHandler,
		CatalogHandler:      catalogHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return presenters.ErrorResponse(c, status, domain.MessageFailedProcessRequest, err)
}
