package commands

import (
	"context"

	"github.com/fxckultimv/foodgram-project-react/cmd/database/seed"
	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/internal/utils"
	"github.com/fxckultimv/foodgram-project-react/pkg/catalog"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/fxckultimv/foodgram-project-react/pkg/metrics"
	"github.com/spf13/cobra"
)

var loadIngredientsCmd = &cobra.Command{
	Use:   "load-ingredients [file]",
	Short: "Import the ingredient catalog from a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoad(cmd.Context(), fileArg(args, "data/ingredients.json"), seed.LoadIngredients)
	},
}

var loadTagsCmd = &cobra.Command{
	Use:   "load-tags [file]",
	Short: "Import the tag catalog from a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoad(cmd.Context(), fileArg(args, "data/tags.json"), seed.LoadTags)
	},
}

type loader func(ctx context.Context, svc catalog.CatalogService, path string) (domain.ImportResult, error)

func runLoad(ctx context.Context, path string, load loader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, closeDB, err := connect()
	if err != nil {
		return err
	}
	defer closeDB()

	utils.InitValidator()
	svc := catalog.NewCatalogService(
		catalog.NewCatalogRepository(db),
		database.NewTxRunner(db),
		utils.Validate,
		metrics.NewNoopHooks(),
	)
	_, err = load(ctx, svc, path)
	return err
}

func fileArg(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}
