package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/pkg/catalog"
	"github.com/rs/zerolog/log"
)

// LoadIngredients imports the ingredient catalog from a JSON file. Rows
// that already exist are left untouched, so the load can be re-run.
func LoadIngredients(ctx context.Context, catalogService catalog.CatalogService, path string) (domain.ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("open ingredients file: %w", err)
	}
	defer file.Close()

	seeds, err := catalog.DecodeIngredientSeeds(file)
	if err != nil {
		return domain.ImportResult{}, err
	}

	res, err := catalogService.ImportIngredients(ctx, seeds)
	if err != nil {
		return domain.ImportResult{}, err
	}
	log.Info().Str("file", path).Int("created", res.Created).Int("existing", res.Existing).Msg("ingredients loaded")
	return res, nil
}

func LoadTags(ctx context.Context, catalogService catalog.CatalogService, path string) (domain.ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("open tags file: %w", err)
	}
	defer file.Close()

	seeds, err := catalog.DecodeTagSeeds(file)
	if err != nil {
		return domain.ImportResult{}, err
	}

	res, err := catalogService.ImportTags(ctx, seeds)
	if err != nil {
		return domain.ImportResult{}, err
	}
	log.Info().Str("file", path).Int("created", res.Created).Int("existing", res.Existing).Msg("tags loaded")
	return res, nil
}
