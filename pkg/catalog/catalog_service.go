package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/fxckultimv/foodgram-project-react/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type (
	CatalogService interface {
		ListTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTag(ctx context.Context, id uint64) (domain.TagResponse, error)
		ListIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id uint64) (domain.IngredientResponse, error)
		ImportIngredients(ctx context.Context, seeds []domain.IngredientSeed) (domain.ImportResult, error)
		ImportTags(ctx context.Context, seeds []domain.TagSeed) (domain.ImportResult, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		txRunner          database.TxRunner
		validator         *validator.Validate
		hooks             metrics.Hooks
	}
)

func NewCatalogService(catalogRepository CatalogRepository, txRunner database.TxRunner, validator *validator.Validate, hooks metrics.Hooks) CatalogService {
	if hooks == nil {
		hooks = metrics.NewNoopHooks()
	}
	return &catalogService{
		catalogRepository: catalogRepository,
		txRunner:          txRunner,
		validator:         validator,
		hooks:             hooks,
	}
}

func (s *catalogService) ListTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.catalogRepository.GetTags(ctx)
	if err != nil {
		return nil, database.MapError("catalog.list_tags", err)
	}
	res := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		res = append(res, TagResponse(t))
	}
	return res, nil
}

func (s *catalogService) GetTag(ctx context.Context, id uint64) (domain.TagResponse, error) {
	tag, err := s.catalogRepository.GetTagByID(ctx, id)
	if err != nil {
		return domain.TagResponse{}, database.MapError("catalog.get_tag", err)
	}
	return TagResponse(*tag), nil
}

func (s *catalogService) ListIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.catalogRepository.GetIngredients(ctx, namePrefix)
	if err != nil {
		return nil, database.MapError("catalog.list_ingredients", err)
	}
	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, IngredientResponse(i))
	}
	return res, nil
}

func (s *catalogService) GetIngredient(ctx context.Context, id uint64) (domain.IngredientResponse, error) {
	ingredient, err := s.catalogRepository.GetIngredientByID(ctx, id)
	if err != nil {
		return domain.IngredientResponse{}, database.MapError("catalog.get_ingredient", err)
	}
	return IngredientResponse(*ingredient), nil
}

// ImportIngredients loads ingredients with get-or-create semantics. Either
// every seed is applied or none is.
func (s *catalogService) ImportIngredients(ctx context.Context, seeds []domain.IngredientSeed) (res domain.ImportResult, err error) {
	const op = "catalog.import_ingredients"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	for i := range seeds {
		if err := s.validateSeed(op, i, seeds[i]); err != nil {
			return domain.ImportResult{}, err
		}
	}

	err = s.txRunner.InTx(ctx, op, func(tx *gorm.DB) error {
		repo := s.catalogRepository.WithTx(tx)
		for _, seed := range seeds {
			created, err := repo.CreateIngredientIfMissing(ctx, &entities.Ingredient{
				Name:            seed.Name,
				MeasurementUnit: seed.MeasurementUnit,
			})
			if err != nil {
				return err
			}
			if created {
				res.Created++
			} else {
				res.Existing++
			}
		}
		return nil
	})
	if err != nil {
		return domain.ImportResult{}, err
	}

	log.Info().Int("created", res.Created).Int("existing", res.Existing).Msg("ingredients imported")
	return res, nil
}

func (s *catalogService) ImportTags(ctx context.Context, seeds []domain.TagSeed) (res domain.ImportResult, err error) {
	const op = "catalog.import_tags"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	for i := range seeds {
		if err := s.validateSeed(op, i, seeds[i]); err != nil {
			return domain.ImportResult{}, err
		}
	}

	err = s.txRunner.InTx(ctx, op, func(tx *gorm.DB) error {
		repo := s.catalogRepository.WithTx(tx)
		for _, seed := range seeds {
			created, err := repo.CreateTagIfMissing(ctx, &entities.Tag{
				Name:  seed.Name,
				Color: seed.Color,
				Slug:  seed.Slug,
			})
			if err != nil {
				return err
			}
			if created {
				res.Created++
			} else {
				res.Existing++
			}
		}
		return nil
	})
	if err != nil {
		return domain.ImportResult{}, err
	}

	log.Info().Int("created", res.Created).Int("existing", res.Existing).Msg("tags imported")
	return res, nil
}

func (s *catalogService) validateSeed(op string, index int, seed any) error {
	err := s.validator.Struct(seed)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := fmt.Sprintf("[%d].%s", index, verrs[0].Field())
		return domain.NewInvalidInput(op, domain.CodeInvalidSeed, field, fmt.Sprintf("failed on %q", verrs[0].Tag()))
	}
	return domain.NewInvalidInput(op, domain.CodeInvalidSeed, fmt.Sprintf("[%d]", index), err.Error())
}

func TagResponse(t entities.Tag) domain.TagResponse {
	return domain.TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func IngredientResponse(i entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}
