package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/pkg/catalog"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/fxckultimv/foodgram-project-react/pkg/metrics"
	"github.com/fxckultimv/foodgram-project-react/pkg/toggle"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		Compose(ctx context.Context, authorID uint64, req domain.ComposeRecipeRequest) (domain.RecipeView, error)
		Replace(ctx context.Context, recipeID, actorID uint64, req domain.ComposeRecipeRequest) (domain.RecipeView, error)
		View(ctx context.Context, recipeID, viewerID uint64) (domain.RecipeView, error)
		Delete(ctx context.Context, recipeID, actorID uint64) error
		List(ctx context.Context, viewerID uint64, filter domain.RecipeFilter) (domain.RecipeListResponse, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		toggleService     toggle.ToggleService
		txRunner          database.TxRunner
		hooks             metrics.Hooks
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	catalogRepository catalog.CatalogRepository,
	toggleService toggle.ToggleService,
	txRunner database.TxRunner,
	hooks metrics.Hooks,
) RecipeService {
	if hooks == nil {
		hooks = metrics.NewNoopHooks()
	}
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		toggleService:     toggleService,
		txRunner:          txRunner,
		hooks:             hooks,
	}
}

func (s *recipeService) Compose(ctx context.Context, authorID uint64, req domain.ComposeRecipeRequest) (view domain.RecipeView, err error) {
	const op = "recipe.compose"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	if authorID == domain.AnonymousViewer {
		return domain.RecipeView{}, domain.NewError(domain.KindForbidden, op, "anonymous author")
	}
	tagIDs, err := validateSubmission(op, req)
	if err != nil {
		return domain.RecipeView{}, err
	}

	var recipeID uint64
	err = s.txRunner.InTx(ctx, op, func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, op, req.Ingredients, tagIDs); err != nil {
			return err
		}

		repo := s.recipeRepository.WithTx(tx)
		recipe := entities.Recipe{
			AuthorID:    authorID,
			Name:        strings.TrimSpace(req.Name),
			Text:        req.Text,
			ImageRef:    req.ImageRef,
			CookingTime: req.CookingTime,
		}
		if err := repo.CreateRecipe(ctx, &recipe); err != nil {
			return err
		}
		if err := repo.ReplaceIngredients(ctx, recipe.ID, buildLines(recipe.ID, req.Ingredients)); err != nil {
			return err
		}
		if err := repo.ReplaceTags(ctx, recipe.ID, tagIDs); err != nil {
			return err
		}
		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		logFailure(op, err, 0, authorID)
		return domain.RecipeView{}, err
	}

	log.Info().Uint64("recipe_id", recipeID).Uint64("author_id", authorID).Int("ingredients", len(req.Ingredients)).Msg("recipe composed")
	return s.View(ctx, recipeID, authorID)
}

// Replace overwrites the scalar fields and the full ingredient and tag sets
// of a recipe. Lines not present in req are gone afterwards.
func (s *recipeService) Replace(ctx context.Context, recipeID, actorID uint64, req domain.ComposeRecipeRequest) (view domain.RecipeView, err error) {
	const op = "recipe.replace"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	err = s.txRunner.InTx(ctx, op, func(tx *gorm.DB) error {
		repo := s.recipeRepository.WithTx(tx)

		recipe, err := repo.LockRecipeByID(ctx, recipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewError(domain.KindMissingEntity, op, fmt.Sprintf("recipe %d not found", recipeID))
			}
			return err
		}
		if recipe.AuthorID != actorID {
			return domain.NewError(domain.KindForbidden, op, "only the author can change a recipe")
		}

		tagIDs, err := validateSubmission(op, req)
		if err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, op, req.Ingredients, tagIDs); err != nil {
			return err
		}

		recipe.Name = strings.TrimSpace(req.Name)
		recipe.Text = req.Text
		recipe.ImageRef = req.ImageRef
		recipe.CookingTime = req.CookingTime
		if err := repo.UpdateRecipe(ctx, recipe); err != nil {
			return err
		}
		if err := repo.ReplaceIngredients(ctx, recipe.ID, buildLines(recipe.ID, req.Ingredients)); err != nil {
			return err
		}
		return repo.ReplaceTags(ctx, recipe.ID, tagIDs)
	})
	if err != nil {
		logFailure(op, err, recipeID, actorID)
		return domain.RecipeView{}, err
	}

	log.Info().Uint64("recipe_id", recipeID).Uint64("actor_id", actorID).Msg("recipe replaced")
	return s.View(ctx, recipeID, actorID)
}

func (s *recipeService) View(ctx context.Context, recipeID, viewerID uint64) (domain.RecipeView, error) {
	const op = "recipe.view"

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeView{}, domain.NewError(domain.KindMissingEntity, op, fmt.Sprintf("recipe %d not found", recipeID))
		}
		return domain.RecipeView{}, database.MapError(op, err)
	}

	favorited, err := s.toggleService.Exists(ctx, viewerID, recipeID, domain.ToggleFavorite)
	if err != nil {
		return domain.RecipeView{}, err
	}
	inCart, err := s.toggleService.Exists(ctx, viewerID, recipeID, domain.ToggleCart)
	if err != nil {
		return domain.RecipeView{}, err
	}

	views, err := s.buildViews(ctx, op, []entities.Recipe{*recipe},
		map[uint64]bool{recipeID: favorited},
		map[uint64]bool{recipeID: inCart},
	)
	if err != nil {
		return domain.RecipeView{}, err
	}
	return views[0], nil
}

func (s *recipeService) Delete(ctx context.Context, recipeID, actorID uint64) (err error) {
	const op = "recipe.delete"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	err = s.txRunner.InTx(ctx, op, func(tx *gorm.DB) error {
		repo := s.recipeRepository.WithTx(tx)

		recipe, err := repo.LockRecipeByID(ctx, recipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewError(domain.KindMissingEntity, op, fmt.Sprintf("recipe %d not found", recipeID))
			}
			return err
		}
		if recipe.AuthorID != actorID {
			return domain.NewError(domain.KindForbidden, op, "only the author can delete a recipe")
		}
		return repo.DeleteRecipe(ctx, recipeID)
	})
	if err != nil {
		logFailure(op, err, recipeID, actorID)
		return err
	}

	log.Info().Uint64("recipe_id", recipeID).Uint64("actor_id", actorID).Msg("recipe deleted")
	return nil
}

func (s *recipeService) List(ctx context.Context, viewerID uint64, filter domain.RecipeFilter) (domain.RecipeListResponse, error) {
	const op = "recipe.list"

	filter.PaginationRequest = filter.PaginationRequest.Normalize()
	recipes, total, err := s.recipeRepository.GetRecipes(ctx, viewerID, filter)
	if err != nil {
		return domain.RecipeListResponse{}, database.MapError(op, err)
	}

	ids := make([]uint64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	favorited, err := s.toggleService.ExistingTargets(ctx, viewerID, domain.ToggleFavorite, ids)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	inCart, err := s.toggleService.ExistingTargets(ctx, viewerID, domain.ToggleCart, ids)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	views, err := s.buildViews(ctx, op, recipes, favorited, inCart)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	return domain.RecipeListResponse{
		Recipes: views,
		PaginationResponse: domain.PaginationResponse{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
		},
	}, nil
}

// checkReferences makes sure every ingredient and tag id resolves in the
// catalog, reporting the first one that does not.
func (s *recipeService) checkReferences(ctx context.Context, tx *gorm.DB, op string, lines []domain.IngredientLine, tagIDs []uint64) error {
	repo := s.catalogRepository.WithTx(tx)

	ingredientIDs := make([]uint64, 0, len(lines))
	for _, l := range lines {
		ingredientIDs = append(ingredientIDs, l.IngredientID)
	}
	ingredients, err := repo.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return err
	}
	found := make(map[uint64]struct{}, len(ingredients))
	for _, i := range ingredients {
		found[i.ID] = struct{}{}
	}
	if i := firstMissing(ingredientIDs, found); i >= 0 {
		return domain.NewUnknownReference(op, domain.CodeUnknownIngredient,
			fmt.Sprintf("ingredients[%d].id", i), fmt.Sprintf("ingredient %d does not exist", ingredientIDs[i]))
	}

	tags, err := repo.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	found = make(map[uint64]struct{}, len(tags))
	for _, t := range tags {
		found[t.ID] = struct{}{}
	}
	if i := firstMissing(tagIDs, found); i >= 0 {
		return domain.NewUnknownReference(op, domain.CodeUnknownTag,
			fmt.Sprintf("tags[%d]", i), fmt.Sprintf("tag %d does not exist", tagIDs[i]))
	}
	return nil
}

func (s *recipeService) buildViews(ctx context.Context, op string, recipes []entities.Recipe, favorited, inCart map[uint64]bool) ([]domain.RecipeView, error) {
	views := make([]domain.RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	ids := make([]uint64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}

	lineRows, err := s.recipeRepository.GetIngredientLines(ctx, ids)
	if err != nil {
		return nil, database.MapError(op, err)
	}
	tagRows, err := s.recipeRepository.GetRecipeTags(ctx, ids)
	if err != nil {
		return nil, database.MapError(op, err)
	}

	lines := make(map[uint64][]domain.IngredientLineView, len(recipes))
	for _, row := range lineRows {
		lines[row.RecipeID] = append(lines[row.RecipeID], domain.IngredientLineView{
			ID:              row.IngredientID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	tags := make(map[uint64][]domain.TagResponse, len(recipes))
	for _, row := range tagRows {
		tags[row.RecipeID] = append(tags[row.RecipeID], domain.TagResponse{
			ID:    row.ID,
			Name:  row.Name,
			Color: row.Color,
			Slug:  row.Slug,
		})
	}

	for _, r := range recipes {
		view := domain.RecipeView{
			ID:          r.ID,
			AuthorID:    r.AuthorID,
			Name:        r.Name,
			Text:        r.Text,
			ImageRef:    r.ImageRef,
			CookingTime: r.CookingTime,
			CreatedAt:   r.CreatedAt,
			Ingredients: lines[r.ID],
			Tags:        tags[r.ID],
			IsFavorited: favorited[r.ID],
			IsInCart:    inCart[r.ID],
		}
		if view.Ingredients == nil {
			view.Ingredients = []domain.IngredientLineView{}
		}
		if view.Tags == nil {
			view.Tags = []domain.TagResponse{}
		}
		views = append(views, view)
	}
	return views, nil
}

func buildLines(recipeID uint64, lines []domain.IngredientLine) []entities.RecipeIngredient {
	rows := make([]entities.RecipeIngredient, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, entities.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: l.IngredientID,
			Amount:       l.Amount,
			Position:     i,
		})
	}
	return rows
}

func logFailure(op string, err error, recipeID, actorID uint64) {
	if !domain.IsKind(err, domain.KindInfrastructure) {
		return
	}
	log.Error().Err(err).Str("op", op).Uint64("recipe_id", recipeID).Uint64("actor_id", actorID).Msg("recipe write failed")
}
