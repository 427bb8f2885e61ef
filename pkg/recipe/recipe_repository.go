package recipe

import (
	"context"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		WithTx(tx *gorm.DB) RecipeRepository
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uint64) (*entities.Recipe, error)
		LockRecipeByID(ctx context.Context, id uint64) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		ReplaceIngredients(ctx context.Context, recipeID uint64, lines []entities.RecipeIngredient) error
		ReplaceTags(ctx context.Context, recipeID uint64, tagIDs []uint64) error
		DeleteRecipe(ctx context.Context, id uint64) error
		GetIngredientLines(ctx context.Context, recipeIDs []uint64) ([]IngredientLineRow, error)
		GetRecipeTags(ctx context.Context, recipeIDs []uint64) ([]TagRow, error)
		GetRecipes(ctx context.Context, viewerID uint64, filter domain.RecipeFilter) ([]entities.Recipe, int64, error)
	}

	IngredientLineRow struct {
		RecipeID        uint64
		IngredientID    uint64
		Name            string
		MeasurementUnit string
		Amount          int
		Position        int
	}

	TagRow struct {
		RecipeID uint64
		ID       uint64
		Name     string
		Color    string
		Slug     string
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) WithTx(tx *gorm.DB) RecipeRepository {
	return &recipeRepository{db: tx}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Author", "Ingredients", "Tags").Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint64) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// LockRecipeByID reads the recipe row and holds an update lock on it until
// the transaction ends, so replaces of one recipe run one at a time.
func (r *recipeRepository) LockRecipeByID(ctx context.Context, id uint64) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := database.ForUpdate(r.db.WithContext(ctx), "recipes").
		Where("id = ?", id).
		Take(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	recipe.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]any{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image_ref":    recipe.ImageRef,
			"cooking_time": recipe.CookingTime,
			"updated_at":   recipe.UpdatedAt,
		}).Error
}

// ReplaceIngredients drops every line of the recipe and inserts lines.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipeID uint64, lines []entities.RecipeIngredient) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return db.Omit("Ingredient").Create(&lines).Error
}

func (r *recipeRepository) ReplaceTags(ctx context.Context, recipeID uint64, tagIDs []uint64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]entities.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, entities.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	return db.Omit("Tag").Create(&links).Error
}

// DeleteRecipe removes the recipe with its lines, tag links and every
// favorite or cart edge pointing at it.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
		return err
	}
	if err := db.Where("target_id = ? AND kind IN ?", id,
		[]string{string(domain.ToggleFavorite), string(domain.ToggleCart)}).
		Delete(&entities.ToggleEdge{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetIngredientLines(ctx context.Context, recipeIDs []uint64) ([]IngredientLineRow, error) {
	var rows []IngredientLineRow
	if len(recipeIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients AS ri").
		Select("ri.recipe_id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount, ri.position").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id IN ?", recipeIDs).
		Order("ri.recipe_id asc").
		Order("ri.position asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepository) GetRecipeTags(ctx context.Context, recipeIDs []uint64) ([]TagRow, error) {
	var rows []TagRow
	if len(recipeIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Table("recipe_tags AS rt").
		Select("rt.recipe_id, t.id, t.name, t.color, t.slug").
		Joins("JOIN tags t ON t.id = rt.tag_id").
		Where("rt.recipe_id IN ?", recipeIDs).
		Order("rt.recipe_id asc").
		Order("t.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRecipes returns one page of recipes matching filter, newest first,
// together with the total number of matches.
func (r *recipeRepository) GetRecipes(ctx context.Context, viewerID uint64, filter domain.RecipeFilter) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64

	if (filter.IsFavorited || filter.IsInShoppingCart) && viewerID == domain.AnonymousViewer {
		return recipes, 0, nil
	}

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entities.Recipe{})
		if filter.AuthorID != 0 {
			q = q.Where("recipes.author_id = ?", filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			q = q.Where("recipes.id IN (?)", r.db.
				Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
		}
		if filter.IsFavorited {
			q = q.Where("recipes.id IN (?)", r.edgeTargets(viewerID, domain.ToggleFavorite))
		}
		if filter.IsInShoppingCart {
			q = q.Where("recipes.id IN (?)", r.edgeTargets(viewerID, domain.ToggleCart))
		}
		return q
	}

	if err := query().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	page := filter.PaginationRequest.Normalize()
	if err := query().
		Order("recipes.created_at desc").
		Order("recipes.id desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) edgeTargets(actorID uint64, kind domain.ToggleKind) *gorm.DB {
	return r.db.
		Model(&entities.ToggleEdge{}).
		Select("target_id").
		Where("actor_id = ? AND kind = ?", actorID, string(kind))
}
