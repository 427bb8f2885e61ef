package catalog

import (
	"context"
	"strings"

	"github.com/fxckultimv/foodgram-project-react/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CatalogRepository interface {
		WithTx(tx *gorm.DB) CatalogRepository
		GetTags(ctx context.Context) ([]entities.Tag, error)
		GetTagByID(ctx context.Context, id uint64) (*entities.Tag, error)
		GetTagsByIDs(ctx context.Context, ids []uint64) ([]entities.Tag, error)
		GetIngredients(ctx context.Context, namePrefix string) ([]entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, id uint64) (*entities.Ingredient, error)
		GetIngredientsByIDs(ctx context.Context, ids []uint64) ([]entities.Ingredient, error)
		CreateIngredientIfMissing(ctx context.Context, ingredient *entities.Ingredient) (bool, error)
		CreateTagIfMissing(ctx context.Context, tag *entities.Tag) (bool, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	return &catalogRepository{db: tx}
}

func (r *catalogRepository) GetTags(ctx context.Context) ([]entities.Tag, error) {
	var tags []entities.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) GetTagByID(ctx context.Context, id uint64) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) GetTagsByIDs(ctx context.Context, ids []uint64) ([]entities.Tag, error) {
	var tags []entities.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) GetIngredients(ctx context.Context, namePrefix string) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	query := r.db.WithContext(ctx)
	if prefix := strings.TrimSpace(namePrefix); prefix != "" {
		query = query.Where("name_lower LIKE ? ESCAPE '!'", escapeLike(strings.ToLower(prefix))+"%")
	}
	if err := query.Order("name asc").Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// escapeLike quotes LIKE wildcards with '!', the ESCAPE character used by
// GetIngredients.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *catalogRepository) GetIngredientByID(ctx context.Context, id uint64) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *catalogRepository) GetIngredientsByIDs(ctx context.Context, ids []uint64) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredientIfMissing inserts the ingredient unless the (name, unit)
// pair is already present. It reports whether a row was created.
func (r *catalogRepository) CreateIngredientIfMissing(ctx context.Context, ingredient *entities.Ingredient) (bool, error) {
	ingredient.NameLower = strings.ToLower(ingredient.Name)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(ingredient)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *catalogRepository) CreateTagIfMissing(ctx context.Context, tag *entities.Tag) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(tag)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
