package shopping

import (
	"context"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		SumCartIngredients(ctx context.Context, userID uint64) ([]domain.ShoppingListItem, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

// SumCartIngredients totals the ingredient amounts of every recipe in the
// user's cart, one row per ingredient, ordered by ingredient id.
func (r *shoppingRepository) SumCartIngredients(ctx context.Context, userID uint64) ([]domain.ShoppingListItem, error) {
	items := []domain.ShoppingListItem{}
	if err := r.db.WithContext(ctx).
		Table("toggle_edges AS te").
		Select("i.id AS ingredient_id, i.name, i.measurement_unit, SUM(ri.amount) AS total_amount").
		Joins("JOIN recipe_ingredients ri ON ri.recipe_id = te.target_id").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("te.actor_id = ? AND te.kind = ?", userID, string(domain.ToggleCart)).
		Group("i.id, i.name, i.measurement_unit").
		Order("i.id asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
