package shopping

import (
	"context"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/fxckultimv/foodgram-project-react/pkg/metrics"
)

type (
	ShoppingService interface {
		AggregateShoppingList(ctx context.Context, userID uint64) ([]domain.ShoppingListItem, error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		hooks              metrics.Hooks
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, hooks metrics.Hooks) ShoppingService {
	if hooks == nil {
		hooks = metrics.NewNoopHooks()
	}
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		hooks:              hooks,
	}
}

// AggregateShoppingList merges the ingredient lines of every recipe in the
// user's cart. An empty cart yields an empty list.
func (s *shoppingService) AggregateShoppingList(ctx context.Context, userID uint64) (items []domain.ShoppingListItem, err error) {
	const op = "shopping.aggregate"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	if userID == domain.AnonymousViewer {
		return []domain.ShoppingListItem{}, nil
	}
	items, err = s.shoppingRepository.SumCartIngredients(ctx, userID)
	if err != nil {
		return nil, database.MapError(op, err)
	}
	if items == nil {
		items = []domain.ShoppingListItem{}
	}
	return items, nil
}
