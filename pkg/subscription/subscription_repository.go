package subscription

import (
	"context"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		GetSubscribedAuthors(ctx context.Context, actorID uint64, page domain.PaginationRequest) ([]entities.User, int64, error)
		CountRecipesByAuthors(ctx context.Context, authorIDs []uint64) (map[uint64]int64, error)
		GetRecipesByAuthors(ctx context.Context, authorIDs []uint64, limit int) ([]entities.Recipe, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}

	authorCount struct {
		AuthorID uint64
		Total    int64
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) subscribed(ctx context.Context, actorID uint64) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN toggle_edges te ON te.target_id = users.id").
		Where("te.actor_id = ? AND te.kind = ?", actorID, string(domain.ToggleSubscription))
}

func (r *subscriptionRepository) GetSubscribedAuthors(ctx context.Context, actorID uint64, page domain.PaginationRequest) ([]entities.User, int64, error) {
	var users []entities.User
	var count int64

	if err := r.subscribed(ctx, actorID).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	if err := r.subscribed(ctx, actorID).
		Select("users.*").
		Order("te.created_at desc").
		Order("users.id desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *subscriptionRepository) CountRecipesByAuthors(ctx context.Context, authorIDs []uint64) (map[uint64]int64, error) {
	res := make(map[uint64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return res, nil
	}
	var rows []authorCount
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		res[row.AuthorID] = row.Total
	}
	return res, nil
}

// GetRecipesByAuthors returns the newest recipes of each author, at most
// limit per author. A limit of 0 returns all of them.
func (r *subscriptionRepository) GetRecipesByAuthors(ctx context.Context, authorIDs []uint64, limit int) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	if len(authorIDs) == 0 {
		return recipes, nil
	}

	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("author_id IN ?", authorIDs)
	if limit > 0 {
		ranked := r.db.WithContext(ctx).
			Model(&entities.Recipe{}).
			Select("recipes.*, ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, id DESC) AS rn").
			Where("author_id IN ?", authorIDs)
		query = r.db.WithContext(ctx).Table("(?) AS ranked", ranked).Where("rn <= ?", limit)
	}

	if err := query.
		Order("author_id asc").
		Order("created_at desc").
		Order("id desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
