package toggle

import (
	"context"
	"errors"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ToggleRepository interface {
		WithTx(tx *gorm.DB) ToggleRepository
		LockTarget(ctx context.Context, kind domain.ToggleKind, targetID uint64) (bool, error)
		InsertEdge(ctx context.Context, edge *entities.ToggleEdge) (bool, error)
		DeleteEdge(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (int64, error)
		EdgeExists(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (bool, error)
		ExistingTargets(ctx context.Context, actorID uint64, kind domain.ToggleKind, targetIDs []uint64) ([]uint64, error)
	}

	toggleRepository struct {
		db *gorm.DB
	}
)

func NewToggleRepository(db *gorm.DB) ToggleRepository {
	return &toggleRepository{db: db}
}

func (r *toggleRepository) WithTx(tx *gorm.DB) ToggleRepository {
	return &toggleRepository{db: tx}
}

func targetTable(kind domain.ToggleKind) string {
	if kind.TargetsRecipe() {
		return "recipes"
	}
	return "users"
}

// LockTarget share-locks the target row so it cannot be deleted before the
// edge pointing at it commits. It reports whether the target exists.
func (r *toggleRepository) LockTarget(ctx context.Context, kind domain.ToggleKind, targetID uint64) (bool, error) {
	var ids []uint64
	if err := database.ForShare(r.db.WithContext(ctx), targetTable(kind)).
		Where("id = ?", targetID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// InsertEdge reports false when an edge for the same triple already exists.
// The primary key decides between concurrent inserts.
func (r *toggleRepository) InsertEdge(ctx context.Context, edge *entities.ToggleEdge) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(edge)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *toggleRepository) DeleteEdge(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, string(kind)).
		Delete(&entities.ToggleEdge{})
	return res.RowsAffected, res.Error
}

func (r *toggleRepository) EdgeExists(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ToggleEdge{}).
		Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, string(kind)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *toggleRepository) ExistingTargets(ctx context.Context, actorID uint64, kind domain.ToggleKind, targetIDs []uint64) ([]uint64, error) {
	var ids []uint64
	if len(targetIDs) == 0 {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.ToggleEdge{}).
		Where("actor_id = ? AND kind = ? AND target_id IN ?", actorID, string(kind), targetIDs).
		Pluck("target_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
