package toggle

import (
	"context"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/fxckultimv/foodgram-project-react/pkg/metrics"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type (
	// ToggleService keeps at most one edge per (actor, target, kind) for
	// favorites, shopping cart entries and subscriptions.
	ToggleService interface {
		Add(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (domain.Edge, error)
		Remove(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) error
		Exists(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (bool, error)
		ExistingTargets(ctx context.Context, actorID uint64, kind domain.ToggleKind, targetIDs []uint64) (map[uint64]bool, error)
	}

	toggleService struct {
		toggleRepository ToggleRepository
		txRunner         database.TxRunner
		hooks            metrics.Hooks
	}
)

func NewToggleService(toggleRepository ToggleRepository, txRunner database.TxRunner, hooks metrics.Hooks) ToggleService {
	if hooks == nil {
		hooks = metrics.NewNoopHooks()
	}
	return &toggleService{
		toggleRepository: toggleRepository,
		txRunner:         txRunner,
		hooks:            hooks,
	}
}

func checkKind(op string, kind domain.ToggleKind) error {
	if !kind.Valid() {
		return domain.NewInvalidInput(op, domain.CodeUnknownKind, "kind", "unknown toggle kind "+string(kind))
	}
	return nil
}

func (s *toggleService) Add(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (edge domain.Edge, err error) {
	const op = "toggle.add"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	if err := checkKind(op, kind); err != nil {
		return domain.Edge{}, err
	}
	if actorID == domain.AnonymousViewer {
		return domain.Edge{}, domain.NewError(domain.KindForbidden, op, "anonymous actor")
	}
	if kind == domain.ToggleSubscription && actorID == targetID {
		return domain.Edge{}, &domain.Error{
			Kind:    domain.KindInvalidTarget,
			Code:    domain.CodeSelfSubscription,
			Field:   "target_id",
			Op:      op,
			Message: "cannot subscribe to yourself",
		}
	}

	err = s.txRunner.InTx(ctx, op, func(tx *gorm.DB) error {
		repo := s.toggleRepository.WithTx(tx)

		exists, err := repo.LockTarget(ctx, kind, targetID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewUnknownReference(op, domain.CodeUnknownTarget, "target_id", "target does not exist")
		}

		row := entities.ToggleEdge{ActorID: actorID, TargetID: targetID, Kind: string(kind)}
		created, err := repo.InsertEdge(ctx, &row)
		if err != nil {
			return err
		}
		if !created {
			s.hooks.IncConflict(op)
			return domain.NewError(domain.KindAlreadyExists, op, string(kind)+" edge already exists")
		}
		edge = domain.Edge{ActorID: row.ActorID, TargetID: row.TargetID, Kind: kind, CreatedAt: row.CreatedAt}
		return nil
	})
	if err != nil {
		if domain.IsKind(err, domain.KindInfrastructure) {
			log.Error().Err(err).Uint64("actor_id", actorID).Uint64("target_id", targetID).Str("kind", string(kind)).Msg("toggle add failed")
		}
		return domain.Edge{}, err
	}

	log.Info().Uint64("actor_id", actorID).Uint64("target_id", targetID).Str("kind", string(kind)).Msg("toggle edge added")
	return edge, nil
}

func (s *toggleService) Remove(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (err error) {
	const op = "toggle.remove"
	defer metrics.Track(s.hooks, op, time.Now(), &err)

	if err := checkKind(op, kind); err != nil {
		return err
	}
	if actorID == domain.AnonymousViewer {
		return domain.NewError(domain.KindForbidden, op, "anonymous actor")
	}

	err = s.txRunner.InTx(ctx, op, func(tx *gorm.DB) error {
		removed, err := s.toggleRepository.WithTx(tx).DeleteEdge(ctx, actorID, targetID, kind)
		if err != nil {
			return err
		}
		if removed == 0 {
			return domain.NewError(domain.KindNotFound, op, string(kind)+" edge does not exist")
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Uint64("actor_id", actorID).Uint64("target_id", targetID).Str("kind", string(kind)).Msg("toggle edge removed")
	return nil
}

// Exists is false for the anonymous viewer.
func (s *toggleService) Exists(ctx context.Context, actorID, targetID uint64, kind domain.ToggleKind) (bool, error) {
	const op = "toggle.exists"
	if err := checkKind(op, kind); err != nil {
		return false, err
	}
	if actorID == domain.AnonymousViewer {
		return false, nil
	}
	ok, err := s.toggleRepository.EdgeExists(ctx, actorID, targetID, kind)
	if err != nil {
		return false, database.MapError(op, err)
	}
	return ok, nil
}

func (s *toggleService) ExistingTargets(ctx context.Context, actorID uint64, kind domain.ToggleKind, targetIDs []uint64) (map[uint64]bool, error) {
	const op = "toggle.existing_targets"
	if err := checkKind(op, kind); err != nil {
		return nil, err
	}
	res := make(map[uint64]bool, len(targetIDs))
	if actorID == domain.AnonymousViewer || len(targetIDs) == 0 {
		return res, nil
	}
	ids, err := s.toggleRepository.ExistingTargets(ctx, actorID, kind, targetIDs)
	if err != nil {
		return nil, database.MapError(op, err)
	}
	for _, id := range ids {
		res[id] = true
	}
	return res, nil
}
