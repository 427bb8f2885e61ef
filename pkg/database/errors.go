package database

import (
	"context"
	"errors"
	"strings"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapError translates storage failures into domain errors. Typed domain
// errors pass through untouched.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Wrap(domain.KindMissingEntity, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.Wrap(domain.KindAlreadyExists, op, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.Wrap(domain.KindUnknownReference, op, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return domain.Wrap(domain.KindInvalidInput, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.Wrap(domain.KindInfrastructure, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			return domain.Wrap(domain.KindAlreadyExists, op, err)
		case "23503": // foreign_key_violation
			return domain.Wrap(domain.KindUnknownReference, op, err)
		case "23514": // check_violation
			return domain.Wrap(domain.KindInvalidInput, op, err)
		}
	}

	return domain.Wrap(domain.KindInfrastructure, op, err)
}
