package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"hallbook/infras/otel"
	"hallbook/infras/postgres"
	"hallbook/internal/domains/booking/model"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/logger"
	gRepo "hallbook/shared/repository"
)

// ErrBookingConflict reports that the requested interval overlaps an active
// booking. It surfaces both from the in-transaction overlap check and from the
// database exclusion constraint when concurrent writers race.
var ErrBookingConflict = errors.New("booking interval conflicts with an existing booking")

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FindConflictIDs(ctx context.Context, hallID string, start, end time.Time, excludeBookingID string) ([]string, error)
	FindBusySlots(ctx context.Context, hallID string, from, to time.Time) ([]model.Booking, error)
	InsertGuarded(ctx context.Context, booking model.Booking) (conflictIDs []string, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// activeStatusList renders the slot-occupying statuses for SQL IN clauses,
// so the queries cannot drift from the model's state machine.
var activeStatusList = "'" + strings.Join(model.ActiveStatuses(), "', '") + "'"

var conflictCheckQuery = fmt.Sprintf(`
SELECT id FROM bookings
WHERE hall_id = $1
  AND status IN (%s)
  AND start_at < $3
  AND end_at > $2
  AND ($4 = '' OR id <> $4)
ORDER BY start_at`, activeStatusList)

// FindConflictIDs returns the ids of active bookings overlapping the
// half-open [start, end) interval. Touching endpoints do not overlap, so
// back-to-back bookings pass.
func (repo *repositoryImpl) FindConflictIDs(ctx context.Context, hallID string, start, end time.Time, excludeBookingID string) (ids []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindConflictIDs")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, conflictCheckQuery)

	err = repo.db.Read.SelectContext(ctx, &ids, conflictCheckQuery, hallID, start, end, excludeBookingID)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to find conflicting bookings: %w", err)
	}

	return ids, nil
}

var busySlotsQuery = fmt.Sprintf(`
SELECT id, start_at, end_at, status FROM bookings
WHERE hall_id = $1
  AND status IN (%s)
  AND start_at < $3
  AND end_at > $2
ORDER BY start_at`, activeStatusList)

// FindBusySlots lists the occupied intervals of a hall inside the given
// window, for the public availability snapshot.
func (repo *repositoryImpl) FindBusySlots(ctx context.Context, hallID string, from, to time.Time) (slots []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindBusySlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, busySlotsQuery)

	err = repo.db.Read.SelectContext(ctx, &slots, busySlotsQuery, hallID, from, to)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to find busy slots: %w", err)
	}

	return slots, nil
}

// InsertGuarded inserts the booking inside a serializable transaction that
// re-checks for overlaps first. Under concurrent creates for the same
// interval exactly one insert commits; the losers get ErrBookingConflict,
// either from the overlap check or from the exclusion constraint at commit.
func (repo *repositoryImpl) InsertGuarded(ctx context.Context, booking model.Booking) (conflictIDs []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertGuarded")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("failed to roll back booking transaction")
			}
		}
	}()

	err = tx.SelectContext(ctx, &conflictIDs, conflictCheckQuery, booking.HallID, booking.StartAt, booking.EndAt, constant.Empty)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to check for conflicting bookings: %w", err)
	}

	if len(conflictIDs) > 0 {
		err = ErrBookingConflict

		return conflictIDs, err
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return nil, mapInsertError(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, mapInsertError(err)
	}

	return nil, nil
}

// mapInsertError translates constraint and serialization failures from
// concurrent writers into ErrBookingConflict. Everything else passes through.
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeExclusionViolation,
			constant.PqErrorCodeUniqueViolation,
			constant.PqErrorCodeSerializationFail:
			return ErrBookingConflict
		}
	}

	return err
}
