package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hallbook/infras/otel"
	"hallbook/infras/postgres"
	"hallbook/internal/domains/amenity/model"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/logger"
	gRepo "hallbook/shared/repository"
)

type Amenity interface {
	Insert(ctx context.Context, model model.Amenity) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Amenity, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ExistByName(ctx context.Context, name string) (bool, error)
	ForHall(ctx context.Context, hallID string) ([]model.Amenity, error)
	Assign(ctx context.Context, links []model.HallAmenity) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Amenity]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Amenity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Amenity](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const existByNameQuery = `
SELECT EXISTS (SELECT 1 FROM amenities WHERE LOWER(name) = LOWER($1))`

// ExistByName reports whether an amenity with the name already exists,
// ignoring case.
func (repo *repositoryImpl) ExistByName(ctx context.Context, name string) (exists bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".amenity.ExistByName")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, existByNameQuery)

	err = repo.db.Read.GetContext(ctx, &exists, existByNameQuery, name)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check amenity name: %w", err)
	}

	return exists, nil
}

const forHallQuery = `
SELECT a.id, a.name, a.created_at, a.modified_at, a.created_by, a.modified_by
FROM amenities a
JOIN hall_amenities ha ON ha.amenity_id = a.id
WHERE ha.hall_id = $1
ORDER BY a.name`

// ForHall lists the amenities assigned to a hall, sorted by name.
func (repo *repositoryImpl) ForHall(ctx context.Context, hallID string) (amenities []model.Amenity, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".amenity.ForHall")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, forHallQuery)

	err = repo.db.Read.SelectContext(ctx, &amenities, forHallQuery, hallID)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get hall amenities: %w", err)
	}

	return amenities, nil
}

const assignQuery = `
INSERT INTO hall_amenities (id, hall_id, amenity_id, created_at, modified_at, created_by, modified_by)
VALUES (:id, :hall_id, :amenity_id, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT ON CONSTRAINT uq_hall_amenities DO NOTHING`

// Assign links amenities to a hall. Pairs that are already assigned are
// skipped by the unique constraint.
func (repo *repositoryImpl) Assign(ctx context.Context, links []model.HallAmenity) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".amenity.Assign")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, assignQuery)

	_, err = repo.db.Write.NamedExecContext(ctx, assignQuery, links)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to assign amenities: %w", err)
	}

	return nil
}
