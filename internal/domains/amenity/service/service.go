package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Amenity=MockAmenityService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"hallbook/config"
	"hallbook/infras/otel"
	"hallbook/internal/domains/amenity/model"
	"hallbook/internal/domains/amenity/model/dto"
	"hallbook/internal/domains/amenity/repository"
	hallModel "hallbook/internal/domains/hall/model"
	hallRepo "hallbook/internal/domains/hall/repository"
	"hallbook/shared"
	"hallbook/shared/cache"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/failure"
)

const (
	cacheGetAllAmenity = "amenity:gets"
	cacheHallAmenities = "amenity:hall"
)

type Amenity interface {
	Create(ctx context.Context, req dto.CreateAmenityRequest) error
	GetAll(ctx context.Context) (dto.GetAmenitiesResponse, error)
	Assign(ctx context.Context, hallID string, req dto.AssignAmenitiesRequest) error
	ForHall(ctx context.Context, hallID string) (dto.GetAmenitiesResponse, error)
}

type serviceImpl struct {
	repo     repository.Amenity
	hallRepo hallRepo.Hall
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Amenity, hallRepo hallRepo.Hall, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Amenity {
	return &serviceImpl{
		repo:     repo,
		hallRepo: hallRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAmenityRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.repo.ExistByName(ctx, req.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to check amenity name")

		return fmt.Errorf("failed to check amenity name: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("amenity already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create amenity")

		return fmt.Errorf("failed to create amenity: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAmenity)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetAmenitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllAmenity)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for amenities")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: "ASC"}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenities")

		return res, fmt.Errorf("failed to get amenities: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save amenities to cache")
		}
	}()

	return res, nil
}

// Assign links the requested amenities to the hall. Already assigned pairs
// are skipped, so retrying the call is safe.
func (s *serviceImpl) Assign(ctx context.Context, hallID string, req dto.AssignAmenitiesRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.Assign")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkHall(ctx, hallID); err != nil {
		return err
	}

	ids := dedupe(req.AmenityIDs)

	count, err := s.repo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count amenities")

		return fmt.Errorf("failed to count amenities: %w", err)
	}

	if count != len(ids) {
		return failure.NotFound("one or more amenities do not exist") // nolint:wrapcheck
	}

	links := (&dto.AssignAmenitiesRequest{AmenityIDs: ids}).ToModels(hallID, user)

	if err = s.repo.Assign(ctx, links); err != nil {
		log.Error().Err(err).Msg("failed to assign amenities")

		return fmt.Errorf("failed to assign amenities: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheHallAmenities, hallID)); err != nil {
			log.Error().Err(err).Msg("failed to delete hall amenities cache")
		}
	}()

	return nil
}

func (s *serviceImpl) ForHall(ctx context.Context, hallID string) (res dto.GetAmenitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.ForHall")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheHallAmenities, hallID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hall amenities")

		return res, nil
	}

	if err = s.checkHall(ctx, hallID); err != nil {
		return res, err
	}

	models, err := s.repo.ForHall(ctx, hallID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall amenities")

		return res, fmt.Errorf("failed to get hall amenities: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hall amenities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) checkHall(ctx context.Context, hallID string) error {
	hall, err := s.hallRepo.Get(ctx, shared.FilterByID(hallID, hallModel.FieldID, hallModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall")

		return fmt.Errorf("failed to get hall: %w", err)
	}

	if hall.ID == constant.Empty || hall.State == hallModel.StateDeleted {
		return failure.NotFound("hall not found") // nolint:wrapcheck
	}

	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}

		seen[id] = true
		unique = append(unique, id)
	}

	return unique
}
