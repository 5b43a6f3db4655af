package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"hallbook/config"
	"hallbook/infras/kafka"
	"hallbook/infras/otel"
	"hallbook/internal/domains/booking/model"
	"hallbook/internal/domains/booking/model/dto"
	"hallbook/internal/domains/booking/pricing"
	"hallbook/internal/domains/booking/repository"
	hallModel "hallbook/internal/domains/hall/model"
	hallRepo "hallbook/internal/domains/hall/repository"
	"hallbook/shared"
	"hallbook/shared/cache"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/failure"
	"hallbook/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	BusySlots(ctx context.Context, hallID string, from, to time.Time) (dto.BusySlotsResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) error
	Confirm(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	hallRepo   hallRepo.Hall
	calculator *pricing.Calculator
	cfg        *config.Config
	cache      cache.RedisCache
	kafka      kafka.Client
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	hallRepo hallRepo.Hall,
	calculator *pricing.Calculator,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		hallRepo:   hallRepo,
		calculator: calculator,
		cfg:        cfg,
		cache:      cache,
		kafka:      kafka,
		otel:       otel,
	}
}

// Create quotes and persists a pending booking. The availability check and
// the insert happen in a single serializable transaction on the repository,
// so two concurrent requests for the same interval cannot both succeed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = pricing.ValidateInterval(req.StartAt, req.EndAt); err != nil {
		return res, failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	}

	hall, err := s.activeHall(ctx, req.HallID)
	if err != nil {
		return res, err
	}

	quote, err := s.calculator.ComputePrice(ratesOf(hall), req.StartAt, req.EndAt)
	if err != nil {
		return res, mapPricingError(err)
	}

	booking := req.ToModel(user, quote)

	conflictIDs, err := s.repo.InsertGuarded(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			log.Info().Strs("conflictIDs", conflictIDs).Msg("booking conflict")

			return res, failure.ConflictWithDetails("hall is already booked for the requested interval", conflictIDs) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, dto.EventBookingCreated, booking)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

// CheckAvailability reports whether the interval is free of active bookings.
// It is advisory only; Create re-checks inside its transaction.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = pricing.ValidateInterval(req.StartAt, req.EndAt); err != nil {
		return res, failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	}

	if _, err = s.activeHall(ctx, req.HallID); err != nil {
		return res, err
	}

	conflictIDs, err := s.repo.FindConflictIDs(ctx, req.HallID, req.StartAt, req.EndAt, req.ExcludeBookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res.Available = len(conflictIDs) == 0
	res.ConflictBookingIDs = conflictIDs

	return res, nil
}

// BusySlots lists the occupied intervals of a hall inside the given window.
func (s *serviceImpl) BusySlots(ctx context.Context, hallID string, from, to time.Time) (res dto.BusySlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BusySlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = pricing.ValidateInterval(from, to); err != nil {
		return res, failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	}

	if _, err = s.activeHall(ctx, hallID); err != nil {
		return res, err
	}

	slots, err := s.repo.FindBusySlots(ctx, hallID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to list busy slots")

		return res, fmt.Errorf("failed to list busy slots: %w", err)
	}

	res.FromModels(hallID, slots)

	return res, nil
}

// Quote prices an interval without persisting anything.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = pricing.ValidateInterval(req.StartAt, req.EndAt); err != nil {
		return res, failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	}

	hall, err := s.activeHall(ctx, req.HallID)
	if err != nil {
		return res, err
	}

	quote, err := s.calculator.ComputePrice(ratesOf(hall), req.StartAt, req.EndAt)
	if err != nil {
		return res, mapPricingError(err)
	}

	res.FromQuote(hall.ID, quote)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Cancel moves a booking to cancelled. Owners may cancel their own pending
// bookings; admins may also cancel confirmed ones.
func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if role != constant.RoleAdmin && booking.UserID != user {
		return failure.Forbidden("booking belongs to another user") // nolint:wrapcheck
	}

	if booking.Status == model.StatusConfirmed && role != constant.RoleAdmin {
		return failure.Forbidden("confirmed bookings can only be cancelled by an admin") // nolint:wrapcheck
	}

	if !booking.Status.CanTransitionTo(model.StatusCancelled) {
		return failure.Conflict(fmt.Sprintf("booking cannot be cancelled from status %s", booking.Status)) // nolint:wrapcheck
	}

	if err = s.transition(ctx, booking, model.StatusCancelled, req.Reason, user); err != nil {
		return err
	}

	booking.Status = model.StatusCancelled
	booking.CancelReason = req.Reason

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, dto.EventBookingCancelled, booking)
		s.invalidateBooking(c, id)
	}()

	return nil
}

// Confirm moves a pending booking to confirmed. The payment flow calls this
// after the gateway signature has been verified.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if !booking.Status.CanTransitionTo(model.StatusConfirmed) {
		return failure.Conflict(fmt.Sprintf("booking cannot be confirmed from status %s", booking.Status)) // nolint:wrapcheck
	}

	if err = s.transition(ctx, booking, model.StatusConfirmed, constant.Empty, user); err != nil {
		return err
	}

	booking.Status = model.StatusConfirmed

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, dto.EventBookingConfirmed, booking)
		s.invalidateBooking(c, id)
	}()

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// activeHall loads the hall and rejects ids that point nowhere or at a soft
// deleted hall, so deleted halls can never be quoted or booked.
func (s *serviceImpl) activeHall(ctx context.Context, id string) (hallModel.Hall, error) {
	hall, err := s.hallRepo.Get(ctx, shared.FilterByID(id, hallModel.FieldID, hallModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall")

		return hall, fmt.Errorf("failed to get hall: %w", err)
	}

	if hall.ID == constant.Empty || hall.State != hallModel.StateActive {
		return hall, failure.BadRequestFromString("hall does not exist") // nolint:wrapcheck
	}

	return hall, nil
}

func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, next model.Status, reason, user string) error {
	fields := map[string]any{
		model.FieldStatus:        string(next),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if reason != constant.Empty {
		fields[model.FieldCancelReason] = reason
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.Booking) {
	message := kafka.Message{
		Key:   booking.ID,
		Value: dto.NewBookingEvent(event, booking),
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}

func ratesOf(hall hallModel.Hall) pricing.Rates {
	return pricing.Rates{
		PricePerHour:      hall.PricePerHour,
		PricePerDay:       hall.PricePerDay,
		WeekendMultiplier: hall.WeekendMultiplier,
		SecurityDeposit:   hall.SecurityDeposit,
	}
}

func mapPricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidInterval):
		return failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	case errors.Is(err, pricing.ErrInvalidConfiguration):
		return failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	default:
		return fmt.Errorf("failed to compute price: %w", err)
	}
}
