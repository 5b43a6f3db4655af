package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"hallbook/config"
	"hallbook/infras/otel"
	"hallbook/infras/razorpay"
	bookingModel "hallbook/internal/domains/booking/model"
	bookingService "hallbook/internal/domains/booking/service"
	"hallbook/internal/domains/payment/model"
	"hallbook/internal/domains/payment/model/dto"
	"hallbook/internal/domains/payment/repository"
	"hallbook/shared"
	"hallbook/shared/cache"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/failure"
	"hallbook/shared/timezone"
)

const (
	cacheGetPayment    = "payment:get"
	cacheGetAllPayment = "payment:gets"
	cacheCountPayment  = "payment:count"
)

type Payment interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error)
	Verify(ctx context.Context, req dto.VerifyPaymentRequest) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo    repository.Payment
	booking bookingService.Booking
	gateway razorpay.Gateway
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(
	repo repository.Payment,
	booking bookingService.Booking,
	gateway razorpay.Gateway,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:    repo,
		booking: booking,
		gateway: gateway,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

// CreateOrder places a gateway order for a pending booking. Calling it again
// for the same booking returns the open order instead of creating a second
// one.
func (s *serviceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (res dto.CreateOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.booking.Get(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	if role != constant.RoleAdmin && booking.UserID != user {
		return res, failure.Forbidden("booking belongs to another user") // nolint:wrapcheck
	}

	if booking.Status != string(bookingModel.StatusPending) {
		return res, failure.Conflict(fmt.Sprintf("booking with status %s cannot be paid", booking.Status)) // nolint:wrapcheck
	}

	existing, err := s.repo.Get(ctx, openOrderFilter(req.BookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if existing.ID != constant.Empty {
		if existing.Status == model.StatusPaid {
			return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
		}

		if existing.Status == model.StatusCreated {
			res = orderResponse(existing, s.gateway.KeyID())

			return res, nil
		}
	}

	// Gateway amounts are in the currency's smallest unit.
	amount := int64(math.Round(booking.TotalPrice * 100))

	order, err := s.gateway.CreateOrder(ctx, amount, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create gateway order")

		return res, fmt.Errorf("failed to create gateway order: %w", err)
	}

	payment := req.ToModel(user, order)

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	res = orderResponse(payment, s.gateway.KeyID())

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)
	}()

	return res, nil
}

// Verify checks the gateway signature for a completed checkout. On success
// the payment is marked paid and the booking confirmed; a bad signature marks
// the payment failed and is never retried here. Verifying an already paid
// payment is a no-op.
func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	payment, err := s.repo.Get(ctx, shared.FilterByID(req.OrderID, model.FieldOrderID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	if payment.Status == model.StatusPaid {
		res.FromModel(payment)

		return res, nil
	}

	if err = s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, razorpay.ErrSignatureMismatch) {
			if markErr := s.mark(ctx, payment.ID, model.StatusFailed, req, user); markErr != nil {
				return res, markErr
			}

			log.Warn().Str("orderID", req.OrderID).Msg("payment signature mismatch")

			return res, failure.BadRequestFromString("payment signature verification failed") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to verify payment signature: %w", err)
	}

	if err = s.mark(ctx, payment.ID, model.StatusPaid, req, user); err != nil {
		return res, err
	}

	if err = s.booking.Confirm(ctx, payment.BookingID); err != nil {
		return res, err
	}

	payment.Status = model.StatusPaid
	payment.PaymentID = req.PaymentID
	payment.Signature = req.Signature
	res.FromModel(payment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPayment, payment.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete payment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPayment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment")

		return res, nil
	}

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) mark(ctx context.Context, id, status string, req dto.VerifyPaymentRequest, user string) error {
	fields := map[string]any{
		model.FieldStatus:        status,
		model.FieldPaymentID:     req.PaymentID,
		model.FieldSignature:     req.Signature,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update payment status")

		return fmt.Errorf("failed to update payment status: %w", err)
	}

	return nil
}

// openOrderFilter matches the booking's open or settled payment row. Failed
// attempts are skipped so a retried checkout finds the live order instead of
// a dead one.
func openOrderFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{model.StatusCreated, model.StatusPaid},
				Table:    model.TableName,
			},
		},
	}
}

func orderResponse(payment model.Payment, keyID string) dto.CreateOrderResponse {
	return dto.CreateOrderResponse{
		OrderID:   payment.OrderID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		KeyID:     keyID,
	}
}
