package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hallbook/config"
	"hallbook/infras/otel/mocks"
	"hallbook/infras/razorpay"
	razorpayMocks "hallbook/infras/razorpay/mocks"
	bookingMocks "hallbook/internal/domains/booking/mocks"
	bookingModel "hallbook/internal/domains/booking/model"
	bookingDto "hallbook/internal/domains/booking/model/dto"
	paymentMocks "hallbook/internal/domains/payment/mocks"
	"hallbook/internal/domains/payment/model"
	"hallbook/internal/domains/payment/model/dto"
	"hallbook/internal/domains/payment/service"
	cacheMocks "hallbook/shared/cache/mocks"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/failure"
)

const (
	bookingID = "0d1de2f6-3e30-4f4e-bde2-02ec941e0a05"
	gatewayID = "rzp_test_key"
)

type serviceMocks struct {
	repo    *paymentMocks.MockPayment
	booking *bookingMocks.MockBookingService
	gateway *razorpayMocks.MockGateway
	cache   *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Payment, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:    paymentMocks.NewMockPayment(ctrl),
		booking: bookingMocks.NewMockBookingService(ctrl),
		gateway: razorpayMocks.NewMockGateway(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.booking, m.gateway, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func pendingBooking() bookingDto.BookingResponse {
	return bookingDto.BookingResponse{
		ID:         bookingID,
		UserID:     "user-1",
		Status:     string(bookingModel.StatusPending),
		TotalPrice: 350.0,
	}
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestPaymentService_CreateOrder(t *testing.T) {
	t.Run("creates a gateway order in the smallest currency unit", func(t *testing.T) {
		svc, m := newService(t)

		m.booking.EXPECT().
			Get(gomock.Any(), bookingID).
			Return(pendingBooking(), nil)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{}, nil)

		m.gateway.EXPECT().
			CreateOrder(gomock.Any(), int64(35000), bookingID).
			Return(razorpay.Order{ID: "order_123", Amount: 35000, Currency: "INR"}, nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		m.gateway.EXPECT().
			KeyID().
			Return(gatewayID)

		m.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.CreateOrder(userContext("user-1", constant.RoleUser), dto.CreateOrderRequest{BookingID: bookingID})

		assert.NoError(t, err)
		assert.Equal(t, "order_123", res.OrderID)
		assert.Equal(t, int64(35000), res.Amount)
		assert.Equal(t, gatewayID, res.KeyID)
	})

	t.Run("reuses an open order", func(t *testing.T) {
		svc, m := newService(t)

		m.booking.EXPECT().
			Get(gomock.Any(), bookingID).
			Return(pendingBooking(), nil)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{
				ID:        "payment-1",
				BookingID: bookingID,
				OrderID:   "order_open",
				Amount:    35000,
				Currency:  "INR",
				Status:    model.StatusCreated,
			}, nil)

		m.gateway.EXPECT().
			KeyID().
			Return(gatewayID)

		res, err := svc.CreateOrder(userContext("user-1", constant.RoleUser), dto.CreateOrderRequest{BookingID: bookingID})

		assert.NoError(t, err)
		assert.Equal(t, "order_open", res.OrderID)
	})

	t.Run("paid booking cannot be paid again", func(t *testing.T) {
		svc, m := newService(t)

		m.booking.EXPECT().
			Get(gomock.Any(), bookingID).
			Return(pendingBooking(), nil)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: "payment-1", Status: model.StatusPaid}, nil)

		_, err := svc.CreateOrder(userContext("user-1", constant.RoleUser), dto.CreateOrderRequest{BookingID: bookingID})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("failed payment allows a fresh order", func(t *testing.T) {
		svc, m := newService(t)

		m.booking.EXPECT().
			Get(gomock.Any(), bookingID).
			Return(pendingBooking(), nil)

		// The lookup skips failed rows, so a booking whose only payment
		// attempt failed looks like one with no payment at all.
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Payment, error) {
				assert.Len(t, filter.Filters, 2)

				statusFilter, ok := filter.Filters[1].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, model.FieldStatus, statusFilter.Field)
				assert.Equal(t, gDto.FilterOperatorIn, statusFilter.Operator)
				assert.ElementsMatch(t, []string{model.StatusCreated, model.StatusPaid}, statusFilter.Value)

				return model.Payment{}, nil
			})

		m.gateway.EXPECT().
			CreateOrder(gomock.Any(), int64(35000), bookingID).
			Return(razorpay.Order{ID: "order_retry", Amount: 35000, Currency: "INR"}, nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		m.gateway.EXPECT().
			KeyID().
			Return(gatewayID)

		m.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.CreateOrder(userContext("user-1", constant.RoleUser), dto.CreateOrderRequest{BookingID: bookingID})

		assert.NoError(t, err)
		assert.Equal(t, "order_retry", res.OrderID)
	})

	t.Run("other users cannot pay for the booking", func(t *testing.T) {
		svc, m := newService(t)

		m.booking.EXPECT().
			Get(gomock.Any(), bookingID).
			Return(pendingBooking(), nil)

		_, err := svc.CreateOrder(userContext("someone-else", constant.RoleUser), dto.CreateOrderRequest{BookingID: bookingID})

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("cancelled booking cannot be paid", func(t *testing.T) {
		svc, m := newService(t)

		booking := pendingBooking()
		booking.Status = string(bookingModel.StatusCancelled)

		m.booking.EXPECT().
			Get(gomock.Any(), bookingID).
			Return(booking, nil)

		_, err := svc.CreateOrder(userContext("user-1", constant.RoleUser), dto.CreateOrderRequest{BookingID: bookingID})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestPaymentService_Verify(t *testing.T) {
	verifyReq := dto.VerifyPaymentRequest{
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: "sig_789",
	}

	createdPayment := func() model.Payment {
		return model.Payment{
			ID:        "payment-1",
			BookingID: bookingID,
			OrderID:   "order_123",
			Amount:    35000,
			Currency:  "INR",
			Status:    model.StatusCreated,
		}
	}

	t.Run("valid signature confirms the booking", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(createdPayment(), nil)

		m.gateway.EXPECT().
			VerifySignature("order_123", "pay_456", "sig_789").
			Return(nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		m.booking.EXPECT().
			Confirm(gomock.Any(), bookingID).
			Return(nil)

		m.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		m.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Verify(userContext("user-1", constant.RoleUser), verifyReq)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPaid, res.Status)
		assert.Equal(t, "pay_456", res.PaymentID)
	})

	t.Run("signature mismatch marks the payment failed", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(createdPayment(), nil)

		m.gateway.EXPECT().
			VerifySignature("order_123", "pay_456", "sig_789").
			Return(razorpay.ErrSignatureMismatch)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Verify(userContext("user-1", constant.RoleUser), verifyReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("verifying an already paid payment is a no-op", func(t *testing.T) {
		svc, m := newService(t)

		payment := createdPayment()
		payment.Status = model.StatusPaid

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(payment, nil)

		res, err := svc.Verify(userContext("user-1", constant.RoleUser), verifyReq)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPaid, res.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{}, nil)

		_, err := svc.Verify(userContext("user-1", constant.RoleUser), verifyReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("gateway failure surfaces", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(createdPayment(), nil)

		m.gateway.EXPECT().
			VerifySignature("order_123", "pay_456", "sig_789").
			Return(errors.New("gateway unreachable"))

		_, err := svc.Verify(userContext("user-1", constant.RoleUser), verifyReq)

		assert.Error(t, err)
	})
}

func TestPaymentService_Get(t *testing.T) {
	t.Run("cache miss falls back to the repository", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: "payment-1", Status: model.StatusCreated}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "payment-1")

		assert.NoError(t, err)
		assert.Equal(t, "payment-1", res.ID)
	})

	t.Run("unknown payment", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{}, nil)

		_, err := svc.Get(context.Background(), "nope")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
