package dto

import (
	"github.com/google/uuid"
	"hallbook/infras/razorpay"
	"hallbook/internal/domains/payment/model"
	"hallbook/shared"
	gDto "hallbook/shared/dto"
	gModel "hallbook/shared/model"
	"hallbook/shared/timezone"
)

type CreateOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

func (c *CreateOrderRequest) ToModel(userID string, order razorpay.Order) model.Payment {
	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Status:    model.StatusCreated,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

// CreateOrderResponse carries everything the checkout page needs to open the
// gateway widget.
type CreateOrderResponse struct {
	OrderID   string `json:"order_id"`
	BookingID string `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	KeyID     string `json:"key_id"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"   validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature"  validate:"required"`
}

type PaymentResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id,omitempty"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.OrderID = model.OrderID
	r.PaymentID = model.PaymentID
	r.Amount = model.Amount
	r.Currency = model.Currency
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
