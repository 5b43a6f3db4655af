package model

import "hallbook/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldOrderID   = "order_id"
	FieldPaymentID = "payment_id"
	FieldSignature = "signature"
	FieldAmount    = "amount"
	FieldCurrency  = "currency"
	FieldStatus    = "status"
)

// Payment statuses. A payment starts as created when the gateway order is
// placed, then moves to paid or failed depending on signature verification.
const (
	StatusCreated = "created"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

type Payment struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	OrderID   string `db:"order_id"`
	PaymentID string `db:"payment_id"`
	Signature string `db:"signature"`
	Amount    int64  `db:"amount"`
	Currency  string `db:"currency"`
	Status    string `db:"status"`
	model.Metadata
}
