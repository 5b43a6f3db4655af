package model

import "hallbook/shared/model"

const (
	TableName  = "halls"
	EntityName = "hall"

	FieldID                = "id"
	FieldOwnerID           = "owner_id"
	FieldName              = "name"
	FieldDescription       = "description"
	FieldLocation          = "location"
	FieldCapacity          = "capacity"
	FieldPricePerHour      = "price_per_hour"
	FieldPricePerDay       = "price_per_day"
	FieldWeekendMultiplier = "weekend_multiplier"
	FieldSecurityDeposit   = "security_deposit"
	FieldImage             = "image"
	FieldState             = "state"
)

// Hall lifecycle states. A deleted hall keeps its row because historical
// bookings still reference it.
const (
	StateActive  = "active"
	StateDeleted = "deleted"
)

// Hall is a rentable venue. OwnerID is the admin who registered it; only the
// owner may update or delete the hall.
type Hall struct {
	ID                string  `db:"id"`
	OwnerID           string  `db:"owner_id"`
	Name              string  `db:"name"`
	Description       string  `db:"description"`
	Location          string  `db:"location"`
	Capacity          int     `db:"capacity"`
	PricePerHour      float64 `db:"price_per_hour"`
	PricePerDay       float64 `db:"price_per_day"`
	WeekendMultiplier float64 `db:"weekend_multiplier"`
	SecurityDeposit   float64 `db:"security_deposit"`
	Image             string  `db:"image"`
	State             string  `db:"state"`
	model.Metadata
}
