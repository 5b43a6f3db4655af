package model

import "hallbook/shared/model"

const (
	TableName  = "amenities"
	EntityName = "amenity"

	FieldID   = "id"
	FieldName = "name"

	HallAmenityTableName = "hall_amenities"

	FieldHallID    = "hall_id"
	FieldAmenityID = "amenity_id"
)

type Amenity struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

// HallAmenity links a hall to an amenity. The pair is unique, so assigning
// the same amenity twice is a no-op.
type HallAmenity struct {
	ID        string `db:"id"`
	HallID    string `db:"hall_id"`
	AmenityID string `db:"amenity_id"`
	model.Metadata
}
