package dto

import (
	"github.com/google/uuid"
	"hallbook/internal/domains/amenity/model"
	gModel "hallbook/shared/model"
	"hallbook/shared/timezone"
)

type CreateAmenityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateAmenityRequest) ToModel(user string) model.Amenity {
	return model.Amenity{
		ID:   uuid.NewString(),
		Name: c.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type AssignAmenitiesRequest struct {
	AmenityIDs []string `json:"amenity_ids" validate:"required,min=1,dive,uuid"`
}

func (a *AssignAmenitiesRequest) ToModels(hallID, user string) []model.HallAmenity {
	links := make([]model.HallAmenity, len(a.AmenityIDs))
	for i, amenityID := range a.AmenityIDs {
		links[i] = model.HallAmenity{
			ID:        uuid.NewString(),
			HallID:    hallID,
			AmenityID: amenityID,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return links
}

type AmenityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *AmenityResponse) FromModel(model model.Amenity) {
	r.ID = model.ID
	r.Name = model.Name
}

type GetAmenitiesResponse struct {
	Amenities []AmenityResponse `json:"amenities"`
}

func (r *GetAmenitiesResponse) FromModels(models []model.Amenity) {
	r.Amenities = make([]AmenityResponse, len(models))
	for i, mod := range models {
		r.Amenities[i].FromModel(mod)
	}
}
