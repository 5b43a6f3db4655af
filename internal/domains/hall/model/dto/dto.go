package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"hallbook/internal/domains/hall/model"
	"hallbook/shared"
	gDto "hallbook/shared/dto"
	gModel "hallbook/shared/model"
	"hallbook/shared/timezone"
)

type CreateHallRequest struct {
	Name              string                `json:"name"               validate:"required,max=100"`
	Description       string                `json:"description"        validate:"omitempty,max=500"`
	Location          string                `json:"location"           validate:"omitempty,max=100"`
	Capacity          int                   `json:"capacity"           validate:"omitempty,min=0"`
	PricePerHour      float64               `json:"price_per_hour"     validate:"omitempty,min=0"`
	PricePerDay       float64               `json:"price_per_day"      validate:"omitempty,min=0"`
	WeekendMultiplier float64               `json:"weekend_multiplier" validate:"omitempty,min=1"`
	SecurityDeposit   float64               `json:"security_deposit"   validate:"omitempty,min=0"`
	Image             *multipart.FileHeader `json:"image"              validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile         multipart.File        `json:"-"`
}

func (c *CreateHallRequest) ToModel(user string, imageURL string) model.Hall {
	multiplier := c.WeekendMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	return model.Hall{
		ID:                uuid.NewString(),
		OwnerID:           user,
		Name:              c.Name,
		Description:       c.Description,
		Location:          c.Location,
		Capacity:          c.Capacity,
		PricePerHour:      c.PricePerHour,
		PricePerDay:       c.PricePerDay,
		WeekendMultiplier: multiplier,
		SecurityDeposit:   c.SecurityDeposit,
		Image:             imageURL,
		State:             model.StateActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHallRequest struct {
	Name              string                `db:"name"               json:"name"               validate:"omitempty,max=100"`
	Description       string                `db:"description"        json:"description"        validate:"omitempty,max=500"`
	Location          string                `db:"location"           json:"location"           validate:"omitempty,max=100"`
	Capacity          *int                  `db:"capacity"           json:"capacity"           validate:"omitempty,min=0"`
	PricePerHour      *float64              `db:"price_per_hour"     json:"price_per_hour"     validate:"omitempty,min=0"`
	PricePerDay       *float64              `db:"price_per_day"      json:"price_per_day"      validate:"omitempty,min=0"`
	WeekendMultiplier *float64              `db:"weekend_multiplier" json:"weekend_multiplier" validate:"omitempty,min=1"`
	SecurityDeposit   *float64              `db:"security_deposit"   json:"security_deposit"   validate:"omitempty,min=0"`
	Image             *multipart.FileHeader `json:"image"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile         multipart.File        `json:"-"`
}

type HallResponse struct {
	ID                string  `json:"id"`
	OwnerID           string  `json:"owner_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Location          string  `json:"location"`
	Capacity          int     `json:"capacity"`
	PricePerHour      float64 `json:"price_per_hour"`
	PricePerDay       float64 `json:"price_per_day"`
	WeekendMultiplier float64 `json:"weekend_multiplier"`
	SecurityDeposit   float64 `json:"security_deposit"`
	Image             string  `json:"image"`
	State             string  `json:"state"`
	gDto.Metadata
}

func (r *HallResponse) FromModel(model model.Hall) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Description = model.Description
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.PricePerHour = model.PricePerHour
	r.PricePerDay = model.PricePerDay
	r.WeekendMultiplier = model.WeekendMultiplier
	r.SecurityDeposit = model.SecurityDeposit
	r.Image = model.Image
	r.State = model.State
	r.Metadata.FromModel(model.Metadata)
}

type GetHallsResponse struct {
	Halls     []HallResponse `json:"halls"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetHallsResponse) FromModels(models []model.Hall, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Halls = make([]HallResponse, len(models))
	for i, mod := range models {
		r.Halls[i].FromModel(mod)
	}
}
