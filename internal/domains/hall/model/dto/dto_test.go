package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hallbook/internal/domains/hall/model"
	"hallbook/internal/domains/hall/model/dto"
)

func TestCreateHallRequest_ToModel(t *testing.T) {
	req := dto.CreateHallRequest{
		Name:              "Grand Ballroom",
		Description:       "Our largest venue",
		Location:          "Downtown",
		Capacity:          200,
		PricePerHour:      100,
		PricePerDay:       500,
		WeekendMultiplier: 1.5,
		SecurityDeposit:   50,
	}

	hall := req.ToModel("admin-id", "https://cdn.example.com/hall/image.png")

	assert.NotEmpty(t, hall.ID)
	assert.Equal(t, "admin-id", hall.OwnerID)
	assert.Equal(t, "Grand Ballroom", hall.Name)
	assert.Equal(t, model.StateActive, hall.State)
	assert.Equal(t, 1.5, hall.WeekendMultiplier)
	assert.Equal(t, "https://cdn.example.com/hall/image.png", hall.Image)
	assert.Equal(t, "admin-id", hall.CreatedBy)
}

func TestCreateHallRequest_ToModelDefaultsMultiplier(t *testing.T) {
	req := dto.CreateHallRequest{
		Name:         "Small Meeting Room",
		PricePerHour: 25,
	}

	hall := req.ToModel("admin-id", "")

	assert.Equal(t, float64(1), hall.WeekendMultiplier)
}

func TestHallResponse_FromModel(t *testing.T) {
	hall := model.Hall{
		ID:                "hall-id-123",
		OwnerID:           "admin-id",
		Name:              "Grand Ballroom",
		Capacity:          200,
		PricePerHour:      100,
		PricePerDay:       500,
		WeekendMultiplier: 1.5,
		SecurityDeposit:   50,
		State:             model.StateActive,
	}

	var res dto.HallResponse
	res.FromModel(hall)

	assert.Equal(t, hall.ID, res.ID)
	assert.Equal(t, hall.OwnerID, res.OwnerID)
	assert.Equal(t, hall.Name, res.Name)
	assert.Equal(t, hall.PricePerHour, res.PricePerHour)
	assert.Equal(t, hall.State, res.State)
}

func TestGetHallsResponse_FromModels(t *testing.T) {
	models := []model.Hall{
		{ID: "hall-1", Name: "Grand Ballroom"},
		{ID: "hall-2", Name: "Garden Pavilion"},
	}

	var res dto.GetHallsResponse
	res.FromModels(models, 12, 10)

	assert.Len(t, res.Halls, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "hall-1", res.Halls[0].ID)
}
