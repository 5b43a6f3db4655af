package amenity

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"hallbook/infras/otel"
	"hallbook/internal/domains/amenity/model/dto"
	"hallbook/internal/domains/amenity/service"
	"hallbook/shared/constant"
	"hallbook/shared/validator"
	"hallbook/transport/http/response"
)

type Handler struct {
	service service.Amenity
	otel    otel.Otel
}

func New(service service.Amenity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/amenities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAmenity)
		routerGroup.Get("/", handler.GetAmenities)
		routerGroup.Post("/assign/{id}", handler.AssignAmenities)
		routerGroup.Get("/hall/{id}", handler.GetHallAmenities)
	})
}

// CreateAmenity registers a new amenity.
// @Summary Create a new amenity
// @Description Create an amenity. Names are unique regardless of casing.
// @Tags Amenity
// @Accept json
// @Produce json
// @Param request body dto.CreateAmenityRequest true "Create Amenity Request"
// @Success 201 {object} response.Message "Amenity created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/amenities [post]
// @Security BearerAuth
func (handler *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAmenity")
	defer scope.End()

	req := dto.CreateAmenityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create amenity")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Amenity created successfully")

	response.WithMessage(w, http.StatusCreated, "Amenity created successfully")
}

// GetAmenities lists every amenity.
// @Summary Get all amenities
// @Description Retrieve all amenities, sorted by name.
// @Tags Amenity
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetAmenitiesResponse] "List of amenities"
// @Failure 500 {object} response.Error
// @Router /v1/amenities [get]
func (handler *Handler) GetAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenities")
	defer scope.End()

	amenities, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get amenities")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Amenities retrieved successfully")

	response.WithJSON(w, http.StatusOK, amenities)
}

// AssignAmenities links amenities to a hall.
// @Summary Assign amenities to a hall
// @Description Assign the listed amenities to the hall. Already assigned amenities are skipped.
// @Tags Amenity
// @Accept json
// @Produce json
// @Param id path string true "Hall ID"
// @Param request body dto.AssignAmenitiesRequest true "Assign Amenities Request"
// @Success 200 {object} response.Message "Amenities assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/amenities/assign/{id} [post]
// @Security BearerAuth
func (handler *Handler) AssignAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignAmenities")
	defer scope.End()

	hallID := chi.URLParam(r, constant.RequestParamID)

	req := dto.AssignAmenitiesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Assign(ctx, hallID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign amenities")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Amenities assigned successfully")

	response.WithMessage(w, http.StatusOK, "Amenities assigned successfully")
}

// GetHallAmenities lists the amenities assigned to a hall.
// @Summary Get amenities for a hall
// @Description Retrieve the amenities assigned to the hall, sorted by name.
// @Tags Amenity
// @Accept json
// @Produce json
// @Param id path string true "Hall ID"
// @Success 200 {object} response.Data[dto.GetAmenitiesResponse] "List of hall amenities"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/amenities/hall/{id} [get]
func (handler *Handler) GetHallAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHallAmenities")
	defer scope.End()

	hallID := chi.URLParam(r, constant.RequestParamID)

	amenities, err := handler.service.ForHall(ctx, hallID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hall amenities")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hall amenities retrieved successfully")

	response.WithJSON(w, http.StatusOK, amenities)
}
