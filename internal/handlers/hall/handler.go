package hall

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"hallbook/infras/otel"
	"hallbook/internal/domains/hall/model"
	"hallbook/internal/domains/hall/model/dto"
	"hallbook/internal/domains/hall/service"
	"hallbook/shared"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/validator"
	"hallbook/transport/http/response"
)

type Handler struct {
	service service.Hall
	otel    otel.Otel
}

func New(service service.Hall, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/halls", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateHall)
		routerGroup.Get("/", handler.GetHalls)
		routerGroup.Get("/{id}", handler.GetHallByID)
		routerGroup.Patch("/{id}", handler.UpdateHall)
		routerGroup.Delete("/{id}", handler.DeleteHall)
	})
}

// CreateHall handles the creation of a new hall.
// @Summary Create a new hall
// @Description Create a new hall with pricing configuration and an optional image.
// @Tags Hall
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Hall name"
// @Param description formData string false "Hall description"
// @Param location formData string false "Hall location"
// @Param capacity formData integer false "Hall capacity"
// @Param price_per_hour formData number false "Hourly rate"
// @Param price_per_day formData number false "Daily rate"
// @Param weekend_multiplier formData number false "Weekend multiplier (>= 1)"
// @Param security_deposit formData number false "Flat security deposit"
// @Param image formData file false "Hall image"
// @Success 201 {object} response.Message "Hall created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/halls [post]
// @Security BearerAuth
func (handler *Handler) CreateHall(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHall")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateHallRequest{
		Name:        request.FormValue("name"),
		Description: request.FormValue("description"),
		Location:    request.FormValue("location"),
	}

	if capStr := request.FormValue("capacity"); capStr != constant.Empty {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = c
		}
	}

	req.PricePerHour = formFloat(request, "price_per_hour")
	req.PricePerDay = formFloat(request, "price_per_day")
	req.WeekendMultiplier = formFloat(request, "weekend_multiplier")
	req.SecurityDeposit = formFloat(request, "security_deposit")

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hall")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Hall created successfully")
}

// GetHalls retrieves all halls based on query parameters.
// @Summary Get all halls
// @Description Retrieve all halls with optional filtering and pagination.
// @Tags Hall
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param state query string false "Filter by state (active, deleted)"
// @Success 200 {object} response.Data[dto.GetHallsResponse] "List of halls"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/halls [get]
func (handler *Handler) GetHalls(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHalls")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if location := r.URL.Query().Get(model.FieldLocation); location != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    location,
			Table:    model.TableName,
		})
	}

	state := r.URL.Query().Get(model.FieldState)
	if state == constant.Empty {
		state = model.StateActive
	}

	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    model.FieldState,
		Operator: gDto.FilterOperatorEq,
		Value:    state,
		Table:    model.TableName,
	})

	halls, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get halls")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Halls retrieved successfully")

	response.WithJSON(w, http.StatusOK, halls)
}

// GetHallByID retrieves a hall by its ID.
// @Summary Get a hall by ID
// @Description Retrieve a hall by its unique identifier.
// @Tags Hall
// @Accept json
// @Produce json
// @Param id path string true "Hall ID"
// @Success 200 {object} response.Data[dto.HallResponse] "Hall details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/halls/{id} [get]
func (handler *Handler) GetHallByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHallByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hall, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hall by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hall retrieved successfully")

	response.WithJSON(w, http.StatusOK, hall)
}

// UpdateHall updates an existing hall by its ID.
// @Summary Update a hall by ID
// @Description Update the details or pricing of an existing hall.
// @Tags Hall
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Hall ID"
// @Param name formData string false "Hall name"
// @Param description formData string false "Hall description"
// @Param location formData string false "Hall location"
// @Param capacity formData integer false "Hall capacity"
// @Param price_per_hour formData number false "Hourly rate"
// @Param price_per_day formData number false "Daily rate"
// @Param weekend_multiplier formData number false "Weekend multiplier (>= 1)"
// @Param security_deposit formData number false "Flat security deposit"
// @Param image formData file false "Hall image"
// @Success 200 {object} response.Message "Hall updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/halls/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHall")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateHallRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
	}

	if capStr := r.FormValue("capacity"); capStr != constant.Empty {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = &c
		}
	}

	req.PricePerHour = formFloatPtr(r, "price_per_hour")
	req.PricePerDay = formFloatPtr(r, "price_per_day")
	req.WeekendMultiplier = formFloatPtr(r, "weekend_multiplier")
	req.SecurityDeposit = formFloatPtr(r, "security_deposit")

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hall")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hall updated successfully")
}

// DeleteHall soft deletes a hall by its ID.
// @Summary Delete a hall by ID
// @Description Soft delete a hall. Historical bookings keep referencing it, but it can no longer be booked.
// @Tags Hall
// @Accept json
// @Produce json
// @Param id path string true "Hall ID"
// @Success 200 {object} response.Message "Hall deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/halls/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHall")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hall")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hall deleted successfully")
}

func formFloat(r *http.Request, field string) float64 {
	value := r.FormValue(field)
	if value == constant.Empty {
		return 0
	}

	parsed, err := shared.ConvertStringToFloat(value)
	if err != nil {
		return 0
	}

	return parsed
}

func formFloatPtr(r *http.Request, field string) *float64 {
	value := r.FormValue(field)
	if value == constant.Empty {
		return nil
	}

	parsed, err := shared.ConvertStringToFloat(value)
	if err != nil {
		return nil
	}

	return &parsed
}
