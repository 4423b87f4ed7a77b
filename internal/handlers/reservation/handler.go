package reservation

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lunchtime/infras/otel"
	"lunchtime/internal/domains/reservation/model/dto"
	"lunchtime/internal/domains/reservation/service"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/validator"
	"lunchtime/transport/http/response"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/select_date_time", handler.SelectDateTime)
	router.Get("/select_restaurant/{date}/{time}", handler.SelectRestaurant)
	router.Get("/add_reservation/{date}/{time}/{restaurantID}", handler.GetAvailability)
	router.Post("/add_reservation/{date}/{time}/{restaurantID}", handler.CreateReservation)
	router.Get("/reservation_list", handler.GetMyReservations)
	router.Get("/reservation/{id}", handler.GetReservation)
	router.Delete("/delete_reservation/{id}", handler.DeleteReservation)
}

// SelectDateTime is the first wizard stage. It validates the slot and
// redirects to the restaurant selection for it.
// @Summary Select a reservation slot
// @Description Validate the desired date and time, then redirect to restaurant selection for that slot.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.SelectSlotRequest true "Slot Request"
// @Success 302 {string} string "Redirect to /v1/select_restaurant/{date}/{time}"
// @Failure 400 {object} response.Error
// @Router /v1/select_date_time [post]
// @Security BearerAuth
func (handler *Handler) SelectDateTime(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectDateTime")
	defer scope.End()

	req := dto.SelectSlotRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	date, slotTime, err := handler.service.ValidateSlot(ctx, req.Date, req.Time)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slot selected successfully")

	location := fmt.Sprintf("/v1/select_restaurant/%s/%s",
		date.Format(constant.SlotDateFormat),
		slotTime.Format(constant.SlotTimeFormat),
	)

	http.Redirect(w, r, location, http.StatusFound)
}

// SelectRestaurant is the second wizard stage: restaurants to choose for the
// slot carried in the URL.
// @Summary Select a restaurant for a slot
// @Description List restaurants for the chosen slot. Date is YYYY-MM-DD, time is HH:MM:SS.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param date path string true "Reservation date (YYYY-MM-DD)"
// @Param time path string true "Reservation time (HH:MM:SS)"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.SelectRestaurantResponse] "Slot and restaurants"
// @Failure 400 {object} response.Error
// @Router /v1/select_restaurant/{date}/{time} [get]
// @Security BearerAuth
func (handler *Handler) SelectRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectRestaurant")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.SelectRestaurant(ctx,
		chi.URLParam(r, constant.RequestParamDate),
		chi.URLParam(r, constant.RequestParamTime),
		queryParams,
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to select restaurant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Restaurants for slot retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetAvailability is the third wizard stage: free tables and the menu for the
// chosen slot and restaurant.
// @Summary Get availability for a slot
// @Description List the restaurant's free tables for the slot plus its menu for pre-ordering. Returns a message when no table is free.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param date path string true "Reservation date (YYYY-MM-DD)"
// @Param time path string true "Reservation time (HH:MM:SS)"
// @Param restaurantID path string true "Restaurant ID"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Available tables and meals"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/add_reservation/{date}/{time}/{restaurantID} [get]
// @Security BearerAuth
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	res, err := handler.service.Availability(ctx,
		chi.URLParam(r, constant.RequestParamDate),
		chi.URLParam(r, constant.RequestParamTime),
		chi.URLParam(r, constant.RequestParamRestaurantID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateReservation commits the reservation and redirects to the caller's
// reservation list.
// @Summary Create a reservation
// @Description Reserve a table for the slot, optionally pre-ordering meals, then redirect to the reservation list. Fails with 409 when the table was just taken.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param date path string true "Reservation date (YYYY-MM-DD)"
// @Param time path string true "Reservation time (HH:MM:SS)"
// @Param restaurantID path string true "Restaurant ID"
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 302 {string} string "Redirect to /v1/reservation_list"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/add_reservation/{date}/{time}/{restaurantID} [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	_, err := handler.service.Create(ctx, req,
		chi.URLParam(r, constant.RequestParamDate),
		chi.URLParam(r, constant.RequestParamTime),
		chi.URLParam(r, constant.RequestParamRestaurantID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation created successfully by user " + user)

	http.Redirect(w, r, constant.PathReservationList, http.StatusFound)
}

// GetMyReservations lists the caller's reservations, most recent slot first.
// @Summary List my reservations
// @Description Retrieve the authenticated user's reservations with restaurant and meal names.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 401 {object} response.Error
// @Router /v1/reservation_list [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reservations, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservation returns one reservation with its check-in QR code.
// @Summary Get a reservation
// @Description Retrieve one reservation with a QR code for check-in. Only its owner or an admin may view it.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationDetailResponse] "Reservation detail"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservation/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// DeleteReservation cancels a reservation, freeing its table for the slot.
// @Summary Cancel a reservation
// @Description Cancel a reservation. Its table becomes available for the slot again.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/delete_reservation/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}
