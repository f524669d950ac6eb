package api

import (
	"errors"
	"net/http"

	"vehicle-rental/internal/domain/booking"
	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book an available vehicle for a rental period
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, usecase.ErrUnauthorized, "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	start, err := reqdto.ParseDate(req.RentStartDate)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rent_start_date", nil)
		return
	}
	end, err := reqdto.ParseDate(req.RentEndDate)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rent_end_date", nil)
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), commands.CreateBookingInput{
		CustomerID:    actor.ID,
		VehicleID:     req.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found", nil)
		case errors.Is(err, commands.ErrVehicleUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle is currently not available", nil)
		case errors.Is(err, commands.ErrInvalidDateRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Rent end date must be after start date", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Admins see all bookings, customers see their own
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, usecase.ErrUnauthorized, "Internal server error", nil)
		return
	}

	views, err := h.bookingQueries.List(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Get booking
// @Description Get a booking by ID. Customers may only read their own.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, usecase.ErrUnauthorized, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		return
	}

	if !actor.Role.IsAdmin() && view.CustomerID != actor.ID {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrForbidden, "Access denied", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking status
// @Description Cancel or return an active booking and free the vehicle
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, usecase.ErrUnauthorized, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	target, err := booking.NewStatus(req.Status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid target status", nil)
		return
	}

	view, err := h.bookingCommands.UpdateStatus(c.Request.Context(), actor, id, target)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errors.Is(err, commands.ErrAlreadyFinalized):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking is already finalized", nil)
		case errors.Is(err, commands.ErrCancellationClosed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Cannot cancel a booking after the rent start date", nil)
		case errors.Is(err, commands.ErrInvalidTargetStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid target status", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
