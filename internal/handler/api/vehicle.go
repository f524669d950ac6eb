package api

import (
	"errors"
	"net/http"

	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	vehicleCommands commands.VehicleCommands
	vehicleQueries  queries.VehicleQueries
}

func NewVehicleHandler(vehicleCommands commands.VehicleCommands, vehicleQueries queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		vehicleCommands: vehicleCommands,
		vehicleQueries:  vehicleQueries,
	}
}

// @Summary Create vehicle
// @Description Add a vehicle to the fleet (admin only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVehicleRequest true "Vehicle request"
// @Success 201 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	var req reqdto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.vehicleCommands.Create(c.Request.Context(), commands.CreateVehicleInput{
		Name:               req.Name,
		Category:           req.Category,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateVehicle):
			httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle with this registration number already exists", nil)
		case errors.Is(err, commands.ErrInvalidVehicleInput):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromVehicleView(view))
}

// @Summary List vehicles
// @Description List the whole fleet
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.VehicleResponse
// @Failure 401 {object} httperr.Response
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	views, err := h.vehicleQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleViews(views))
}

// @Summary Get vehicle
// @Description Get a vehicle by ID
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle ID format", nil)
		return
	}

	view, err := h.vehicleQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(view))
}

// @Summary Update vehicle
// @Description Partially update a vehicle (admin only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vehicles/{id} [patch]
func (h *VehicleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle ID format", nil)
		return
	}

	var req reqdto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.vehicleCommands.Update(c.Request.Context(), id, commands.UpdateVehicleInput{
		Name:               req.Name,
		Category:           req.Category,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: req.AvailabilityStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found", nil)
		case errors.Is(err, commands.ErrDuplicateVehicle):
			httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle with this registration number already exists", nil)
		case errors.Is(err, commands.ErrInvalidVehicleInput), errors.Is(err, commands.ErrNoVehicleFieldsToSet):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(view))
}

// @Summary Delete vehicle
// @Description Remove a vehicle without active bookings (admin only)
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle ID format", nil)
		return
	}

	if err := h.vehicleCommands.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found", nil)
		case errors.Is(err, commands.ErrVehicleHasBookings):
			httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle has active bookings", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
