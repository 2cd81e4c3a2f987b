package api

import (
	"errors"
	"net/http"
	"strconv"

	"slotmarket/internal/domain/booking"
	reqdto "slotmarket/internal/handler/dto/request"
	resdto "slotmarket/internal/handler/dto/response"
	"slotmarket/internal/handler/httperr"
	"slotmarket/internal/handler/middleware"
	"slotmarket/internal/usecase/commands"
	"slotmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds         commands.BookingCommands
	q            queries.BookingQueries
	availability queries.AvailabilityQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, availability queries.AvailabilityQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, availability: availability}
}

// @Summary Create booking
// @Description Book a service slot; fails with 409 when the slot is taken
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", httperr.ValidationDetail(err))
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), cmd, userID)
	if err != nil {
		status, msg := bookingErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	actorRole, _ := middleware.GetUserRole(c)
	view, err := h.q.GetByID(c.Request.Context(), userID, actorRole, result.BookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Check slot availability
// @Description Check whether a (service, date, time) slot is free
// @Tags bookings
// @Produce json
// @Param service query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Time (HH:MM or HH:MM:SS)"
// @Success 200 {object} resdto.CheckSlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/check-slot [get]
func (h *BookingHandler) CheckSlot(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Query("service"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid service", nil)
		return
	}
	date, err := booking.ParseDate(c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}
	timeOfDay, err := booking.ParseTimeOfDay(c.Query("time"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time", nil)
		return
	}

	key := booking.SlotKey{ServiceID: serviceID, Date: date, Time: timeOfDay}
	available, err := h.availability.CheckSlot(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, queries.ErrServiceNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to check slot", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.CheckSlotResponse{Available: available})
}

// @Summary Get booking
// @Description Get a booking by ID; owners and managers only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	view, err := h.q.GetByID(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, queries.ErrBookingAccess):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings in slot order; non-managers only see their own
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param service_id query string false "Filter by service"
// @Param user_id query string false "Filter by user (managers only)"
// @Param status query string false "Filter by status"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param upcoming query bool false "Only future bookings"
// @Param limit query int false "Page size"
// @Param after query string false "Pagination cursor"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	filters, err := parseBookingFilters(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filters", nil)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.List(c.Request.Context(), actorID, actorRole, filters, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bookings", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items, next))
}

// @Summary Update booking
// @Description Update a booking; slot changes re-run the conflict check
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Update booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [patch]
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", httperr.ValidationDetail(bindErr))
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err = h.cmds.UpdateBooking(c.Request.Context(), id, cmd, actorID, actorRole); err != nil {
		status, msg := bookingErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Delete booking
// @Description Soft-delete a booking and free its slot
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	if err = h.cmds.DeleteBooking(c.Request.Context(), id, actorID, actorRole); err != nil {
		status, msg := bookingErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func bookingErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrSlotConflict):
		return http.StatusConflict, "Slot already booked"
	case errors.Is(err, commands.ErrServiceNotFound):
		return http.StatusNotFound, "Service not found"
	case errors.Is(err, commands.ErrBookingNotFoundWrite):
		return http.StatusNotFound, "Booking not found"
	case errors.Is(err, commands.ErrBookingNotOwned):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, commands.ErrServiceNotBookable):
		return http.StatusBadRequest, "Service not bookable"
	case errors.Is(err, commands.ErrUserDeleted):
		return http.StatusBadRequest, "User is deleted"
	case errors.Is(err, booking.ErrPastTime):
		return http.StatusBadRequest, "Cannot book a past time"
	case errors.Is(err, booking.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid status"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func parseBookingFilters(c *gin.Context) (queries.BookingFilters, error) {
	var filters queries.BookingFilters
	if v := c.Query("service_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filters, err
		}
		filters.ServiceID = &id
	}
	if v := c.Query("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filters, err
		}
		filters.UserID = &id
	}
	if v := c.Query("status"); v != "" {
		status, err := booking.NewStatus(v)
		if err != nil {
			return filters, err
		}
		filters.Status = &status
	}
	if v := c.Query("date"); v != "" {
		date, err := booking.ParseDate(v)
		if err != nil {
			return filters, err
		}
		filters.Date = &date
	}
	if v := c.Query("upcoming"); v != "" {
		upcoming, err := strconv.ParseBool(v)
		if err != nil {
			return filters, err
		}
		filters.Upcoming = upcoming
	}
	return filters, nil
}
