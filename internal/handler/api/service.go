package api

import (
	"errors"
	"net/http"
	"strconv"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/domain/service"
	reqdto "slotmarket/internal/handler/dto/request"
	resdto "slotmarket/internal/handler/dto/response"
	"slotmarket/internal/handler/httperr"
	"slotmarket/internal/handler/middleware"
	"slotmarket/internal/usecase/commands"
	"slotmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ServiceHandler struct {
	cmds    commands.ServiceCommands
	q       queries.ServiceQueries
	ratings queries.RatingQueries
	rates   queries.RateQueries
	slots   queries.SlotQueries
}

func NewServiceHandler(
	cmds commands.ServiceCommands,
	q queries.ServiceQueries,
	ratings queries.RatingQueries,
	rates queries.RateQueries,
	slots queries.SlotQueries,
) *ServiceHandler {
	return &ServiceHandler{cmds: cmds, q: q, ratings: ratings, rates: rates, slots: slots}
}

// @Summary Create service
// @Description Create a bookable service listing
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateServiceRequest true "Create service request"
// @Success 201 {object} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", httperr.ValidationDetail(err))
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid price", nil)
		return
	}

	result, err := h.cmds.CreateService(c.Request.Context(), cmd, authorID)
	if err != nil {
		status, msg := serviceErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ServiceID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromServiceView(view))
}

// @Summary Get service
// @Description Get a service with its average rating
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrServiceNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary List services
// @Description List active services, newest first
// @Tags services
// @Produce json
// @Param limit query int false "Page size"
// @Param after query string false "Pagination cursor"
// @Success 200 {object} resdto.ServiceListResponse
// @Failure 400 {object} map[string]string
// @Router /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.List(c.Request.Context(), cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list services", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceList(items, next))
}

// @Summary Update service
// @Description Partially update a service listing
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body reqdto.UpdateServiceRequest true "Update service request"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /services/{id} [patch]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateServiceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", httperr.ValidationDetail(bindErr))
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid price", nil)
		return
	}

	if err = h.cmds.UpdateService(c.Request.Context(), id, cmd); err != nil {
		status, msg := serviceErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary Delete service
// @Description Soft-delete a service and drop its cached rating
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err = h.cmds.DeleteService(c.Request.Context(), id); err != nil {
		status, msg := serviceErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get average rating
// @Description Get a service's average rating, 0.00 when unrated
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.AvgRatingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id}/avg-rating [get]
func (h *ServiceHandler) AvgRating(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	avg, err := h.ratings.AverageRating(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrServiceNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to compute rating", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AvgRatingResponse{ServiceID: id, AvgRating: avg.StringFixed(2)})
}

// @Summary List service rates
// @Description List a service's ratings, newest first
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Param limit query int false "Page size"
// @Param after query string false "Pagination cursor"
// @Success 200 {object} resdto.RateListResponse
// @Failure 400 {object} map[string]string
// @Router /services/{id}/rates [get]
func (h *ServiceHandler) ListRates(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.rates.ListByService(c.Request.Context(), id, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list rates", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRateList(items, next))
}

// @Summary List service slots
// @Description List a service's slots in slot order, optionally for one date
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /services/{id}/slots [get]
func (h *ServiceHandler) ListSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var date *booking.Date
	if v := c.Query("date"); v != "" {
		d, derr := booking.ParseDate(v)
		if derr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, derr, "Invalid date", nil)
			return
		}
		date = &d
	}

	items, err := h.slots.ListByService(c.Request.Context(), id, date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list slots", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(items))
}

func serviceErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrServiceNameTaken):
		return http.StatusConflict, "Service name already taken"
	case errors.Is(err, commands.ErrServiceNotFound):
		return http.StatusNotFound, "Service not found"
	case errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrNameTooLong),
		errors.Is(err, service.ErrNegativePrice):
		return http.StatusBadRequest, "Invalid service"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
