package api

import (
	"errors"
	"net/http"

	"slotmarket/internal/domain/rate"
	reqdto "slotmarket/internal/handler/dto/request"
	resdto "slotmarket/internal/handler/dto/response"
	"slotmarket/internal/handler/httperr"
	"slotmarket/internal/handler/middleware"
	"slotmarket/internal/usecase/commands"
	"slotmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RateHandler struct {
	cmds commands.RateCommands
	q    queries.RateQueries
}

func NewRateHandler(cmds commands.RateCommands, q queries.RateQueries) *RateHandler {
	return &RateHandler{cmds: cmds, q: q}
}

// @Summary Create rate
// @Description Rate a service 1-5; one live rating per user and service
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRateRequest true "Create rate request"
// @Success 201 {object} resdto.RateResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rates [post]
func (h *RateHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", httperr.ValidationDetail(err))
		return
	}

	cmd := commands.CreateRateRequest{ServiceID: req.ServiceID, Rating: req.Rating}
	result, err := h.cmds.CreateRate(c.Request.Context(), cmd, userID)
	if err != nil {
		status, msg := rateErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.RateID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rate", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRateView(view))
}

// @Summary Update rate
// @Description Change the score of one's own rating
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Param request body reqdto.UpdateRateRequest true "Update rate request"
// @Success 200 {object} resdto.RateResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rates/{id} [patch]
func (h *RateHandler) Update(c *gin.Context) {
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
	var req reqdto.UpdateRateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", httperr.ValidationDetail(bindErr))
		return
	}

	if err = h.cmds.UpdateRate(c.Request.Context(), id, req.Rating, actorID); err != nil {
		status, msg := rateErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rate", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRateView(view))
}

// @Summary Delete rate
// @Description Remove a rating; owners and moderators only
// @Tags rates
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rates/{id} [delete]
func (h *RateHandler) Delete(c *gin.Context) {
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

	if err = h.cmds.DeleteRate(c.Request.Context(), id, actorID, actorRole); err != nil {
		status, msg := rateErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func rateErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrAlreadyRated):
		return http.StatusConflict, "Service already rated"
	case errors.Is(err, commands.ErrRateNotFoundWrite):
		return http.StatusNotFound, "Rate not found"
	case errors.Is(err, commands.ErrRateNotOwned):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, commands.ErrServiceNotFound):
		return http.StatusNotFound, "Service not found"
	case errors.Is(err, rate.ErrInvalidRating):
		return http.StatusBadRequest, "Rating must be between 1 and 5"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
