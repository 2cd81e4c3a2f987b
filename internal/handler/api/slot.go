package api

import (
	"errors"
	"net/http"

	"slotmarket/internal/domain/booking"
	reqdto "slotmarket/internal/handler/dto/request"
	resdto "slotmarket/internal/handler/dto/response"
	"slotmarket/internal/handler/httperr"
	"slotmarket/internal/usecase/commands"
	"slotmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary Create slot
// @Description Publish a future slot for a service
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Create slot request"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	var req reqdto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", httperr.ValidationDetail(err))
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateSlot(c.Request.Context(), cmd)
	if err != nil {
		status, msg := slotErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.SlotID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load slot", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSlotView(view))
}

// @Summary Get slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrSlotNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load slot", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}

// @Summary Update slot
// @Description Move an unbooked slot to a new date or time
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.UpdateSlotRequest true "Update slot request"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /slots/{id} [patch]
func (h *SlotHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", httperr.ValidationDetail(bindErr))
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err = h.cmds.UpdateSlot(c.Request.Context(), id, cmd); err != nil {
		status, msg := slotErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load slot", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}

// @Summary Delete slot
// @Description Remove an unbooked slot; fails with 400 when it is booked
// @Tags slots
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /slots/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err = h.cmds.DeleteSlot(c.Request.Context(), id); err != nil {
		status, msg := slotErrStatus(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func slotErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrSlotNotFoundWrite):
		return http.StatusNotFound, "Slot not found"
	case errors.Is(err, commands.ErrServiceNotFound):
		return http.StatusNotFound, "Service not found"
	case errors.Is(err, commands.ErrSlotExists):
		return http.StatusConflict, "Slot already exists"
	case errors.Is(err, commands.ErrSlotBooked):
		return http.StatusBadRequest, "Slot is booked"
	case errors.Is(err, booking.ErrPastTime):
		return http.StatusBadRequest, "Slot must be in the future"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
