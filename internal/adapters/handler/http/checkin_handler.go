package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type CheckInHandler struct {
	svc *services.CheckInService
}

func NewCheckInHandler(svc *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{svc: svc}
}

// Completed is a pointer so that an explicit false is told apart from a
// missing field.
type upsertCheckInRequest struct {
	Date      string  `json:"date" binding:"required"`
	Completed *bool   `json:"completed" binding:"required"`
	TimeSpent *int    `json:"time_spent"`
	Notes     *string `json:"notes"`
}

func (h *CheckInHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/habits/:id/checkins", h.List)
	router.PUT("/habits/:id/checkins", h.Upsert)
	router.GET("/habits/:id/checkins/:date", h.Lookup)
	router.DELETE("/checkins/:id", h.Delete)
}

// Upsert godoc
// @Summary  Record the state of a habit for one day
// @Tags     checkins
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} domain.CheckIn
// @Failure  400,404 {object} map[string]string
// @Router   /habits/{id}/checkins [put]
func (h *CheckInHandler) Upsert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req upsertCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	checkIn, err := h.svc.Upsert(c.Request.Context(), services.UpsertCheckInInput{
		UserID:    userID,
		HabitID:   c.Param("id"),
		Date:      req.Date,
		Completed: *req.Completed,
		TimeSpent: req.TimeSpent,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkIn)
}

// List godoc
// @Summary  List check-ins of a habit
// @Tags     checkins
// @Produce  json
// @Security BearerAuth
// @Param    from query string false "range start (YYYY-MM-DD), requires to"
// @Param    to   query string false "range end (YYYY-MM-DD), requires from"
// @Success  200 {array} domain.CheckIn
// @Router   /habits/{id}/checkins [get]
func (h *CheckInHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habitID := c.Param("id")
	from, to := c.Query("from"), c.Query("to")

	var (
		list []*domain.CheckIn
		err  error
	)
	switch {
	case from == "" && to == "":
		list, err = h.svc.ListByHabit(c.Request.Context(), habitID, userID)
	case from == "" || to == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be given together"})
		return
	default:
		list, err = h.svc.ListInRange(c.Request.Context(), habitID, userID, from, to)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *CheckInHandler) Lookup(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	checkIn, err := h.svc.LookupByDate(c.Request.Context(), c.Param("id"), userID, c.Param("date"))
	if err != nil {
		handleError(c, err)
		return
	}
	if checkIn == nil {
		handleError(c, domain.ErrCheckInNotFound)
		return
	}

	c.JSON(http.StatusOK, checkIn)
}

func (h *CheckInHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
