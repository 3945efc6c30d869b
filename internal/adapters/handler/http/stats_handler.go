package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id/stats", h.GetHabitStats)
	r.GET("/stats", h.GetUserStats)
}

// GetHabitStats godoc
// @Summary  Completion statistics for one habit
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} domain.HabitStats
// @Failure  404 {object} map[string]string
// @Router   /habits/{id}/stats [get]
func (h *StatsHandler) GetHabitStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.svc.HabitStats(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUserStats godoc
// @Summary  Statistics for every habit of the caller
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} domain.HabitStats
// @Router   /stats [get]
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.svc.UserStats(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
