package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name                      string   `json:"name" binding:"required"`
	Description               string   `json:"description"`
	Category                  string   `json:"category"`
	Color                     string   `json:"color"`
	RepeatDays                []int    `json:"repeat_days"`
	ScheduleTimes             []string `json:"schedule_times"`
	NotificationMinutesBefore *int     `json:"notification_minutes_before"`
}

type updateHabitRequest struct {
	Name                      string   `json:"name"`
	Description               string   `json:"description"`
	Category                  string   `json:"category"`
	Color                     string   `json:"color"`
	IsActive                  *bool    `json:"is_active"`
	RepeatDays                []int    `json:"repeat_days"`
	ScheduleTimes             []string `json:"schedule_times"`
	NotificationMinutesBefore *int     `json:"notification_minutes_before"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/reminders", h.ScheduleReminders)
	}
}

// Create godoc
// @Summary  Create a habit
// @Tags     habits
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  201 {object} domain.Habit
// @Failure  400 {object} map[string]string
// @Router   /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:                    userID,
		Name:                      req.Name,
		Description:               req.Description,
		Category:                  req.Category,
		Color:                     req.Color,
		RepeatDays:                req.RepeatDays,
		ScheduleTimes:             req.ScheduleTimes,
		NotificationMinutesBefore: req.NotificationMinutesBefore,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary  List habits, newest first
// @Tags     habits
// @Produce  json
// @Security BearerAuth
// @Param    category query string false "only habits in this category"
// @Success  200 {array} domain.Habit
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var (
		list []*domain.Habit
		err  error
	)
	if category := c.Query("category"); category != "" {
		list, err = h.svc.ListByCategory(c.Request.Context(), userID, category)
	} else {
		list, err = h.svc.ListByUserID(c.Request.Context(), userID)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:                        c.Param("id"),
		UserID:                    userID,
		Name:                      req.Name,
		Description:               req.Description,
		Category:                  req.Category,
		Color:                     req.Color,
		IsActive:                  req.IsActive,
		RepeatDays:                req.RepeatDays,
		ScheduleTimes:             req.ScheduleTimes,
		NotificationMinutesBefore: req.NotificationMinutesBefore,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
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

// ScheduleReminders godoc
// @Summary  Arm today's reminders for a habit
// @Tags     habits
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "day to schedule (YYYY-MM-DD), defaults to today"
// @Success  200 {object} map[string]int
// @Router   /habits/{id}/reminders [post]
func (h *HabitHandler) ScheduleReminders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateLayout, raw, time.Local)
		if err != nil {
			badRequest(c, domain.ErrInvalidDate)
			return
		}
		day = parsed
	}

	armed, err := h.svc.ScheduleReminders(c.Request.Context(), c.Param("id"), userID, day)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"armed": armed})
}
