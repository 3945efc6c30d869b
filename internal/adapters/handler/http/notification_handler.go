package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/reminders"
)

// NotificationHistory is the part of the reminder scheduler exposed over HTTP.
type NotificationHistory interface {
	Notifications(userID string) []reminders.Notification
	ClearOldNotifications(userID string, maxAge time.Duration)
}

type NotificationHandler struct {
	history NotificationHistory
}

func NewNotificationHandler(history NotificationHistory) *NotificationHandler {
	return &NotificationHandler{history: history}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", h.List)
	router.DELETE("/notifications", h.ClearOld)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list := h.history.Notifications(userID)
	if list == nil {
		list = []reminders.Notification{}
	}
	c.JSON(http.StatusOK, list)
}

// maxAgeMinutes bounds max_age_minutes so the window fits in a time.Duration.
const maxAgeMinutes = math.MaxInt64 / int64(time.Minute)

// ClearOld prunes the caller's history entries older than max_age_minutes
// (default 5).
func (h *NotificationHandler) ClearOld(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	maxAge := reminders.DefaultMaxAge
	if raw := c.Query("max_age_minutes"); raw != "" {
		minutes, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || minutes < 0 || minutes > maxAgeMinutes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_age_minutes must be a non-negative integer"})
			return
		}
		maxAge = time.Duration(minutes) * time.Minute
	}

	h.history.ClearOldNotifications(userID, maxAge)
	c.Status(http.StatusNoContent)
}
