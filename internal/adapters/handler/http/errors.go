package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

var notFoundErrors = []error{
	domain.ErrHabitNotFound,
	domain.ErrCheckInNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrNoteNotFound,
	domain.ErrSessionNotFound,
	domain.ErrUserNotFound,
}

var validationErrors = []error{
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitDescTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidColor,
	domain.ErrInvalidRepeatDays,
	domain.ErrInvalidScheduleTime,
	domain.ErrInvalidNotifyOffset,
	domain.ErrInvalidDate,
	domain.ErrInvalidDateRange,
	domain.ErrInvalidTimeSpent,
	domain.ErrCategoryNameEmpty,
	domain.ErrCategoryNameTooLong,
	domain.ErrNoteContentEmpty,
	domain.ErrInvalidDuration,
	domain.ErrInvalidPomodoros,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
}

var conflictErrors = []error{
	domain.ErrCheckInConflict,
	domain.ErrEmailAlreadyExists,
	domain.ErrSessionAlreadyEnded,
}

var unauthenticatedErrors = []error{
	domain.ErrInvalidCredentials,
	services.ErrInvalidIDToken,
	services.ErrTokenRevoked,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case isAny(err, validationErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case isAny(err, conflictErrors):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case isAny(err, unauthenticatedErrors):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrFederatedDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})

	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// currentUser reads the id set by the auth middleware. Handlers behind the
// middleware always have it; its absence is a wiring bug.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
	}
	return userID, ok
}
