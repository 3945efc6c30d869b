package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

// AnnotationHandler serves the secondary records hanging off a habit:
// notes, distractions and pomodoro sessions.
type AnnotationHandler struct {
	notes        *services.NoteService
	distractions *services.DistractionService
	pomodoros    *services.PomodoroService
}

func NewAnnotationHandler(notes *services.NoteService, distractions *services.DistractionService, pomodoros *services.PomodoroService) *AnnotationHandler {
	return &AnnotationHandler{
		notes:        notes,
		distractions: distractions,
		pomodoros:    pomodoros,
	}
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

type startPomodoroRequest struct {
	Duration           int `json:"duration" binding:"required"`
	CompletedPomodoros int `json:"completed_pomodoros"`
}

type endPomodoroRequest struct {
	CompletedPomodoros *int `json:"completed_pomodoros"`
}

func (h *AnnotationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/habits/:id/notes", h.ListNotes)
	router.POST("/habits/:id/notes", h.CreateNote)
	router.PUT("/notes/:id", h.UpdateNote)
	router.DELETE("/notes/:id", h.DeleteNote)

	router.GET("/habits/:id/distractions", h.ListDistractions)
	router.POST("/habits/:id/distractions", h.CreateDistraction)
	router.DELETE("/distractions/:id", h.DeleteDistraction)

	router.GET("/habits/:id/pomodoros", h.ListPomodoros)
	router.POST("/habits/:id/pomodoros", h.StartPomodoro)
	router.POST("/pomodoros/:id/end", h.EndPomodoro)
}

func (h *AnnotationHandler) CreateNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	note, err := h.notes.Create(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *AnnotationHandler) ListNotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notes, err := h.notes.List(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *AnnotationHandler) UpdateNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	note, err := h.notes.Update(c.Request.Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *AnnotationHandler) DeleteNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AnnotationHandler) CreateDistraction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	note, err := h.distractions.Create(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *AnnotationHandler) ListDistractions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notes, err := h.distractions.List(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *AnnotationHandler) DeleteDistraction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.distractions.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AnnotationHandler) StartPomodoro(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req startPomodoroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.pomodoros.Start(c.Request.Context(), services.StartPomodoroInput{
		UserID:             userID,
		HabitID:            c.Param("id"),
		Duration:           req.Duration,
		CompletedPomodoros: req.CompletedPomodoros,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *AnnotationHandler) ListPomodoros(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sessions, err := h.pomodoros.List(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// EndPomodoro accepts an empty body; the count is only overridden when given.
func (h *AnnotationHandler) EndPomodoro(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req endPomodoroRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	session, err := h.pomodoros.End(c.Request.Context(), c.Param("id"), userID, req.CompletedPomodoros)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
