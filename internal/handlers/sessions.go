package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartchef/internal/models"
	"smartchef/internal/service"
	"smartchef/internal/voice"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Request DTO for creating a session. Recipes can be referenced by id
// (resolved against the cookable listing) or supplied inline; both may be
// combined.
type createSessionRequest struct {
	RecipeIDs []string             `json:"recipe_ids"`
	Recipes   []models.RecipeInput `json:"recipes"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type commandRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// CreateSessionRequest is an exported model for Swagger docs of the createSession payload.
type CreateSessionRequest struct {
	// Recipe ids to resolve against /api/v1/recipes
	RecipeIDs []string `json:"recipe_ids" example:"fb1,fb3"`
	// Inline recipe definitions, used as-is
	Recipes []models.RecipeInput `json:"recipes,omitempty"`
}

// @Summary      Create cooking session
// @Description  Schedules the selected recipes across both burners and stores the session in pending state.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body   CreateSessionRequest  true  "Recipe selection"
// @Success      200   {object}  models.CookingSession
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sessions [post]
// @Security     BearerAuth
func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	ctx := c.Request.Context()
	recipes := req.Recipes
	if len(req.RecipeIDs) > 0 {
		resolved, err := h.services.Recipes.Resolve(ctx, req.RecipeIDs)
		if err != nil {
			h.logAndJSONError(c, http.StatusInternalServerError, errCreateSession, "session_resolve_recipes_failed", err)
			return
		}
		recipes = append(resolved, recipes...)
	}

	sess, err := h.services.Sessions.Create(ctx, currentUserID(c), recipes)
	if err != nil {
		// Empty selections and other validation problems come back as plain errors.
		if h.log != nil {
			h.log.Infow("session_create_rejected", "err", err, "user_id", currentUserID(c))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, sessions"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions [get]
// @Security     BearerAuth
func (h *Handler) listSessions(c *gin.Context) {
	ctx := c.Request.Context()
	sessions, err := h.services.Sessions.ListByUser(ctx, currentUserID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListSessions, "sessions_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

// loadOwnedSession fetches a session by path id and enforces ownership.
// Writes the error response itself and returns nil when the caller should stop.
func (h *Handler) loadOwnedSession(c *gin.Context) *models.CookingSession {
	id := c.Param("id")
	sess, err := h.services.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSession, "session_get_failed", err, "session_id", id)
		return nil
	}
	// Unknown and foreign sessions look the same to the caller.
	if sess == nil || sess.UserID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil
	}
	return sess
}

// attachOwnedController resolves ownership, then attaches the live controller.
func (h *Handler) attachOwnedController(c *gin.Context) *service.Controller {
	sess := h.loadOwnedSession(c)
	if sess == nil {
		return nil
	}
	ctrl, err := h.services.Runtime.Attach(c.Request.Context(), sess.ID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSessionControl, "session_attach_failed", err, "session_id", sess.ID)
		return nil
	}
	return ctrl
}

// @Summary      Get session
// @Tags         sessions
// @Produce      json
// @Param        id   path   string  true  "Session id"
// @Success      200  {object}  models.CookingSession
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSession(c *gin.Context) {
	sess := h.loadOwnedSession(c)
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, sess)
}

// @Summary      Update session notes
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path   string        true  "Session id"
// @Param        body  body   notesRequest  true  "Notes"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/notes [put]
// @Security     BearerAuth
func (h *Handler) updateNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sess := h.loadOwnedSession(c)
	if sess == nil {
		return
	}
	if err := h.services.Sessions.UpdateNotes(c.Request.Context(), sess.ID, req.Notes); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSessionControl, "session_update_notes_failed", err, "session_id", sess.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// Respond with a control status and the controller's live state.
func respondWithLiveState(c *gin.Context, status string, ctrl *service.Controller) {
	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"state":  ctrl.State(),
	})
}

// @Summary      Start cooking
// @Description  Transitions pending -> cooking and starts the session clock. Starting an already cooking session is a no-op.
// @Tags         sessions
// @Produce      json
// @Param        id   path   string  true  "Session id"
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/start [post]
// @Security     BearerAuth
func (h *Handler) startSession(c *gin.Context) {
	ctrl := h.attachOwnedController(c)
	if ctrl == nil {
		return
	}
	if err := ctrl.Start(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSessionControl, "session_start_failed", err, "session_id", c.Param("id"))
		return
	}
	respondWithLiveState(c, statusStarted, ctrl)
}

// @Summary      Pause cooking
// @Tags         sessions
// @Produce      json
// @Param        id   path   string  true  "Session id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/pause [post]
// @Security     BearerAuth
func (h *Handler) pauseSession(c *gin.Context) {
	ctrl := h.attachOwnedController(c)
	if ctrl == nil {
		return
	}
	ctrl.Pause(c.Request.Context())
	respondWithLiveState(c, statusPaused, ctrl)
}

// @Summary      Resume cooking
// @Tags         sessions
// @Produce      json
// @Param        id   path   string  true  "Session id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/resume [post]
// @Security     BearerAuth
func (h *Handler) resumeSession(c *gin.Context) {
	ctrl := h.attachOwnedController(c)
	if ctrl == nil {
		return
	}
	ctrl.Resume(c.Request.Context())
	respondWithLiveState(c, statusResumed, ctrl)
}

// @Summary      Advance to next step
// @Tags         sessions
// @Produce      json
// @Param        id   path   string  true  "Session id"
// @Success      200  {object}  map[string]interface{}  "status, prompt, state"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/next [post]
// @Security     BearerAuth
func (h *Handler) nextStep(c *gin.Context) {
	ctrl := h.attachOwnedController(c)
	if ctrl == nil {
		return
	}
	prompt, err := ctrl.NextStep(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSessionControl, "session_next_step_failed", err, "session_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
		"prompt": prompt,
		"state":  ctrl.State(),
	})
}

// @Summary      Complete cooking
// @Description  Transitions cooking -> completed and stops the clock. Irreversible.
// @Tags         sessions
// @Produce      json
// @Param        id   path   string  true  "Session id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/complete [post]
// @Security     BearerAuth
func (h *Handler) completeSession(c *gin.Context) {
	ctrl := h.attachOwnedController(c)
	if ctrl == nil {
		return
	}
	if err := ctrl.Complete(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSessionControl, "session_complete_failed", err, "session_id", c.Param("id"))
		return
	}
	respondWithLiveState(c, statusCompleted, ctrl)
	h.services.Runtime.Detach(ctrl.Session().ID)
}

// @Summary      Voice command
// @Description  Interprets a Chinese transcript and dispatches the matched command. Unrecognized transcripts are reported, not errors.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path   string          true  "Session id"
// @Param        body  body   commandRequest  true  "Transcript"
// @Success      200   {object}  map[string]interface{}  "recognized, action, response, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/command [post]
// @Security     BearerAuth
func (h *Handler) voiceCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctrl := h.attachOwnedController(c)
	if ctrl == nil {
		return
	}

	cmd := voice.Parse(req.Transcript)
	if cmd == nil {
		c.JSON(http.StatusOK, gin.H{
			"recognized": false,
			"state":      ctrl.State(),
		})
		return
	}

	spoken, err := ctrl.HandleCommand(c.Request.Context(), cmd)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSessionControl, "session_command_failed", err, "session_id", c.Param("id"), "action", cmd.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recognized": true,
		"action":     cmd.Type,
		"response":   spoken,
		"state":      ctrl.State(),
	})
}

// @Summary      Live session state
// @Description  Snapshot of the dual-burner state at the current session minute.
// @Tags         sessions
// @Produce      json
// @Param        id   path   string  true  "Session id"
// @Success      200  {object}  service.LiveState
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/state [get]
// @Security     BearerAuth
func (h *Handler) sessionState(c *gin.Context) {
	ctrl := h.attachOwnedController(c)
	if ctrl == nil {
		return
	}
	c.JSON(http.StatusOK, ctrl.State())
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      Session progress log
// @Description  Filter progress records by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         sessions
// @Produce      json
// @Param        id      path    string  true   "Session id"
// @Param        from    query   string  false  "Start of range"  example(2026-08-01)
// @Param        to      query   string  false  "End of range. Date-only treated as end of day."  example(2026-08-31)
// @Param        status  query   string  false  "Record status"  Enums(active,completed,skipped)
// @Success      200     {object}  map[string]interface{}  "count, records"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/sessions/{id}/progress [get]
// @Security     BearerAuth
func (h *Handler) sessionProgress(c *gin.Context) {
	sess := h.loadOwnedSession(c)
	if sess == nil {
		return
	}
	var (
		from   time.Time
		to     time.Time
		status = strings.ToLower(strings.TrimSpace(c.Query("status")))
		err    error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		// If the user didn't include a time component, treat "to" as the end of that day.
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}

	records, err := h.services.Progress.List(c.Request.Context(), sess.ID, service.ProgressFilter{
		From:   from,
		To:     to,
		Status: status,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_progress_failed", "err", err, "session_id", sess.ID, "from", from, "to", to, "status", status)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"records": records,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
