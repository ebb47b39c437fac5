package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusStarted   = "started"
	statusPaused    = "paused"
	statusResumed   = "resumed"
	statusCompleted = "completed"

	errListRecipes     = "failed to load recipes"
	errCreateSession   = "failed to create cooking session"
	errListSessions    = "failed to load sessions"
	errGetSession      = "failed to load session"
	errSessionControl  = "failed to control session"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List cookable recipes
// @Description  Returns the recipes available for session planning. Falls back to a built-in list when the store is empty or slow.
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, recipes"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/recipes [get]
// @Security     BearerAuth
func (h *Handler) listRecipes(c *gin.Context) {
	ctx := c.Request.Context()
	recipes, err := h.services.Recipes.ListCookable(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRecipes, "recipes_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(recipes),
		"recipes": recipes,
	})
}
