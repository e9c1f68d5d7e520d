package handlers

import (
	"net/http"

	"dci-control-server/internal/database/models"
	"dci-control-server/internal/service"

	"github.com/gin-gonic/gin"
)

// IdentityHandler tells callers who they are authenticated as
type IdentityHandler struct {
	users service.ResourceServiceInterface[models.User]
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(users service.ResourceServiceInterface[models.User]) *IdentityHandler {
	return &IdentityHandler{users: users}
}

// Identity handles GET /identity
// @Summary Current identity
// @Description Return the authenticated user with their team
// @Tags identity
// @Produce json
// @Success 200 {object} map[string]interface{} "Identity"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BasicAuth
// @Security BearerAuth
// @Router /identity [get]
func (h *IdentityHandler) Identity(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	embeds := []string{"team"}
	user, err := h.users.Get(c.Request.Context(), caller, caller.UserID, embeds)
	if err != nil {
		RespondError(c, err)
		return
	}

	obj, err := render(user, embeds)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"identity": obj})
}
