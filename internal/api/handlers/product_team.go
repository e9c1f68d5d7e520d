package handlers

import (
	"net/http"

	"dci-control-server/internal/schema"
	"dci-control-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductTeamHandler handles the teams granted access to a product
type ProductTeamHandler struct {
	service service.ProductTeamServiceInterface
}

// NewProductTeamHandler creates a new product team handler
func NewProductTeamHandler(svc service.ProductTeamServiceInterface) *ProductTeamHandler {
	return &ProductTeamHandler{service: svc}
}

// Register mounts the association routes under a product group
func (h *ProductTeamHandler) Register(products *gin.RouterGroup) {
	products.GET("/:id/teams", h.ListTeams)
	products.POST("/:id/teams", h.AddTeam)
	products.DELETE("/:id/teams/:team_id", h.RemoveTeam)
}

// ListTeams handles GET /products/:id/teams
// @Summary List teams granted on a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{} "Teams and _meta.count"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BasicAuth
// @Security BearerAuth
// @Router /products/{id}/teams [get]
func (h *ProductTeamHandler) ListTeams(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	teams, err := h.service.ListTeams(c.Request.Context(), caller, productID)
	if err != nil {
		RespondError(c, err)
		return
	}

	items, err := renderAll(teams, nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": items, "_meta": gin.H{"count": len(items)}})
}

// AddTeam handles POST /products/:id/teams
// @Summary Grant a team access to a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 201 {object} map[string]interface{} "Association"
// @Failure 400 {object} ErrorResponse "Request malformed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Already granted"
// @Security BasicAuth
// @Security BearerAuth
// @Router /products/{id}/teams [post]
func (h *ProductTeamHandler) AddTeam(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	raw, err := schema.Decode(c.Request.Body)
	if err != nil {
		RespondError(c, err)
		return
	}

	association, err := h.service.AddTeam(c.Request.Context(), caller, productID, raw)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product_id": association.ProductID, "team_id": association.TeamID})
}

// RemoveTeam handles DELETE /products/:id/teams/:team_id
// @Summary Revoke a team's access to a product
// @Tags products
// @Param id path string true "Product ID (UUID)"
// @Param team_id path string true "Team ID (UUID)"
// @Success 204 "Revoked"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Association not found"
// @Security BasicAuth
// @Security BearerAuth
// @Router /products/{id}/teams/{team_id} [delete]
func (h *ProductTeamHandler) RemoveTeam(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	if err := h.service.RemoveTeam(c.Request.Context(), caller, productID, teamID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
