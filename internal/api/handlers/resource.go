package handlers

import (
	"net/http"
	"strconv"

	"dci-control-server/internal/auth"
	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/schema"
	"dci-control-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultLimit = 100
	maxLimit     = 1000

	// IfMatchHeader carries the etag a client read before a write.
	IfMatchHeader = "If-match"
)

// reserved query parameters; every other parameter is a filter.
var listOptions = map[string]struct{}{
	"limit":  {},
	"offset": {},
	"sort":   {},
	"embed":  {},
}

// ResourceHandler serves the collection routes of one resource kind
type ResourceHandler[T any] struct {
	service    service.ResourceServiceInterface[T]
	appendOnly bool
}

// NewResourceHandler creates a handler for the kind served by svc
func NewResourceHandler[T any](svc service.ResourceServiceInterface[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{service: svc}
}

// AppendOnly drops the update and delete routes.
func (h *ResourceHandler[T]) AppendOnly() *ResourceHandler[T] {
	h.appendOnly = true
	return h
}

// Kind returns the resource kind served by h.
func (h *ResourceHandler[T]) Kind() models.Kind {
	return h.service.Kind()
}

// Register mounts the collection routes on group
func (h *ResourceHandler[T]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/purge", h.Purge)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	if h.appendOnly {
		return
	}
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// List handles GET /{kind}s
// @Summary List resources
// @Description List the resources of a kind visible to the caller. Query parameters other than limit, offset, sort and embed filter on columns.
// @Tags resources
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Rows to skip" default(0)
// @Param sort query string false "Comma separated columns, prefix with - for descending"
// @Param embed query string false "Comma separated associations to include"
// @Success 200 {object} map[string]interface{} "Resources and _meta.count"
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BasicAuth
// @Security BearerAuth
// @Router /{kind} [get]
func (h *ResourceHandler[T]) List(c *gin.Context) {
	h.list(c, false)
}

// Purge handles GET /{kind}s/purge
// @Summary List archived resources
// @Description List the archived resources of a kind visible to the caller
// @Tags resources
// @Produce json
// @Success 200 {object} map[string]interface{} "Archived resources and _meta.count"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BasicAuth
// @Security BearerAuth
// @Router /{kind}/purge [get]
func (h *ResourceHandler[T]) Purge(c *gin.Context) {
	h.list(c, true)
}

func (h *ResourceHandler[T]) list(c *gin.Context, archived bool) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	params, err := parseListParams(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	params.Archived = archived

	page, err := h.service.List(c.Request.Context(), caller, params)
	if err != nil {
		RespondError(c, err)
		return
	}

	items, err := renderAll(page.Items, params.Embeds)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		h.service.Kind().Plural(): items,
		"_meta":                   gin.H{"count": page.Count},
	})
}

// Create handles POST /{kind}s
// @Summary Create a resource
// @Tags resources
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{} "Created resource"
// @Failure 400 {object} ErrorResponse "Request malformed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Already exists"
// @Security BasicAuth
// @Security BearerAuth
// @Router /{kind} [post]
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	raw, err := schema.Decode(c.Request.Body)
	if err != nil {
		RespondError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), caller, raw)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, item, nil)
}

// Get handles GET /{kind}s/:id
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID (UUID)"
// @Param embed query string false "Comma separated associations to include"
// @Success 200 {object} map[string]interface{} "Resource"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not found"
// @Security BasicAuth
// @Security BearerAuth
// @Router /{kind}/{id} [get]
func (h *ResourceHandler[T]) Get(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	embeds := splitList(c.QueryArray("embed"))
	item, err := h.service.Get(c.Request.Context(), caller, id, embeds)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, item, embeds)
}

// Update handles PUT /{kind}s/:id
// @Summary Update a resource
// @Tags resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID (UUID)"
// @Param If-match header string true "Etag of the version being updated"
// @Success 200 {object} map[string]interface{} "Updated resource"
// @Failure 400 {object} ErrorResponse "Request malformed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Etag mismatch"
// @Security BasicAuth
// @Security BearerAuth
// @Router /{kind}/{id} [put]
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	raw, err := schema.Decode(c.Request.Body)
	if err != nil {
		RespondError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), caller, id, c.GetHeader(IfMatchHeader), raw)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, item, nil)
}

// Delete handles DELETE /{kind}s/:id
// @Summary Archive a resource
// @Tags resources
// @Param id path string true "Resource ID (UUID)"
// @Param If-match header string true "Etag of the version being archived"
// @Success 204 "Archived"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Etag mismatch"
// @Security BasicAuth
// @Security BearerAuth
// @Router /{kind}/{id} [delete]
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id, c.GetHeader(IfMatchHeader)); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T]) respond(c *gin.Context, status int, item *T, embeds []string) {
	obj, err := render(item, embeds)
	if err != nil {
		RespondError(c, err)
		return
	}
	if tag, ok := obj["etag"].(string); ok {
		c.Header("ETag", tag)
	}
	c.JSON(status, gin.H{string(h.service.Kind()): obj})
}

func parseListParams(c *gin.Context) (service.ListParams, error) {
	params := service.ListParams{
		Limit:   defaultLimit,
		Sort:    splitList(c.QueryArray("sort")),
		Embeds:  splitList(c.QueryArray("embed")),
		Filters: map[string]string{},
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return params, apperrors.NewValidationError("limit", "must be an integer between 1 and 1000")
		}
		params.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return params, apperrors.NewValidationError("offset", "must be a non-negative integer")
		}
		params.Offset = offset
	}

	for key, values := range c.Request.URL.Query() {
		if _, reserved := listOptions[key]; reserved || len(values) == 0 {
			continue
		}
		params.Filters[key] = values[len(values)-1]
	}
	return params, nil
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		if name == "id" {
			RespondError(c, apperrors.ErrInvalidID)
		} else {
			RespondError(c, apperrors.NewValidationError(name, "not a valid uuid"))
		}
		return uuid.Nil, false
	}
	return id, true
}

func callerOf(c *gin.Context) (*authz.Caller, bool) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		RespondError(c, apperrors.NewAuthenticationError("authentication required"))
		return nil, false
	}
	return caller, true
}
