// Package enablement serves the operator surface over the enablement store.
package enablement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	coreenablement "github.com/hostbus/eventroute/internal/core/enablement"
	httperr "github.com/hostbus/eventroute/internal/core/errors"
)

type Handler struct {
	store coreenablement.Store
}

func NewHandler(store coreenablement.Store) *Handler {
	if store == nil {
		panic("enablement: store must not be nil")
	}
	return &Handler{store: store}
}

// RegisterRoutes registers the enablement admin routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1/enablement/:scope")
	g.GET("", h.handleDescribe)
	g.PUT("/gateway", h.handleSetGateway)
	g.PUT("/targets/:target", h.handleSetTarget)
	g.PUT("/targets/:target/members/:member", h.handleSetMember)
}

// flagRequest accepts true, false or null; null clears an override.
type flagRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *Handler) handleDescribe(c *gin.Context) {
	scope, ok := bindScope(c)
	if !ok {
		return
	}
	ov, err := h.store.Describe(c.Request.Context(), scope)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (h *Handler) handleSetGateway(c *gin.Context) {
	scope, ok := bindScope(c)
	if !ok {
		return
	}
	req, ok := bindFlag(c)
	if !ok {
		return
	}
	if req.Enabled == nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "gateway flag cannot be cleared; send true or false",
		})
		return
	}

	if err := h.store.SetGateway(c.Request.Context(), scope, *req.Enabled); err != nil {
		writeStoreError(c, err)
		return
	}
	slog.Info("[Enablement] Gateway flag set", "scope", scope, "enabled", *req.Enabled)
	h.respondDescribe(c, scope)
}

func (h *Handler) handleSetTarget(c *gin.Context) {
	scope, ok := bindScope(c)
	if !ok {
		return
	}
	req, ok := bindFlag(c)
	if !ok {
		return
	}

	target := c.Param("target")
	if err := h.store.SetTargetOverride(c.Request.Context(), scope, target, req.Enabled); err != nil {
		writeStoreError(c, err)
		return
	}
	slog.Info("[Enablement] Target override set", "scope", scope, "target", target, "enabled", describeFlag(req.Enabled))
	h.respondDescribe(c, scope)
}

func (h *Handler) handleSetMember(c *gin.Context) {
	scope, ok := bindScope(c)
	if !ok {
		return
	}
	req, ok := bindFlag(c)
	if !ok {
		return
	}

	target, member := c.Param("target"), c.Param("member")
	if err := h.store.SetMemberOverride(c.Request.Context(), scope, target, member, req.Enabled); err != nil {
		writeStoreError(c, err)
		return
	}
	slog.Info("[Enablement] Member override set",
		"scope", scope,
		"target", target,
		"member", member,
		"enabled", describeFlag(req.Enabled))
	h.respondDescribe(c, scope)
}

func (h *Handler) respondDescribe(c *gin.Context, scope coreenablement.Scope) {
	ov, err := h.store.Describe(c.Request.Context(), scope)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func bindScope(c *gin.Context) (coreenablement.Scope, bool) {
	scope, err := coreenablement.ParseScope(c.Param("scope"))
	if err != nil {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnknownScopeError,
			Message:   err.Error(),
		})
		return "", false
	}
	return scope, true
}

func bindFlag(c *gin.Context) (flagRequest, bool) {
	var req flagRequest
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return req, false
	}
	value, present := raw["enabled"]
	if !present {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   `"enabled" is required (true, false or null)`,
		})
		return req, false
	}
	if err := json.Unmarshal(value, &req.Enabled); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   `"enabled" must be true, false or null`,
		})
		return req, false
	}
	return req, true
}

func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, coreenablement.ErrUnknownScope) {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnknownScopeError,
			Message:   err.Error(),
		})
		return
	}
	slog.Error("[Enablement] Store request failed", "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpEnablementStoreFailed,
		Message:   "Enablement store failure",
	})
}

func describeFlag(v *bool) string {
	switch {
	case v == nil:
		return "inherit"
	case *v:
		return "true"
	default:
		return "false"
	}
}
