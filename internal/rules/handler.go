package rules

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hostbus/eventroute/internal/core/action"
	httperr "github.com/hostbus/eventroute/internal/core/errors"
	"github.com/hostbus/eventroute/internal/core/filter"
	"github.com/hostbus/eventroute/internal/core/rule"
)

const (
	// ActorHeader names the operator performing a rule mutation.
	ActorHeader  = "X-Actor-ID"
	defaultActor = "anonymous"
)

// ruleRequest is the body of POST, PUT and PATCH. Fields stay raw so that
// malformed filters or actions surface as validation errors, not bad JSON.
type ruleRequest struct {
	Name    *string         `json:"name"`
	Filters json.RawMessage `json:"filters"`
	Action  json.RawMessage `json:"action"`
	Enabled *bool           `json:"enabled"`
}

type decodedRequest struct {
	name      *string
	filters   *[]filter.Filter
	action    action.Action
	hasAction bool
	enabled   *bool
}

// RegisterRoutes registers the rule admin routes.
func (s *Store) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1/rules")
	g.POST("", s.handleCreate)
	g.GET("", s.handleList)
	g.GET("/:id", s.handleGet)
	g.PUT("/:id", s.handleReplace)
	g.PATCH("/:id", s.handlePatch)
	g.DELETE("/:id", s.handleDelete)
}

func (s *Store) handleCreate(c *gin.Context) {
	req, ok := bindRuleRequest(c)
	if !ok {
		return
	}

	d := rule.Draft{
		Enabled:   true,
		CreatedBy: actor(c),
	}
	if req.name != nil {
		d.Name = *req.name
	}
	if req.filters != nil {
		d.Filters = *req.filters
	}
	d.Action = req.action
	if req.enabled != nil {
		d.Enabled = *req.enabled
	}

	r, err := s.Create(c.Request.Context(), d)
	if err != nil {
		writeRuleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Store) handleList(c *gin.Context) {
	rules, err := s.List(c.Request.Context())
	if err != nil {
		writeRuleError(c, err)
		return
	}

	docs := make([]rule.Document, 0, len(rules))
	for _, r := range rules {
		docs = append(docs, rule.ToDocument(r))
	}
	c.JSON(http.StatusOK, gin.H{
		"revision": s.Revision(),
		"rules":    docs,
	})
}

func (s *Store) handleGet(c *gin.Context) {
	r, err := s.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// handleReplace overwrites every mutable field. Omitted fields reset to their
// create-time defaults.
func (s *Store) handleReplace(c *gin.Context) {
	req, ok := bindRuleRequest(c)
	if !ok {
		return
	}

	name := ""
	if req.name != nil {
		name = *req.name
	}
	filters := []filter.Filter{}
	if req.filters != nil {
		filters = *req.filters
	}
	enabled := true
	if req.enabled != nil {
		enabled = *req.enabled
	}
	if req.action == nil {
		writeRuleError(c, &rule.ValidationError{Field: "action", Message: "is required"})
		return
	}

	s.applyPatch(c, rule.Patch{
		Name:    &name,
		Filters: &filters,
		Action:  req.action,
		Enabled: &enabled,
	})
}

func (s *Store) handlePatch(c *gin.Context) {
	req, ok := bindRuleRequest(c)
	if !ok {
		return
	}
	if req.hasAction && req.action == nil {
		writeRuleError(c, &rule.ValidationError{Field: "action", Message: "cannot be removed"})
		return
	}

	s.applyPatch(c, rule.Patch{
		Name:    req.name,
		Filters: req.filters,
		Action:  req.action,
		Enabled: req.enabled,
	})
}

func (s *Store) applyPatch(c *gin.Context, p rule.Patch) {
	id := c.Param("id")
	r, err := s.Update(c.Request.Context(), id, p)
	if err != nil {
		writeRuleError(c, err)
		return
	}
	slog.Debug("[RuleStore] Update requested", "rule_id", id, "actor", actor(c))
	c.JSON(http.StatusOK, r)
}

func (s *Store) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := s.Delete(c.Request.Context(), id); err != nil {
		writeRuleError(c, err)
		return
	}
	slog.Debug("[RuleStore] Delete requested", "rule_id", id, "actor", actor(c))
	c.Status(http.StatusNoContent)
}

func actor(c *gin.Context) string {
	if a := strings.TrimSpace(c.GetHeader(ActorHeader)); a != "" {
		return a
	}
	return defaultActor
}

// bindRuleRequest decodes the body and the embedded filter and action trees.
// On failure it has already written the response.
func bindRuleRequest(c *gin.Context) (decodedRequest, bool) {
	var raw ruleRequest
	body, err := io.ReadAll(c.Request.Body)
	if err == nil {
		err = json.Unmarshal(body, &raw)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return decodedRequest{}, false
	}

	out := decodedRequest{name: raw.Name, enabled: raw.Enabled}

	if len(raw.Filters) > 0 && string(raw.Filters) != "null" {
		filters, err := filter.UnmarshalList(raw.Filters)
		if err != nil {
			writeRuleError(c, &rule.ValidationError{Field: "filters", Message: err.Error()})
			return decodedRequest{}, false
		}
		out.filters = &filters
	}

	if len(raw.Action) > 0 {
		out.hasAction = true
		if string(raw.Action) != "null" {
			act, err := action.Unmarshal(raw.Action)
			if err != nil {
				var ferr *action.FieldError
				if errors.As(err, &ferr) {
					writeRuleError(c, &rule.ValidationError{Field: "action." + ferr.Field, Message: ferr.Message})
				} else {
					writeRuleError(c, &rule.ValidationError{Field: "action", Message: err.Error()})
				}
				return decodedRequest{}, false
			}
			out.action = act
		}
	}

	return out, true
}

func writeRuleError(c *gin.Context, err error) {
	var verr *rule.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpRuleValidationError,
			Message:   verr.Error(),
			Details:   verr.Details(),
		})
		return
	}

	var nerr *rule.NotFoundError
	if errors.As(err, &nerr) {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpRuleNotFoundError,
			Message:   nerr.Error(),
		})
		return
	}

	slog.Error("[RuleStore] Request failed", "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Rule store failure",
	})
}
