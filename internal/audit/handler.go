package audit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	coreaudit "github.com/hostbus/eventroute/internal/core/audit"
	httperr "github.com/hostbus/eventroute/internal/core/errors"
	"github.com/hostbus/eventroute/internal/core/storage"
)

// Handler serves read-only audit queries.
type Handler struct {
	store storage.AuditStore
}

func NewHandler(store storage.AuditStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the audit query routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/audit/events", h.HandleQueryEvents)
	r.GET("/v1/audit/dispatches", h.HandleQueryDispatches)
}

type queryParams struct {
	From    time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	RuleID  string    `form:"rule_id"`
	EventID string    `form:"event_id"`
	Outcome string    `form:"outcome"`
	Limit   int       `form:"limit"`
}

// HandleQueryEvents handles GET /v1/audit/events
// Query parameters: from, to, event_id, limit
func (h *Handler) HandleQueryEvents(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	entries, err := h.store.QueryEvents(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query event log",
			Details:   err.Error(),
		})
		return
	}
	if entries == nil {
		entries = []coreaudit.EventLogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"events": entries})
}

// HandleQueryDispatches handles GET /v1/audit/dispatches
// Query parameters: from, to, rule_id, event_id, outcome, limit
func (h *Handler) HandleQueryDispatches(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	records, err := h.store.QueryDispatches(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query dispatch log",
			Details:   err.Error(),
		})
		return
	}
	if records == nil {
		records = []coreaudit.DispatchRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"dispatches": records})
}

func bindQuery(c *gin.Context) (coreaudit.Query, bool) {
	var p queryParams
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return coreaudit.Query{}, false
	}

	if !p.From.IsZero() && !p.To.IsZero() && !p.From.Before(p.To) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "from must be before to",
		})
		return coreaudit.Query{}, false
	}

	q := coreaudit.Query{
		From:    p.From,
		To:      p.To,
		RuleID:  p.RuleID,
		EventID: p.EventID,
		Limit:   p.Limit,
	}
	if p.Outcome != "" {
		outcome, err := coreaudit.ParseOutcome(p.Outcome)
		if err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   err.Error(),
			})
			return coreaudit.Query{}, false
		}
		q.Outcome = outcome
	}
	return q, true
}
