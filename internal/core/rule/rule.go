// Package rule defines routing rules and their write-time validation.
package rule

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	v1 "github.com/hostbus/eventroute/internal/api/v1"
	"github.com/hostbus/eventroute/internal/core/action"
	"github.com/hostbus/eventroute/internal/core/filter"
)

// Rule binds a conjunction of filters to one action.
type Rule struct {
	ID        string
	Name      string
	Filters   []filter.Filter
	Action    action.Action
	Enabled   bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Seq is assigned on creation and breaks CreatedAt ties in List order.
	Seq int64
}

// Matches reports whether the rule's filters accept evt. Callers check Enabled.
func (r *Rule) Matches(evt *v1.Event) bool {
	return filter.MatchesAll(r.Filters, evt)
}

// Draft is the author-supplied part of a new rule.
type Draft struct {
	Name      string
	Filters   []filter.Filter
	Action    action.Action
	Enabled   bool
	CreatedBy string
}

// Patch replaces whole fields of an existing rule. Nil fields are left as is.
type Patch struct {
	Name    *string
	Filters *[]filter.Filter
	Action  action.Action
	Enabled *bool
}

// Apply returns a copy of r with the patch fields replaced.
func (p Patch) Apply(r Rule) Rule {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Filters != nil {
		r.Filters = *p.Filters
	}
	if p.Action != nil {
		r.Action = p.Action
	}
	if p.Enabled != nil {
		r.Enabled = *p.Enabled
	}
	return r
}

// Validate runs the write-time checks shared by create and update.
func Validate(name string, filters []filter.Filter, act action.Action) error {
	if len(name) > 200 {
		return &ValidationError{Field: "name", Message: "must be at most 200 characters"}
	}
	if err := filter.ValidateList(filters); err != nil {
		var ferr *filter.Error
		if errors.As(err, &ferr) {
			return &ValidationError{Field: ferr.Path, Message: ferr.Message}
		}
		return &ValidationError{Field: "filters", Message: err.Error()}
	}
	if act == nil {
		return &ValidationError{Field: "action", Message: "is required"}
	}
	if err := act.Validate(); err != nil {
		var aerr *action.FieldError
		if errors.As(err, &aerr) {
			return &ValidationError{Field: "action." + aerr.Field, Message: aerr.Message}
		}
		return &ValidationError{Field: "action", Message: err.Error()}
	}
	return nil
}

// ValidateDraft validates a draft before it is persisted.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.CreatedBy) == "" {
		return &ValidationError{Field: "created_by", Message: "is required"}
	}
	return Validate(d.Name, d.Filters, d.Action)
}

// Document is the JSON shape of a rule used by the HTTP surface, the
// postgres adapter and seed files.
type Document struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Filters   filter.List     `json:"filters"`
	Action    action.Envelope `json:"action"`
	Enabled   bool            `json:"enabled"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// ToDocument renders a stored rule.
func ToDocument(r Rule) Document {
	createdAt, updatedAt := r.CreatedAt, r.UpdatedAt
	filters := filter.List(r.Filters)
	if filters == nil {
		filters = filter.List{}
	}
	return Document{
		ID:        r.ID,
		Name:      r.Name,
		Filters:   filters,
		Action:    action.Envelope{Action: r.Action},
		Enabled:   r.Enabled,
		CreatedBy: r.CreatedBy,
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
	}
}

// MarshalJSON renders the rule as a Document.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToDocument(r))
}
