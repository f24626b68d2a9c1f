package rule

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a rule id does not exist.
var ErrNotFound = errors.New("rule not found")

// ValidationError reports a malformed rule. The rule is never persisted.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rule: %s %s", e.Field, e.Message)
}

// Details surfaces the failing field for API error responses.
func (e *ValidationError) Details() map[string]interface{} {
	return map[string]interface{}{"field": e.Field}
}

// NotFoundError reports an operation on a rule id that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rule %q not found", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match a NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
