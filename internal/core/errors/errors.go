package errors

const (
	HttpInternalError         = "internal_error"
	HttpInvalidJsonError      = "invalid_json"
	HttpInvalidEventError     = "invalid_event"
	HttpRuleValidationError   = "rule_validation_failed"
	HttpRuleNotFoundError     = "rule_not_found"
	HttpUnknownScopeError     = "unknown_scope"
	HttpInvalidQueryError     = "invalid_query"
	HttpServiceUnavailable    = "service_unavailable"
	HttpPayloadTooLargeError  = "payload_too_large"
	HttpChannelRequiredError  = "channel_required"
	HttpEnablementStoreFailed = "enablement_store_failed"
)

// ErrorResponse is the error body of every HTTP surface.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
