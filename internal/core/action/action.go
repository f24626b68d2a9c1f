// Package action defines the typed effects a routing rule can trigger.
package action

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the wire tag of an action variant.
type Kind string

const (
	KindInvokePluginTool Kind = "invoke_plugin_tool"
	KindCallExtension    Kind = "call_extension"
	KindEmitFrontend     Kind = "emit_frontend"
)

// Action is a closed sum type: InvokePluginTool, CallExtension or EmitFrontend.
// Consumers switch on the concrete type.
type Action interface {
	Kind() Kind
	// Target is a human-readable identifier for audit records,
	// e.g. "weather/forecast" or "channel:ui.refresh".
	Target() string
	// Validate checks the variant's identifying fields and template.
	Validate() error
	sealed()
}

// InvokePluginTool calls a tool exposed by a sandboxed plugin.
type InvokePluginTool struct {
	PluginID     string          `json:"plugin_id"`
	ToolName     string          `json:"tool_name"`
	ArgsTemplate json.RawMessage `json:"args_template,omitempty"`
}

// CallExtension calls a privileged operation on a trusted host extension.
type CallExtension struct {
	ExtensionID  string          `json:"extension_id"`
	Operation    string          `json:"operation"`
	ArgsTemplate json.RawMessage `json:"args_template,omitempty"`
}

// EmitFrontend re-emits the event to UI observers on a channel.
type EmitFrontend struct {
	Channel string `json:"channel"`
}

func (InvokePluginTool) Kind() Kind { return KindInvokePluginTool }
func (CallExtension) Kind() Kind    { return KindCallExtension }
func (EmitFrontend) Kind() Kind     { return KindEmitFrontend }

func (a InvokePluginTool) Target() string { return a.PluginID + "/" + a.ToolName }
func (a CallExtension) Target() string    { return a.ExtensionID + "/" + a.Operation }
func (a EmitFrontend) Target() string     { return "channel:" + a.Channel }

func (InvokePluginTool) sealed() {}
func (CallExtension) sealed()    {}
func (EmitFrontend) sealed()     {}

// FieldError reports an invalid action field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("action.%s: %s", e.Field, e.Message)
}

func (a InvokePluginTool) Validate() error {
	if strings.TrimSpace(a.PluginID) == "" {
		return &FieldError{Field: "plugin_id", Message: "is required"}
	}
	if strings.TrimSpace(a.ToolName) == "" {
		return &FieldError{Field: "tool_name", Message: "is required"}
	}
	return ValidateTemplate(a.ArgsTemplate)
}

func (a CallExtension) Validate() error {
	if strings.TrimSpace(a.ExtensionID) == "" {
		return &FieldError{Field: "extension_id", Message: "is required"}
	}
	if strings.TrimSpace(a.Operation) == "" {
		return &FieldError{Field: "operation", Message: "is required"}
	}
	return ValidateTemplate(a.ArgsTemplate)
}

func (a EmitFrontend) Validate() error {
	if strings.TrimSpace(a.Channel) == "" {
		return &FieldError{Field: "channel", Message: "is required"}
	}
	return nil
}

// Marshal encodes an action with its "kind" tag inline.
func Marshal(a Action) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("nil action")
	}
	body, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	kind, _ := json.Marshal(a.Kind())
	fields["kind"] = kind
	return json.Marshal(fields)
}

// Unmarshal decodes a tagged action. Unknown tags are an error.
func Unmarshal(data []byte) (Action, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("action must be a JSON object: %w", err)
	}

	switch head.Kind {
	case KindInvokePluginTool:
		var a InvokePluginTool
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("%s: %w", head.Kind, err)
		}
		return a, nil
	case KindCallExtension:
		var a CallExtension
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("%s: %w", head.Kind, err)
		}
		return a, nil
	case KindEmitFrontend:
		var a EmitFrontend
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("%s: %w", head.Kind, err)
		}
		return a, nil
	case "":
		return nil, &FieldError{Field: "kind", Message: "is required"}
	default:
		return nil, &FieldError{Field: "kind", Message: fmt.Sprintf("unknown action kind %q", head.Kind)}
	}
}

// Envelope is a JSON-friendly holder for an Action.
type Envelope struct {
	Action Action
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Action == nil {
		return []byte("null"), nil
	}
	return Marshal(e.Action)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		e.Action = nil
		return nil
	}
	a, err := Unmarshal(data)
	if err != nil {
		return err
	}
	e.Action = a
	return nil
}
