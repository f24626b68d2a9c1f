package rule

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	v1 "github.com/hostbus/eventroute/internal/api/v1"
	"github.com/hostbus/eventroute/internal/core/action"
	"github.com/hostbus/eventroute/internal/core/filter"
	"github.com/stretchr/testify/require"
)

func TestValidateDraft(t *testing.T) {
	valid := Draft{
		Name:      "refresh on create",
		Filters:   []filter.Filter{filter.Exact{"type": "com.example.created"}},
		Action:    action.EmitFrontend{Channel: "ui.refresh"},
		Enabled:   true,
		CreatedBy: "user:alice",
	}

	tests := []struct {
		name      string
		mutate    func(d *Draft)
		wantField string
	}{
		{"valid", func(d *Draft) {}, ""},
		{"unconditional rule", func(d *Draft) { d.Filters = nil }, ""},
		{"missing actor", func(d *Draft) { d.CreatedBy = "" }, "created_by"},
		{"missing action", func(d *Draft) { d.Action = nil }, "action"},
		{"tool name missing", func(d *Draft) { d.Action = action.InvokePluginTool{PluginID: "weather"} }, "action.tool_name"},
		{"empty filter map", func(d *Draft) { d.Filters = []filter.Filter{filter.Prefix{}} }, "filters[0].prefix"},
		{"bad template", func(d *Draft) {
			d.Action = action.CallExtension{ExtensionID: "e", Operation: "o", ArgsTemplate: json.RawMessage(`{`)}
		}, "action.args_template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := ValidateDraft(d)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	base := Rule{
		ID:      "r-1",
		Name:    "old",
		Filters: []filter.Filter{filter.Exact{"a": "b"}},
		Action:  action.EmitFrontend{Channel: "one"},
		Enabled: true,
	}

	name := "new"
	disabled := false
	empty := []filter.Filter{}
	got := Patch{Name: &name, Enabled: &disabled, Filters: &empty}.Apply(base)

	require.Equal(t, "new", got.Name)
	require.False(t, got.Enabled)
	require.Empty(t, got.Filters)
	require.Equal(t, action.EmitFrontend{Channel: "one"}, got.Action)
	require.Equal(t, "old", base.Name, "apply must not mutate the input")
}

func TestRule_Matches(t *testing.T) {
	r := Rule{Filters: []filter.Filter{filter.Exact{"type": "a"}, filter.Prefix{"source": "plugin:"}}}

	require.True(t, r.Matches(v1.NewEvent("1", "plugin:x", "a", time.Now(), "", nil)))
	require.False(t, r.Matches(v1.NewEvent("1", "host:x", "a", time.Now(), "", nil)))
	require.True(t, (&Rule{}).Matches(v1.NewEvent("1", "host:x", "b", time.Now(), "", nil)))
}

func TestNotFoundError_IsErrNotFound(t *testing.T) {
	var err error = &NotFoundError{ID: "r-9"}
	require.True(t, errors.Is(err, ErrNotFound))
	require.EqualError(t, err, `rule "r-9" not found`)
}

func TestDocument_JSON(t *testing.T) {
	raw := `{
		"name": "tool on push",
		"filters": [{"exact": {"type": "repo.pushed"}}],
		"action": {"kind": "invoke_plugin_tool", "plugin_id": "ci", "tool_name": "build", "args_template": {"ref": "${attributes.ref}"}},
		"enabled": true
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Len(t, doc.Filters, 1)
	require.Equal(t, action.KindInvokePluginTool, doc.Action.Action.Kind())
	require.NoError(t, Validate(doc.Name, doc.Filters, doc.Action.Action))

	now := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	out, err := json.Marshal(Rule{
		ID:        "r-1",
		Name:      doc.Name,
		Filters:   doc.Filters,
		Action:    doc.Action.Action,
		Enabled:   true,
		CreatedBy: "user:alice",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "r-1",
		"name": "tool on push",
		"filters": [{"exact": {"type": "repo.pushed"}}],
		"action": {"kind": "invoke_plugin_tool", "plugin_id": "ci", "tool_name": "build", "args_template": {"ref": "${attributes.ref}"}},
		"enabled": true,
		"created_by": "user:alice",
		"created_at": "2026-02-08T12:00:00Z",
		"updated_at": "2026-02-08T12:00:00Z"
	}`, string(out))
}
