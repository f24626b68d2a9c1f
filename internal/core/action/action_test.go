package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshal_Variants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Action
	}{
		{
			name: "invoke plugin tool",
			raw:  `{"kind":"invoke_plugin_tool","plugin_id":"weather","tool_name":"forecast","args_template":{"city":"${attributes.city}"}}`,
			want: InvokePluginTool{PluginID: "weather", ToolName: "forecast", ArgsTemplate: json.RawMessage(`{"city":"${attributes.city}"}`)},
		},
		{
			name: "call extension",
			raw:  `{"kind":"call_extension","extension_id":"updater","operation":"check"}`,
			want: CallExtension{ExtensionID: "updater", Operation: "check"},
		},
		{
			name: "emit frontend",
			raw:  `{"kind":"emit_frontend","channel":"ui.refresh"}`,
			want: EmitFrontend{Channel: "ui.refresh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.raw))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, got.Validate())
		})
	}
}

func TestUnmarshal_UnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte(`{"kind":"shell","cmd":"rm -rf /"}`))
	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, "kind", ferr.Field)

	_, err = Unmarshal([]byte(`{"plugin_id":"weather"}`))
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, "kind", ferr.Field)
}

func TestMarshal_IncludesKind(t *testing.T) {
	data, err := Marshal(EmitFrontend{Channel: "ui.refresh"})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"emit_frontend","channel":"ui.refresh"}`, string(data))

	data, err = json.Marshal(Envelope{Action: CallExtension{ExtensionID: "updater", Operation: "check"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"call_extension","extension_id":"updater","operation":"check"}`, string(data))

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, CallExtension{ExtensionID: "updater", Operation: "check"}, env.Action)
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		action    Action
		wantField string
	}{
		{"plugin id missing", InvokePluginTool{ToolName: "forecast"}, "plugin_id"},
		{"tool name missing", InvokePluginTool{PluginID: "weather"}, "tool_name"},
		{"tool name blank", InvokePluginTool{PluginID: "weather", ToolName: "  "}, "tool_name"},
		{"extension id missing", CallExtension{Operation: "check"}, "extension_id"},
		{"operation missing", CallExtension{ExtensionID: "updater"}, "operation"},
		{"channel missing", EmitFrontend{}, "channel"},
		{"template not JSON", InvokePluginTool{PluginID: "p", ToolName: "t", ArgsTemplate: json.RawMessage(`{"a":`)}, "args_template"},
		{"template not an object", CallExtension{ExtensionID: "e", Operation: "o", ArgsTemplate: json.RawMessage(`[1,2]`)}, "args_template"},
		{"template bad placeholder root", InvokePluginTool{PluginID: "p", ToolName: "t", ArgsTemplate: json.RawMessage(`{"a":"${payload.x}"}`)}, "args_template.a"},
		{"template malformed placeholder", InvokePluginTool{PluginID: "p", ToolName: "t", ArgsTemplate: json.RawMessage(`{"a":["${attributes.x"]}`)}, "args_template.a[0]"},
		{"template empty segment", InvokePluginTool{PluginID: "p", ToolName: "t", ArgsTemplate: json.RawMessage(`{"a":"${attributes..x}"}`)}, "args_template.a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ferr *FieldError
			require.ErrorAs(t, tt.action.Validate(), &ferr)
			require.Equal(t, tt.wantField, ferr.Field)
		})
	}
}

func TestTarget(t *testing.T) {
	require.Equal(t, "weather/forecast", InvokePluginTool{PluginID: "weather", ToolName: "forecast"}.Target())
	require.Equal(t, "updater/check", CallExtension{ExtensionID: "updater", Operation: "check"}.Target())
	require.Equal(t, "channel:ui.refresh", EmitFrontend{Channel: "ui.refresh"}.Target())
}
