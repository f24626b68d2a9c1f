package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshal_Shapes(t *testing.T) {
	raw := `[
		{"exact": {"type": "com.example.created", "count": 3}},
		{"any": [
			{"prefix": {"source": "plugin:"}},
			{"not": {"suffix": {"subject": ".tmp"}}}
		]}
	]`

	filters, err := UnmarshalList([]byte(raw))
	require.NoError(t, err)
	require.Len(t, filters, 2)

	exact, ok := filters[0].(Exact)
	require.True(t, ok)
	require.Equal(t, "com.example.created", exact["type"])
	require.Equal(t, json.Number("3"), exact["count"])

	anyNode, ok := filters[1].(Any)
	require.True(t, ok)
	require.Len(t, anyNode, 2)
	require.Equal(t, Prefix{"source": "plugin:"}, anyNode[0])
	require.Equal(t, Not{Filter: Suffix{"subject": ".tmp"}}, anyNode[1])

	require.NoError(t, ValidateList(filters))
}

func TestUnmarshal_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"unknown kind", `{"regex": {"type": ".*"}}`, `unknown filter kind "regex"`},
		{"two keys", `{"exact": {"a": "b"}, "prefix": {"a": "b"}}`, "exactly one key"},
		{"no keys", `{}`, "exactly one key"},
		{"not an object", `"exact"`, "must be a JSON object"},
		{"prefix wants strings", `{"prefix": {"a": 1}}`, "prefix"},
		{"all wants an array", `{"all": {"exact": {"a": "b"}}}`, "all"},
		{"nested failure carries index", `{"any": [{"exact": {"a": "b"}}, {"bogus": {}}]}`, "any[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.raw))
			require.Error(t, err)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestList_JSONRoundTrip(t *testing.T) {
	in := List{
		Exact{"type": "com.example.created"},
		All{Prefix{"source": "plugin:"}, Not{Filter: Exact{"draft": true}}},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out List
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	require.Equal(t, Exact{"type": "com.example.created"}, out[0])
	require.Equal(t, All{Prefix{"source": "plugin:"}, Not{Filter: Exact{"draft": true}}}, out[1])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		filters  []Filter
		wantPath string
	}{
		{"empty list is unconditional", nil, ""},
		{"valid tree", []Filter{All{Exact{"a": "b"}, Not{Filter: Prefix{"c": "d"}}}}, ""},
		{"empty exact map", []Filter{Exact{}}, "filters[0].exact"},
		{"empty prefix map", []Filter{Exact{"a": "b"}, Prefix{}}, "filters[1].prefix"},
		{"empty suffix map", []Filter{Suffix{}}, "filters[0].suffix"},
		{"blank attribute name", []Filter{Exact{" ": "x"}}, "filters[0].exact"},
		{"non-scalar exact value", []Filter{Exact{"a": map[string]any{"b": 1}}}, "filters[0].exact.a"},
		{"nested empty map", []Filter{Any{Exact{"a": "b"}, All{Suffix{}}}}, "filters[0].any[1].all[0].suffix"},
		{"not without child", []Filter{Not{}}, "filters[0].not"},
		{"nil top-level node", []Filter{nil}, "filters[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateList(tt.filters)
			if tt.wantPath == "" {
				require.NoError(t, err)
				return
			}
			var ferr *Error
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, tt.wantPath, ferr.Path)
		})
	}
}
