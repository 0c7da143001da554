package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModelSnapshot(t *testing.T) {
	tests := []struct {
		model        string
		wantBase     string
		wantSnapshot string
	}{
		{"gpt-5-nano-2025-08-07", "gpt-5-nano", "2025-08-07"},
		{"gpt-5-mini-2025-08-07", "gpt-5-mini", "2025-08-07"},
		{"gpt-5-nano", "gpt-5-nano", ""},
		{"gpt-5-nano-rc1", "gpt-5-nano-rc1", ""},
		{"", "", ""},
		{"  gpt-5-2025-01-01  ", "gpt-5", "2025-01-01"},
	}

	for _, tt := range tests {
		base, snapshot := ParseModelSnapshot(tt.model)
		assert.Equal(t, tt.wantBase, base, "base for %q", tt.model)
		assert.Equal(t, tt.wantSnapshot, snapshot, "snapshot for %q", tt.model)
	}
}

func TestStrictObj(t *testing.T) {
	schema := StrictObj(map[string]any{
		"total": map[string]any{"type": "number"},
		"items": map[string]any{"type": "array"},
	})

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	// required lists every property, sorted
	assert.Equal(t, []string{"items", "total"}, schema["required"])
}

func TestExtractOutputText(t *testing.T) {
	resp := responseObject{
		Output: []outputItem{
			{Type: "reasoning"},
			{Type: "message", Content: []contentItem{
				{Type: "output_text", Text: `{"a":`},
				{Type: "output_text", Text: `1}`},
			}},
		},
	}
	assert.Equal(t, `{"a":1}`, extractOutputText(&resp))
}
