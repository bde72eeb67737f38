package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis and list",
			input:    "**Pro** plan\n\n- 10 seats\n- ~~email~~ chat support",
			contains: []string{"<strong>Pro</strong>", "<li>10 seats</li>", "<del>email</del>"},
		},
		{
			name:     "script stripped",
			input:    "hello <script>alert(1)</script>",
			contains: []string{"hello"},
			excludes: []string{"<script>"},
		},
		{
			name:     "javascript link neutralised",
			input:    "[x](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.input)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderer_Empty(t *testing.T) {
	out, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
