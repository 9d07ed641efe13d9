package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finstmt/internal/domain"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already valid",
			raw:  `{"cash": 100}`,
			want: `{"cash": 100}`,
		},
		{
			name: "markdown fence",
			raw:  "```json\n{\"cash\": 100}\n```",
			want: `{"cash": 100}`,
		},
		{
			name: "fence without language tag",
			raw:  "```\n[{\"name\": \"cash\"}]\n```",
			want: `[{"name": "cash"}]`,
		},
		{
			name: "prose wrapper",
			raw:  `Here are the extracted metrics: {"cash": 100} Let me know if you need more.`,
			want: `{"cash": 100}`,
		},
		{
			name: "digit grouping commas",
			raw:  `{"total_assets": 1,234,567}`,
			want: `{"total_assets": 1234567}`,
		},
		{
			name: "trailing comma",
			raw:  `{"cash": 100,}`,
			want: `{"cash": 100}`,
		},
		{
			name: "python none literal",
			raw:  `{"previous_year": None}`,
			want: `{"previous_year": null}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanResponse(tt.raw)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestCleanResponse_RepairsUnclosedDocument(t *testing.T) {
	got, err := CleanResponse(`{"items": [{"name": "cash", "current_year": 100}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": [{"name": "cash", "current_year": 100}]}`, string(got))
}

func TestCleanResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"prose without json", "I could not find any financial data in this text."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CleanResponse(tt.raw)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}
