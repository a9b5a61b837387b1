package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain json untouched",
			input: `{"score": 0.8}`,
			want:  `{"score": 0.8}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"score\": 0.8}\n```",
			want:  `{"score": 0.8}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"score\": 0.8}\n```",
			want:  `{"score": 0.8}`,
		},
		{
			name:  "fence with language identifier",
			input: "```javascript\n{\"score\": 0.8}\n```",
			want:  `{"score": 0.8}`,
		},
		{
			name:  "surrounding whitespace",
			input: "  \n```json\n{\"score\": 0.8}\n```  \n",
			want:  `{"score": 0.8}`,
		},
		{
			name:  "json starting on the fence line",
			input: "```{\"score\": 0.8}```",
			want:  `{"score": 0.8}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}
