package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name        string
		stdout      string
		probability float64
		statistics  map[string]any
	}{
		{
			name:        "two numbers",
			stdout:      "{\"features\": 4}\n0.312 0.688\n",
			probability: 0.688,
			statistics:  map[string]any{"features": 4.0},
		},
		{
			name:        "labelled line",
			stdout:      "{}\nscores: 0.25 -> same author probability 0.81\n",
			probability: 0.81,
			statistics:  map[string]any{},
		},
		{
			name:        "three numbers takes the last",
			stdout:      "{}\nResult: 0.9 (baseline 0.5), score 0.7\n",
			probability: 0.7,
			statistics:  map[string]any{},
		},
		{
			name:        "certain",
			stdout:      "{}\n0.0 1.0",
			probability: 1,
			statistics:  map[string]any{},
		},
		{
			name:        "crlf line endings",
			stdout:      "{\"n\": [1, 2]}\r\n0.4 0.6\r\n",
			probability: 0.6,
			statistics:  map[string]any{"n": []any{1.0, 2.0}},
		},
		{
			name:        "extra trailing lines ignored",
			stdout:      "{}\n0.1 0.2\ndebug: done\n",
			probability: 0.2,
			statistics:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseOutput([]byte(tt.stdout))
			require.NoError(t, err)
			assert.InDelta(t, tt.probability, out.SameAuthorConfidence, 1e-9)
			assert.Equal(t, tt.statistics, out.Statistics)
		})
	}
}

func TestParseOutputErrors(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		err    error
	}{
		{"empty", "", ErrMissingLines},
		{"single line", "{\"a\": 1}", ErrMissingLines},
		{"statistics not json", "stats: none\n0.1 0.2\n", ErrBadStatistics},
		{"statistics array", "[1, 2]\n0.1 0.2\n", ErrBadStatistics},
		{"statistics null", "null\n0.1 0.2\n", ErrBadStatistics},
		{"one number", "{}\nprobability 0.5\n", ErrNoProbability},
		{"no numbers", "{}\nsame author\n", ErrNoProbability},
		{"probability on third line", "{}\n\n0.1 0.2\n", ErrNoProbability},
		{"above one", "{}\n0.3 1.5\n", ErrProbabilityBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseOutput([]byte(tt.stdout))
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
