package backend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Rose is a rose is a rose", "Rose is a rose is a rose"},
		{"single quote char", `He said "hi"`, `He said \"hi\"`},
		{"every newline", "one\ntwo\nthree\n", `one\ntwo\nthree\n`},
		{"carriage returns", "a\r\nb\r\nc", `a\r\nb\r\nc`},
		{"mixed", "\"a\"\n\"b\"\r", `\"a\"\n\"b\"\r`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\n")
			assert.NotContains(t, got, "\r")
		})
	}
}

func TestSanitizeEscapesEveryQuote(t *testing.T) {
	input := strings.Repeat(`x"`, 100)
	got := Sanitize(input)
	assert.Equal(t, 100, strings.Count(got, `\"`))
}
