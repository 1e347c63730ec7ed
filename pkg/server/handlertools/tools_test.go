package handlertools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"object", `{"text": "hi", "n": 2}`, map[string]any{"text": "hi", "n": 2.0}},
		{"string", `"Random stuff"`, "Random stuff"},
		{"array", `[1, "a"]`, []any{1.0, "a"}},
		{"null", `null`, nil},
		{"surrounding whitespace", " \n{}\n", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			got, err := DecodeJSON(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	for _, body := range []string{"", "{", "Random stuff", `{"a": 1} {"b": 2}`, "{'a': 1}"} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		_, err := DecodeJSON(req)
		assert.Error(t, err, body)
	}
}

func TestEncodeJSON(t *testing.T) {
	res := httptest.NewRecorder()
	require.NoError(t, EncodeJSON(res, map[string]any{"statistics": "<b>&</b>"}))

	assert.Equal(t, "text/plain; charset=utf-8", res.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"statistics": "<b>&</b>"}`, res.Body.String())
	assert.Contains(t, res.Body.String(), "<b>&</b>")
	assert.False(t, strings.HasSuffix(res.Body.String(), "\n"))
}

func TestEncodeJSONUnsupported(t *testing.T) {
	res := httptest.NewRecorder()
	assert.Error(t, EncodeJSON(res, map[string]any{"f": func() {}}))
	assert.Zero(t, res.Body.Len())
}

func TestEncodeJSONString(t *testing.T) {
	res := httptest.NewRecorder()
	require.NoError(t, EncodeJSON(res, "Invalid input"))
	assert.Equal(t, `"Invalid input"`, res.Body.String())
}

func TestRenderText(t *testing.T) {
	res := httptest.NewRecorder()
	RenderText(res, http.StatusNotFound, "404 - Not found")

	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "404 - Not found", res.Body.String())
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))

	ctx := context.WithValue(context.Background(), RequestIDKey, "abc")
	assert.Equal(t, "abc", RequestID(ctx))
}
