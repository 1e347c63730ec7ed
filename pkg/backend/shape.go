package backend

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// AsObject returns request as a JSON object, if it is one.
func AsObject(request any) (map[string]any, bool) {
	m, ok := request.(map[string]any)
	return m, ok && m != nil
}

func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsNumber reports whether v is a decoded JSON number (or a Go integer).
func IsNumber(v any) bool {
	switch n := v.(type) {
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	case int, int32, int64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether v is a number without a fractional part that fits
// in an int.
func IsInteger(v any) bool {
	switch n := v.(type) {
	case float64:
		return IsNumber(n) && n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32
	case int, int32, int64:
		return true
	default:
		return false
	}
}

// IsStringList reports whether v is an array of at least minLen strings.
func IsStringList(v any, minLen int) bool {
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []string:
		return len(list) >= minLen
	default:
		return false
	}
	if len(items) < minLen {
		return false
	}
	for _, item := range items {
		if !IsString(item) {
			return false
		}
	}
	return true
}

// Decode copies a validated JSON object into out, a pointer to a struct with
// mapstructure tags, and runs the struct's validate tags.
func Decode(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return err
	}
	return validate.Struct(out)
}
