package profiling

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/author-analysis/gateway/pkg/models"
)

var (
	ErrBadDocument       = errors.New("output is not a profile document")
	ErrMissingProfile    = errors.New("profile lacks age groups or genders")
	ErrProbabilityBounds = errors.New("probability out of range")
)

// ParseOutput decodes the profiling program's stdout, a single JSON document
// with "ageGroups" and "genders" objects mapping labels to probabilities.
func ParseOutput(stdout []byte) (*models.ProfilingResponse, error) {
	var out models.ProfilingResponse
	if err := json.Unmarshal(stdout, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if len(out.AgeGroups) == 0 || len(out.Genders) == 0 {
		return nil, ErrMissingProfile
	}

	for _, dist := range []map[string]float64{out.AgeGroups, out.Genders} {
		for label, p := range dist {
			if p < 0 || p > 1 {
				return nil, fmt.Errorf("%w: %s=%v", ErrProbabilityBounds, label, p)
			}
		}
	}

	return &out, nil
}
