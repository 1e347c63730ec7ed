package attribution

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/author-analysis/gateway/pkg/models"
)

// probabilityPattern matches the second line the analysis program prints, which
// holds at least two decimals starting with 0 or 1. The fourth group is the
// same-author probability.
var probabilityPattern = regexp.MustCompile(`.*((0|1)\.(\d*)).*((0|1)\.(\d*)).*`)

var (
	ErrMissingLines      = errors.New("expected statistics and probability lines")
	ErrBadStatistics     = errors.New("statistics line is not a JSON object")
	ErrNoProbability     = errors.New("probability line does not match")
	ErrProbabilityBounds = errors.New("probability out of range")
)

// ParseOutput extracts the attribution result from the analysis program's
// stdout. Line 0 is a JSON object with statistics, line 1 holds the
// probability. Any deviation is an error.
func ParseOutput(stdout []byte) (*models.AttributionResponse, error) {
	lines := strings.Split(string(stdout), "\n")
	if len(lines) < 2 {
		return nil, ErrMissingLines
	}

	var statistics map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(lines[0])), &statistics); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadStatistics, err)
	}
	if statistics == nil {
		return nil, ErrBadStatistics
	}

	match := probabilityPattern.FindStringSubmatch(strings.TrimRight(lines[1], "\r"))
	if match == nil {
		return nil, ErrNoProbability
	}

	probability, err := strconv.ParseFloat(match[4], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoProbability, err)
	}
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("%w: %v", ErrProbabilityBounds, probability)
	}

	return &models.AttributionResponse{
		SameAuthorConfidence: probability,
		Statistics:           statistics,
	}, nil
}
