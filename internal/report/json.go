package report

import (
	"encoding/json"
	"fmt"

	"github.com/dgnsrekt/gex-condor/internal/analysis"
)

// JSON renders the recommendation as indented JSON for piping into logs or
// automation.
func JSON(rec *analysis.Recommendation) ([]byte, error) {
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding recommendation: %w", err)
	}
	return out, nil
}
