package reasoner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techtitans/foundit/internal/common"
)

// stripMarkdownFences removes ```json fences that providers wrap around
// responses despite being told not to.
func stripMarkdownFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// parseRankResponse decodes the ranking verdict from raw provider output.
func parseRankResponse(content string) (RankResponse, error) {
	content = stripMarkdownFences(content)

	var resp RankResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return RankResponse{}, fmt.Errorf("%w: %v", common.ErrUnparsableResponse, err)
	}

	if resp.Confidence < 0 || resp.Confidence > 100 {
		return RankResponse{}, fmt.Errorf("%w: confidence %d out of range", common.ErrUnparsableResponse, resp.Confidence)
	}

	return resp, nil
}

// parseAnalysisResponse decodes the intake analysis from raw provider output.
func parseAnalysisResponse(content string) (AnalysisResponse, error) {
	content = stripMarkdownFences(content)

	var resp AnalysisResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return AnalysisResponse{}, fmt.Errorf("%w: %v", common.ErrUnparsableResponse, err)
	}

	return resp, nil
}
