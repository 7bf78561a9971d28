package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtitans/foundit/internal/common"
)

func TestParseRankResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    RankResponse
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"bestMatchId": "item-42", "confidence": 88, "reason": "both describe headphones"}`,
			want:    RankResponse{BestMatchID: "item-42", Confidence: 88, Reason: "both describe headphones"},
		},
		{
			name:    "no match verdict",
			content: `{"bestMatchId": null, "confidence": 0, "reason": "nothing plausible"}`,
			want:    RankResponse{BestMatchID: "", Confidence: 0, Reason: "nothing plausible"},
		},
		{
			name: "markdown fenced json",
			content: "```json\n" + `{"bestMatchId": "item-7", "confidence": 70, "reason": "similar"}` + "\n```",
			want: RankResponse{BestMatchID: "item-7", Confidence: 70, Reason: "similar"},
		},
		{
			name:    "fences without language tag",
			content: "```\n" + `{"bestMatchId": "item-7", "confidence": 70, "reason": "similar"}` + "\n```",
			want:    RankResponse{BestMatchID: "item-7", Confidence: 70, Reason: "similar"},
		},
		{
			name:    "surrounding whitespace",
			content: "  \n" + `{"bestMatchId": "item-7", "confidence": 70, "reason": "ok"}` + "\n  ",
			want:    RankResponse{BestMatchID: "item-7", Confidence: 70, Reason: "ok"},
		},
		{
			name:    "not json",
			content: "I believe item-7 is the best match.",
			wantErr: true,
		},
		{
			name:    "confidence above range",
			content: `{"bestMatchId": "item-7", "confidence": 150, "reason": "very sure"}`,
			wantErr: true,
		},
		{
			name:    "confidence below range",
			content: `{"bestMatchId": "item-7", "confidence": -5, "reason": "unsure"}`,
			wantErr: true,
		},
		{
			name:    "empty content",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRankResponse(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrUnparsableResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnalysisResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    AnalysisResponse
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"shortDescription": "A silver laptop lost near the library.", "tags": ["electronic", "laptop", "silver"]}`,
			want: AnalysisResponse{
				ShortDescription: "A silver laptop lost near the library.",
				Tags:             []string{"electronic", "laptop", "silver"},
			},
		},
		{
			name: "markdown fenced json",
			content: "```json\n" + `{"shortDescription": "Keys.", "tags": ["keys"]}` + "\n```",
			want: AnalysisResponse{ShortDescription: "Keys.", Tags: []string{"keys"}},
		},
		{
			name:    "not json",
			content: "tags: keys",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnalysisResponse(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrUnparsableResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripMarkdownFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripMarkdownFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripMarkdownFences(`{"a": 1}`))
	assert.Equal(t, "", stripMarkdownFences("```json\n```"))
}
