package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lower-cases and strips punctuation",
			text: "Black Wallet, with Student-ID!",
			want: []string{"black", "wallet", "with", "studentid"},
		},
		{
			name: "drops short tokens",
			text: "id on my TV",
			want: []string{},
		},
		{
			name: "drops stop words including domain words",
			text: "lost item found in the library",
			want: []string{"library"},
		},
		{
			name: "collapses duplicates",
			text: "keys keys keys",
			want: []string{"keys"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			assert.Len(t, got, len(tt.want))
			for _, token := range tt.want {
				assert.Contains(t, got, token)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		textA string
		textB string
		want  float64
	}{
		{
			name:  "identical texts",
			textA: "black leather wallet near cafeteria",
			textB: "black leather wallet near cafeteria",
			want:  1.0,
		},
		{
			name:  "disjoint texts",
			textA: "silver laptop charger",
			textB: "blue umbrella",
			want:  0.0,
		},
		{
			name:  "partial overlap",
			textA: "black wallet",
			textB: "black umbrella",
			want:  1.0 / 3.0,
		},
		{
			name:  "stop-word-only text scores zero",
			textA: "the a an",
			textB: "black wallet",
			want:  0.0,
		},
		{
			name:  "both empty",
			textA: "",
			textB: "",
			want:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.textA, tt.textB), 1e-9)
		})
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"black wallet with student id", "black leather wallet, id card inside"},
		{"airpods case", "white airpods pro case left in lab"},
		{"", "keys"},
	}

	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]))
	}
}

func TestScoreReflexivity(t *testing.T) {
	// Any text with at least one significant token scores 1.0 against itself.
	texts := []string{
		"black wallet",
		"Samsung Galaxy S21, cracked screen",
		"hostel room keys with red keychain",
	}

	for _, text := range texts {
		assert.InDelta(t, 1.0, Score(text, text), 1e-9)
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords("Lost my RED Bag near gate")
	assert.Equal(t, []string{"lost", "near", "gate"}, got)

	assert.Empty(t, Keywords("id on tv"))
}
