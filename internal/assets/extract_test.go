package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCandidates(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      []Candidate
	}{
		{
			name:      "plain ticker",
			utterance: "price of BTC please",
			want:      []Candidate{{Token: "BTC"}},
		},
		{
			name:      "dollar prefix bypasses the stopword filter",
			utterance: "$ME to the moon",
			want:      []Candidate{{Token: "ME", Dollar: true}},
		},
		{
			name:      "same token without a dollar prefix is a stopword",
			utterance: "me to the moon",
			want:      []Candidate{},
		},
		{
			name:      "full names normalize to the canonical ticker",
			utterance: "how is bitcoin doing vs ethereum",
			want:      []Candidate{{Token: "BTC"}, {Token: "ETH"}},
		},
		{
			name:      "common misspelling",
			utterance: "solona price",
			want:      []Candidate{{Token: "SOL"}},
		},
		{
			name:      "mixed dollar and bare tickers keep utterance order",
			utterance: "how's $PEPE doing vs btc",
			want:      []Candidate{{Token: "PEPE", Dollar: true}, {Token: "BTC"}},
		},
		{
			name:      "duplicates collapse to the first occurrence",
			utterance: "BTC btc $BTC bitcoin",
			want:      []Candidate{{Token: "BTC"}},
		},
		{
			name:      "all-digit tokens are dropped",
			utterance: "give me 100 DOGE now",
			want:      []Candidate{{Token: "DOGE"}},
		},
		{
			name:      "digit-leading ticker behind a dollar prefix",
			utterance: "how is $1INCH doing",
			want:      []Candidate{{Token: "1INCH", Dollar: true}},
		},
		{
			name:      "digit-leading token without the prefix is not a candidate",
			utterance: "1INCH price",
			want:      []Candidate{},
		},
		{
			name:      "sentence of stopwords yields nothing",
			utterance: "what should i buy today",
			want:      []Candidate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCandidates(tt.utterance)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCandidates_DollarAliasStillNormalizes(t *testing.T) {
	// A $-prefixed full name is unusual but legal; the alias table still wins.
	got := ExtractCandidates("$bitcoin to the moon")
	assert.Equal(t, []Candidate{{Token: "BTC", Dollar: true}}, got)
}
