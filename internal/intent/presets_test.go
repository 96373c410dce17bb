package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPreset(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		wantID    string // "" means no match
	}{
		{"exact trigger", "top gainers", "top-gainers"},
		{"trigger inside a sentence", "hey, show me the biggest losers please", "top-losers"},
		{"case insensitive", "TOP VOLUME", "top-volume"},
		{"apostrophe variant", "what's dumping", "top-losers"},
		{"social trending", "which coins are most talked about right now", "trending-social"},
		{"oversold", "give me the lowest rsi names", "oversold"},
		{"no trigger at all", "tell me a joke", ""},
		{"trigger word fragments do not score", "the top of the market", ""},
		{"empty utterance", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchPreset(tt.utterance)
			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestMatchPreset_MultipleTriggersOutvoteASingleOne(t *testing.T) {
	// Both of top-losers' phrases appear, only one of top-gainers'. The
	// summed-length score must pick the losers preset.
	got := MatchPreset("top gainers or top losers, whichever is dumping, show me the biggest losers")

	require.NotNil(t, got)
	assert.Equal(t, "top-losers", got.ID)
}

func TestCatalog_IDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Catalog {
		assert.False(t, seen[p.ID], "duplicate preset id %s", p.ID)
		seen[p.ID] = true

		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Triggers)
		assert.NotEmpty(t, p.Query.SortKey)
		assert.Greater(t, p.Query.Limit, 0)
	}
}

func TestPresetByID(t *testing.T) {
	got := PresetByID("top-gainers")
	require.NotNil(t, got)
	assert.Equal(t, "Top Gainers (24h)", got.Name)

	assert.Nil(t, PresetByID("no-such-preset"))
}
