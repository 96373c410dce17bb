package marketstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

func TestRunPreset_RejectsUnknownSortKey(t *testing.T) {
	s := &Store{}

	// Validation happens before any query is issued.
	_, err := s.RunPreset(context.Background(), models.PresetQuery{SortKey: "symbol; DROP TABLE"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported preset sort key")

	_, err = s.RunPreset(context.Background(), models.PresetQuery{})
	assert.Error(t, err)
}

func TestDedupeUpper(t *testing.T) {
	got := dedupeUpper([]string{"btc", " BTC ", "eth", "", "ETH", "sol"})
	assert.Equal(t, []string{"BTC", "ETH", "SOL"}, got)

	assert.Empty(t, dedupeUpper(nil))
}

func TestRemaining(t *testing.T) {
	found := map[string]PriceRow{"BTC": {Symbol: "BTC"}}
	got := remaining([]string{"BTC", "ETH", "SOL"}, found)
	assert.Equal(t, []string{"ETH", "SOL"}, got)
}
