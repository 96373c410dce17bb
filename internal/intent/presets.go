package intent

import (
	"strings"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// minPresetScore is the minimum trigger-phrase score a preset must reach to
// be selected. Scoring sums the lengths of every matched phrase, so short
// generic words cannot out-vote a longer, more specific phrase. Tunable; the
// scenario tests pin the behavior, not this exact value.
const minPresetScore = 8

// Catalog is the static market-view preset catalog. Ids are unique and every
// query is deterministic.
var Catalog = []models.PresetDefinition{
	{
		ID:       "top-gainers",
		Name:     "Top Gainers (24h)",
		Category: "movers",
		Query:    models.PresetQuery{SortKey: "change_24h", SortDesc: true, MinVolumeUSD: 1_000_000, Limit: 10},
		Triggers: []string{"top gainers", "biggest gainers", "best performers", "what's pumping", "whats pumping"},
	},
	{
		ID:       "top-losers",
		Name:     "Top Losers (24h)",
		Category: "movers",
		Query:    models.PresetQuery{SortKey: "change_24h", SortDesc: false, MinVolumeUSD: 1_000_000, Limit: 10},
		Triggers: []string{"top losers", "biggest losers", "worst performers", "what's dumping", "whats dumping"},
	},
	{
		ID:       "top-volume",
		Name:     "Highest Volume (24h)",
		Category: "volume",
		Query:    models.PresetQuery{SortKey: "volume_24h", SortDesc: true, Limit: 10},
		Triggers: []string{"top volume", "highest volume", "most traded", "volume leaders"},
	},
	{
		ID:       "top-market-cap",
		Name:     "Largest by Market Cap",
		Category: "rankings",
		Query:    models.PresetQuery{SortKey: "market_cap", SortDesc: true, Limit: 10},
		Triggers: []string{"top market cap", "biggest coins", "largest coins", "top coins by market cap"},
	},
	{
		ID:       "trending-social",
		Name:     "Trending on Social",
		Category: "social",
		Query:    models.PresetQuery{SortKey: "social_volume", SortDesc: true, MinMarketCap: 10_000_000, Limit: 10},
		Triggers: []string{"trending coins", "trending on social", "most talked about", "social trending", "hot coins"},
	},
	{
		ID:       "oversold",
		Name:     "Oversold (RSI)",
		Category: "technicals",
		Query:    models.PresetQuery{SortKey: "rsi", SortDesc: false, MinVolumeUSD: 5_000_000, Limit: 10},
		Triggers: []string{"oversold coins", "lowest rsi", "most oversold"},
	},
}

// MatchPreset scores the utterance against every preset and returns the
// winner, or nil if no preset clears the minimum score. Score for a preset is
// the summed character length of each of its trigger phrases found in the
// utterance (case-insensitive substring match).
func MatchPreset(utterance string) *models.PresetDefinition {
	lower := strings.ToLower(utterance)

	var best *models.PresetDefinition
	bestScore := 0
	for i := range Catalog {
		score := 0
		for _, trigger := range Catalog[i].Triggers {
			if strings.Contains(lower, trigger) {
				score += len(trigger)
			}
		}
		if score > bestScore {
			best = &Catalog[i]
			bestScore = score
		}
	}

	if bestScore < minPresetScore {
		return nil
	}
	return best
}

// PresetByID returns the catalog entry for id, or nil.
func PresetByID(id string) *models.PresetDefinition {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}
