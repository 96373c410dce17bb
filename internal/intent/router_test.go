package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

func TestRoute_IntentCascade(t *testing.T) {
	tests := []struct {
		name       string
		utterance  string
		wantIntent models.Intent
		wantFlags  []models.DataFlag
		complexity models.ComplexityClass
	}{
		{
			name:       "content generation wins over everything",
			utterance:  "write a tweet about the bitcoin price action",
			wantIntent: models.IntentContentGeneration,
			wantFlags:  []models.DataFlag{models.DataPrices, models.DataNews, models.DataSocial},
			complexity: models.ComplexityComplex,
		},
		{
			name:       "address plus address word is an address check even with safety words",
			utterance:  "is this contract safe 0x6982508145454Ce325dDbE47a25d4ec3d2311933",
			wantIntent: models.IntentAddressCheck,
			wantFlags:  []models.DataFlag{models.DataSecurity, models.DataPrices},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "bare address without an address word is not an address check",
			utterance:  "is 0x6982508145454Ce325dDbE47a25d4ec3d2311933 safe",
			wantIntent: models.IntentSafety,
			wantFlags:  []models.DataFlag{models.DataSecurity, models.DataPrices},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "preset trigger beats market overview",
			utterance:  "show me the top gainers today",
			wantIntent: models.IntentPreset,
			wantFlags:  []models.DataFlag{models.DataPrices},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "market overview",
			utterance:  "how is the market looking today",
			wantIntent: models.IntentMarketOverview,
			wantFlags:  []models.DataFlag{models.DataPrices, models.DataNews, models.DataSocial},
			complexity: models.ComplexityComplex,
		},
		{
			name:       "safety words without an address",
			utterance:  "is PEPE a rugpull",
			wantIntent: models.IntentSafety,
			wantFlags:  []models.DataFlag{models.DataSecurity, models.DataPrices},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "derivatives",
			utterance:  "funding rate on ETH perps right now",
			wantIntent: models.IntentDerivatives,
			wantFlags:  []models.DataFlag{models.DataDerivatives, models.DataPrices},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "sentiment",
			utterance:  "what is the social mood around DOGE",
			wantIntent: models.IntentSentiment,
			wantFlags:  []models.DataFlag{models.DataSocial, models.DataNews},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "news",
			utterance:  "any headlines for AAPL",
			wantIntent: models.IntentNews,
			wantFlags:  []models.DataFlag{models.DataNews},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "technical",
			utterance:  "show me the BTC chart and rsi",
			wantIntent: models.IntentTechnical,
			wantFlags:  []models.DataFlag{models.DataTechnicals, models.DataPrices},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "comparison beats price and analysis",
			utterance:  "$PEPE looks dead, compare it vs btc",
			wantIntent: models.IntentComparison,
			wantFlags:  []models.DataFlag{models.DataPrices, models.DataSocial, models.DataTechnicals},
			complexity: models.ComplexityComplex,
		},
		{
			name:       "simple price question",
			utterance:  "what's the price of SOL",
			wantIntent: models.IntentPrice,
			wantFlags:  []models.DataFlag{models.DataPrices},
			complexity: models.ComplexitySimple,
		},
		{
			name:       "analysis gets the full data spread",
			utterance:  "should I buy ETH? give me your outlook",
			wantIntent: models.IntentAnalysis,
			wantFlags: []models.DataFlag{
				models.DataPrices, models.DataSocial, models.DataTechnicals,
				models.DataNews, models.DataDerivatives,
			},
			complexity: models.ComplexityComplex,
		},
		{
			name:       "small talk falls through to general chat",
			utterance:  "thanks!",
			wantIntent: models.IntentGeneralChat,
			wantFlags:  nil,
			complexity: models.ComplexitySimple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Route(tt.utterance, &models.SessionContext{})

			assert.Equal(t, tt.wantIntent, d.Intent)
			assert.Equal(t, tt.complexity, d.Complexity)
			assert.Len(t, d.DataFlags, len(tt.wantFlags))
			for _, f := range tt.wantFlags {
				assert.True(t, d.Needs(f), "expected data flag %s", f)
			}
		})
	}
}

func TestRoute_GeneralChatFetchesNothing(t *testing.T) {
	d := Route("hello there", &models.SessionContext{})

	assert.Equal(t, models.IntentGeneralChat, d.Intent)
	assert.Empty(t, d.DataFlags)
	assert.Nil(t, d.MatchedPreset)
}

func TestRoute_PresetDecisionCarriesTheCatalogEntry(t *testing.T) {
	d := Route("what's pumping today?", &models.SessionContext{})

	require.Equal(t, models.IntentPreset, d.Intent)
	require.NotNil(t, d.MatchedPreset)
	assert.Equal(t, "top-gainers", d.MatchedPreset.ID)
}

func TestRoute_IsCaseInsensitive(t *testing.T) {
	lower := Route("what's the price of sol", &models.SessionContext{})
	upper := Route("WHAT'S THE PRICE OF SOL", &models.SessionContext{})

	assert.Equal(t, lower.Intent, upper.Intent)
	assert.Equal(t, lower.DataFlags, upper.DataFlags)
}
