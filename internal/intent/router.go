// Package intent classifies a raw user utterance into a routing decision:
// which intent it is, which data categories the orchestrator must fetch, and
// whether a canonical market-view preset should be executed verbatim.
//
// Classification is an explicit ordered rule list evaluated first-match-wins,
// so the priority contract is data, not buried control flow. The router never
// asks for clarification; ambiguity always lands on a named fallback intent.
package intent

import (
	"regexp"
	"strings"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

type rule struct {
	name  models.Intent
	match func(lower string, sess *models.SessionContext) bool
	build func(lower string) models.RoutingDecision
}

var (
	reContentGen  = regexp.MustCompile(`\b(write|draft|generate|compose)\b.*\b(post|tweet|thread|article|blog|brief)\b`)
	reEVMAddress  = regexp.MustCompile(`0x[0-9a-fA-F]{40}`)
	reAddressWord = regexp.MustCompile(`\b(contract|address|token address|ca)\b`)
	reOverview    = regexp.MustCompile(`\b(market|markets)\b.*\b(overview|today|doing|update|look|looking)\b|how('s| is| are) the market`)
	reSafety      = regexp.MustCompile(`\b(safe|safety|rug|rugpull|scam|honeypot|audit|legit)\b`)
	reDerivatives = regexp.MustCompile(`\b(funding|open interest|liquidation|liquidations|perp|perps|futures|leverage)\b`)
	reSentiment   = regexp.MustCompile(`\b(sentiment|social|mood|buzz|community)\b`)
	reNews        = regexp.MustCompile(`\b(news|headline|headlines|announcement|announced|happened)\b`)
	reTechnical   = regexp.MustCompile(`\b(chart|charts|technical|technicals|rsi|macd|support|resistance|indicator|indicators|moving average)\b`)
	reComparison  = regexp.MustCompile(`\b(vs|versus|compare|compared|against)\b`)
	rePrice       = regexp.MustCompile(`\b(price|prices|worth|cost|doing|trading at|how much)\b`)
	reAnalysis    = regexp.MustCompile(`\b(analysis|analyze|analyse|think|thoughts|outlook|forecast|prediction|buy|sell)\b`)
)

// rules is evaluated in order; earlier entries take priority. The order is
// the contract: content generation beats address checks beats presets, and so
// on down to the general-chat fallback.
var rules = []rule{
	{
		name:  models.IntentContentGeneration,
		match: func(lower string, _ *models.SessionContext) bool { return reContentGen.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentContentGeneration, models.ComplexityComplex,
				models.DataPrices, models.DataNews, models.DataSocial)
		},
	},
	{
		name: models.IntentAddressCheck,
		match: func(lower string, _ *models.SessionContext) bool {
			return reEVMAddress.MatchString(lower) && reAddressWord.MatchString(lower)
		},
		build: func(string) models.RoutingDecision {
			return decision(models.IntentAddressCheck, models.ComplexitySimple,
				models.DataSecurity, models.DataPrices)
		},
	},
	{
		name: models.IntentPreset,
		match: func(lower string, _ *models.SessionContext) bool {
			return MatchPreset(lower) != nil
		},
		build: func(lower string) models.RoutingDecision {
			d := decision(models.IntentPreset, models.ComplexitySimple, models.DataPrices)
			d.MatchedPreset = MatchPreset(lower)
			return d
		},
	},
	{
		name:  models.IntentMarketOverview,
		match: func(lower string, _ *models.SessionContext) bool { return reOverview.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentMarketOverview, models.ComplexityComplex,
				models.DataPrices, models.DataNews, models.DataSocial)
		},
	},
	{
		name:  models.IntentSafety,
		match: func(lower string, _ *models.SessionContext) bool { return reSafety.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentSafety, models.ComplexitySimple,
				models.DataSecurity, models.DataPrices)
		},
	},
	{
		name:  models.IntentDerivatives,
		match: func(lower string, _ *models.SessionContext) bool { return reDerivatives.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentDerivatives, models.ComplexitySimple,
				models.DataDerivatives, models.DataPrices)
		},
	},
	{
		name:  models.IntentSentiment,
		match: func(lower string, _ *models.SessionContext) bool { return reSentiment.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentSentiment, models.ComplexitySimple,
				models.DataSocial, models.DataNews)
		},
	},
	{
		name:  models.IntentNews,
		match: func(lower string, _ *models.SessionContext) bool { return reNews.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentNews, models.ComplexitySimple, models.DataNews)
		},
	},
	{
		name:  models.IntentTechnical,
		match: func(lower string, _ *models.SessionContext) bool { return reTechnical.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentTechnical, models.ComplexitySimple,
				models.DataTechnicals, models.DataPrices)
		},
	},
	{
		name:  models.IntentComparison,
		match: func(lower string, _ *models.SessionContext) bool { return reComparison.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentComparison, models.ComplexityComplex,
				models.DataPrices, models.DataSocial, models.DataTechnicals)
		},
	},
	{
		name:  models.IntentPrice,
		match: func(lower string, _ *models.SessionContext) bool { return rePrice.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentPrice, models.ComplexitySimple, models.DataPrices)
		},
	},
	{
		name:  models.IntentAnalysis,
		match: func(lower string, _ *models.SessionContext) bool { return reAnalysis.MatchString(lower) },
		build: func(string) models.RoutingDecision {
			return decision(models.IntentAnalysis, models.ComplexityComplex,
				models.DataPrices, models.DataSocial, models.DataTechnicals,
				models.DataNews, models.DataDerivatives)
		},
	},
}

// Route maps an utterance plus session context to a routing decision. Pure:
// no I/O, no mutation of sess.
func Route(utterance string, sess *models.SessionContext) models.RoutingDecision {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	for _, r := range rules {
		if r.match(lower, sess) {
			return r.build(lower)
		}
	}
	return decision(models.IntentGeneralChat, models.ComplexitySimple)
}

func decision(in models.Intent, cc models.ComplexityClass, flags ...models.DataFlag) models.RoutingDecision {
	set := make(map[models.DataFlag]bool, len(flags))
	for _, f := range flags {
		set[f] = true
	}
	return models.RoutingDecision{Intent: in, DataFlags: set, Complexity: cc}
}
