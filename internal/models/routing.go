package models

// Intent is the classified purpose of a user turn.
type Intent string

const (
	IntentContentGeneration Intent = "content_generation"
	IntentAddressCheck      Intent = "address_check"
	IntentPreset            Intent = "preset"
	IntentMarketOverview    Intent = "market_overview"
	IntentSafety            Intent = "safety"
	IntentDerivatives       Intent = "derivatives"
	IntentSentiment         Intent = "sentiment"
	IntentNews              Intent = "news"
	IntentTechnical         Intent = "technical"
	IntentComparison        Intent = "comparison"
	IntentPrice             Intent = "price"
	IntentAnalysis          Intent = "analysis"
	IntentGeneralChat       Intent = "general_chat"
)

// DataFlag names one category of market data the orchestrator can fetch.
type DataFlag string

const (
	DataPrices       DataFlag = "prices"
	DataSocial       DataFlag = "social"
	DataDerivatives  DataFlag = "derivatives"
	DataSecurity     DataFlag = "security"
	DataNews         DataFlag = "news"
	DataTechnicals   DataFlag = "technicals"
	DataFundamentals DataFlag = "fundamentals"
)

// ComplexityClass selects the cheap or the capable model variant downstream.
type ComplexityClass string

const (
	ComplexitySimple  ComplexityClass = "simple"
	ComplexityComplex ComplexityClass = "complex"
)

// PresetQuery is the deterministic query shape behind a preset: same inputs
// always yield the same result-set shape.
type PresetQuery struct {
	SortKey      string  `json:"sort_key"`
	SortDesc     bool    `json:"sort_desc"`
	MinVolumeUSD float64 `json:"min_volume_usd,omitempty"`
	MinMarketCap float64 `json:"min_market_cap,omitempty"`
	Limit        int     `json:"limit"`
}

// PresetDefinition is one entry of the static market-view catalog.
type PresetDefinition struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Query    PresetQuery `json:"query"`
	Triggers []string    `json:"triggers"`
}

// RoutingDecision is the router's immutable per-turn output.
type RoutingDecision struct {
	Intent        Intent
	DataFlags     map[DataFlag]bool
	MatchedPreset *PresetDefinition
	Complexity    ComplexityClass
}

// Needs reports whether a data category was requested.
func (d RoutingDecision) Needs(f DataFlag) bool {
	return d.DataFlags[f]
}
