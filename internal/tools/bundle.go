package tools

import (
	"time"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/marketstore"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// Meta carries the provenance every populated category must be able to cite:
// when it was fetched, how old it was, and which backend served it.
type Meta struct {
	AsOf       time.Time `json:"as_of"`
	AgeSeconds int64     `json:"age_seconds"`
	Source     string    `json:"source"`
}

func metaNow(source string) Meta {
	now := time.Now().UTC()
	return Meta{AsOf: now, Source: source}
}

// withAge stamps the age of the oldest underlying snapshot.
func (m Meta) withAge(oldest time.Time) Meta {
	if !oldest.IsZero() {
		m.AgeSeconds = int64(m.AsOf.Sub(oldest).Seconds())
		if m.AgeSeconds < 0 {
			m.AgeSeconds = 0
		}
	}
	return m
}

type PriceData struct {
	Meta
	Rows map[string]marketstore.PriceRow `json:"rows"`
}

type TechnicalData struct {
	Meta
	Rows map[string]marketstore.TechnicalRow `json:"rows"`
}

type PresetData struct {
	Meta
	Preset models.PresetDefinition `json:"preset"`
	Rows   []marketstore.PriceRow  `json:"rows"`
}

type SocialMetrics struct {
	Symbol       string  `json:"symbol"`
	GalaxyScore  float64 `json:"galaxy_score"`
	AltRank      int     `json:"alt_rank"`
	Sentiment    float64 `json:"sentiment"`
	SocialVolume int64   `json:"social_volume"`
}

type SocialData struct {
	Meta
	Metrics map[string]SocialMetrics `json:"metrics"`
}

type FundingRow struct {
	Symbol          string  `json:"symbol"`
	MarkPrice       float64 `json:"mark_price"`
	FundingRate     float64 `json:"funding_rate"`
	OpenInterest    float64 `json:"open_interest"`
	NextFundingTime int64   `json:"next_funding_time"`
}

type DerivativesData struct {
	Meta
	Rows []FundingRow `json:"rows"`
}

type SecurityReport struct {
	Address         string  `json:"address"`
	ChainID         string  `json:"chain_id"`
	IsOpenSource    bool    `json:"is_open_source"`
	IsHoneypot      bool    `json:"is_honeypot"`
	BuyTaxPercent   float64 `json:"buy_tax_percent"`
	SellTaxPercent  float64 `json:"sell_tax_percent"`
	HolderCount     int64   `json:"holder_count"`
	OwnerAddress    string  `json:"owner_address"`
	CanTakeOwnback  bool    `json:"can_take_back_ownership"`
	IsMintable      bool    `json:"is_mintable"`
	TradingCooldown bool    `json:"trading_cooldown"`
}

type SecurityData struct {
	Meta
	Report *SecurityReport `json:"report"`
}

type NewsItem struct {
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

type NewsData struct {
	Meta
	Items []NewsItem `json:"items"`
}

// Bundle is the orchestrator's output. A nil category means "not fetched or
// fetch failed" and is silently omitted downstream; a non-nil category with
// empty rows means "fetched but empty" and gets noted explicitly.
type Bundle struct {
	Prices      *PriceData       `json:"prices,omitempty"`
	Social      *SocialData      `json:"social,omitempty"`
	Derivatives *DerivativesData `json:"derivatives,omitempty"`
	Security    *SecurityData    `json:"security,omitempty"`
	News        *NewsData        `json:"news,omitempty"`
	Technicals  *TechnicalData   `json:"technicals,omitempty"`
	Preset      *PresetData      `json:"preset,omitempty"`
}
