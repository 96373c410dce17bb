package models

// AssetKind is the market an asset trades in.
type AssetKind string

const (
	AssetKindCrypto  AssetKind = "crypto"
	AssetKindStock   AssetKind = "stock"
	AssetKindForex   AssetKind = "forex"
	AssetKindUnknown AssetKind = "unknown"
)

// ResolutionSource records which strategy produced a resolved asset.
type ResolutionSource string

const (
	SourceContext     ResolutionSource = "context"
	SourceAlias       ResolutionSource = "alias"
	SourceStoreLookup ResolutionSource = "store-lookup"
	SourcePopularity  ResolutionSource = "popularity-guess"
	SourceAssumption  ResolutionSource = "assumption"
)

// ExternalIDs are the feed identifiers downstream fetchers key on.
type ExternalIDs struct {
	PriceFeedID string `json:"price_feed_id,omitempty"`
	ChartFeedID string `json:"chart_feed_id,omitempty"`
}

// ResolvedAsset is a ticker mapped to canonical identifiers. The first asset
// of a turn is the primary subject.
type ResolvedAsset struct {
	Symbol         string           `json:"symbol"`
	Kind           AssetKind        `json:"kind"`
	IDs            ExternalIDs      `json:"ids"`
	Source         ResolutionSource `json:"source"`
	Caveat         string           `json:"caveat,omitempty"`
	OnchainAddress string           `json:"onchain_address,omitempty"`
	OnchainFamily  ChainFamily      `json:"onchain_family,omitempty"`
	DollarPrefixed bool             `json:"-"`
}
