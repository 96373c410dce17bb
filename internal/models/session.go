package models

import "time"

// ChainFamily identifies the address format family of an on-chain address.
type ChainFamily string

const (
	ChainFamilyEVM    ChainFamily = "evm"
	ChainFamilySolana ChainFamily = "solana"
)

// ChainAddress is an on-chain address remembered for a session.
type ChainAddress struct {
	Address string      `json:"address"`
	Family  ChainFamily `json:"family"`
}

// SessionContext is the per-session rolling memory. It is merged, never
// replaced: fresh entities from the current turn are prepended to what was
// persisted before.
type SessionContext struct {
	SessionID         string         `json:"session_id"`
	RecentAssets      []string       `json:"recent_assets"` // most-recent-first, capped
	RecentAddresses   []ChainAddress `json:"recent_addresses"`
	RollingSummary    string         `json:"rolling_summary,omitempty"`
	LastResolvedAsset string         `json:"last_resolved_asset,omitempty"`
	MessageCount      int            `json:"message_count"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// MostRecentAsset returns the newest remembered symbol, preferring the last
// explicitly resolved asset over the recency list.
func (s *SessionContext) MostRecentAsset() string {
	if s == nil {
		return ""
	}
	if s.LastResolvedAsset != "" {
		return s.LastResolvedAsset
	}
	if len(s.RecentAssets) > 0 {
		return s.RecentAssets[0]
	}
	return ""
}
