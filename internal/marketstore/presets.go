package marketstore

import (
	"context"
	"fmt"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// presetSortKeys whitelists the columns a preset query may sort on. Preset
// definitions are static configuration, but the sort key still never reaches
// the SQL string unvalidated.
var presetSortKeys = map[string]bool{
	"change_24h":    true,
	"volume_24h":    true,
	"market_cap":    true,
	"social_volume": true,
	"rsi":           true,
}

// RunPreset executes a canonical market-view query against the wide snapshot
// table. Deterministic by construction: fixed sort, fixed filters, fixed
// limit, symbol as tiebreaker.
func (s *Store) RunPreset(ctx context.Context, q models.PresetQuery) ([]PriceRow, error) {
	if !presetSortKeys[q.SortKey] {
		return nil, fmt.Errorf("unsupported preset sort key %q", q.SortKey)
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	limit := q.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	query := fmt.Sprintf(`
		SELECT symbol, price_usd, change_24h, volume_24h, market_cap, updated_at
		FROM price_snapshots FINAL
		WHERE volume_24h >= ? AND market_cap >= ?
		ORDER BY %s %s, symbol ASC
		LIMIT ?
	`, q.SortKey, dir)

	rows, err := s.db.QueryContext(ctx, query, q.MinVolumeUSD, q.MinMarketCap, limit)
	if err != nil {
		return nil, fmt.Errorf("preset query: %w", err)
	}
	defer rows.Close()

	var out []PriceRow
	for rows.Next() {
		var r PriceRow
		if err := rows.Scan(&r.Symbol, &r.PriceUSD, &r.Change24h, &r.Volume24h, &r.MarketCap, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("preset scan: %w", err)
		}
		r.Source = "snapshot"
		out = append(out, r)
	}
	return out, rows.Err()
}
