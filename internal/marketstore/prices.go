package marketstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PriceRow is one asset's snapshot from whichever price tier served it.
type PriceRow struct {
	Symbol    string    `json:"symbol"`
	PriceUSD  float64   `json:"price_usd"`
	Change24h float64   `json:"change_24h"`
	Volume24h float64   `json:"volume_24h"`
	MarketCap float64   `json:"market_cap"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source"`
}

// Prices resolves a price row per symbol through the three-tier fallback:
// the full snapshot table first, the secondary aggregator snapshot next, and
// the bare live-price tick table last. A symbol missing from all three is
// simply absent from the result.
func (s *Store) Prices(ctx context.Context, symbols []string) (map[string]PriceRow, error) {
	out := make(map[string]PriceRow, len(symbols))

	missing := dedupeUpper(symbols)
	missing, err := s.fillFromSnapshots(ctx, missing, out)
	if err != nil {
		return nil, err
	}
	missing, err = s.fillFromSecondary(ctx, missing, out)
	if err != nil {
		s.logger.WithError(err).Warn("secondary snapshot lookup failed")
	}
	if len(missing) > 0 {
		if _, err := s.fillFromLivePrices(ctx, missing, out); err != nil {
			s.logger.WithError(err).Warn("live price lookup failed")
		}
	}
	return out, nil
}

func (s *Store) fillFromSnapshots(ctx context.Context, symbols []string, out map[string]PriceRow) ([]string, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	query := `
		SELECT symbol, price_usd, change_24h, volume_24h, market_cap, updated_at
		FROM price_snapshots FINAL
		WHERE symbol IN (?)
	`
	rows, err := s.db.QueryContext(ctx, query, symbols)
	if err != nil {
		return symbols, fmt.Errorf("price snapshot query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r PriceRow
		if err := rows.Scan(&r.Symbol, &r.PriceUSD, &r.Change24h, &r.Volume24h, &r.MarketCap, &r.UpdatedAt); err != nil {
			return symbols, fmt.Errorf("price snapshot scan: %w", err)
		}
		r.Source = "snapshot"
		out[r.Symbol] = r
	}
	return remaining(symbols, out), rows.Err()
}

func (s *Store) fillFromSecondary(ctx context.Context, symbols []string, out map[string]PriceRow) ([]string, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	query := `
		SELECT symbol, price_usd, change_24h, market_cap, updated_at
		FROM cg_snapshots FINAL
		WHERE symbol IN (?)
	`
	rows, err := s.db.QueryContext(ctx, query, symbols)
	if err != nil {
		return symbols, fmt.Errorf("secondary snapshot query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r PriceRow
		if err := rows.Scan(&r.Symbol, &r.PriceUSD, &r.Change24h, &r.MarketCap, &r.UpdatedAt); err != nil {
			return symbols, fmt.Errorf("secondary snapshot scan: %w", err)
		}
		r.Source = "cg_snapshot"
		out[r.Symbol] = r
	}
	return remaining(symbols, out), rows.Err()
}

func (s *Store) fillFromLivePrices(ctx context.Context, symbols []string, out map[string]PriceRow) ([]string, error) {
	query := `
		SELECT symbol, argMax(price_usd, updated_at), max(updated_at)
		FROM live_prices
		WHERE symbol IN (?)
		GROUP BY symbol
	`
	rows, err := s.db.QueryContext(ctx, query, symbols)
	if err != nil {
		return symbols, fmt.Errorf("live price query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r PriceRow
		if err := rows.Scan(&r.Symbol, &r.PriceUSD, &r.UpdatedAt); err != nil {
			return symbols, fmt.Errorf("live price scan: %w", err)
		}
		r.Source = "live"
		out[r.Symbol] = r
	}
	return remaining(symbols, out), rows.Err()
}

// LookupPrice is the single-symbol form of Prices.
func (s *Store) LookupPrice(ctx context.Context, symbol string) (*PriceRow, error) {
	rows, err := s.Prices(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	r, ok := rows[strings.ToUpper(symbol)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

// IsNotFound reports whether err is the clean-miss sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func dedupeUpper(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		u := strings.ToUpper(strings.TrimSpace(s))
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func remaining(symbols []string, found map[string]PriceRow) []string {
	var out []string
	for _, s := range symbols {
		if _, ok := found[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
