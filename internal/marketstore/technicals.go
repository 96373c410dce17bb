package marketstore

import (
	"context"
	"fmt"
	"time"
)

// TechnicalRow is one asset's indicator snapshot.
type TechnicalRow struct {
	Symbol    string    `json:"symbol"`
	RSI       float64   `json:"rsi"`
	MACD      float64   `json:"macd"`
	SMA50     float64   `json:"sma_50"`
	SMA200    float64   `json:"sma_200"`
	Trend     string    `json:"trend"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Technicals returns indicator snapshots for the given symbols.
func (s *Store) Technicals(ctx context.Context, symbols []string) (map[string]TechnicalRow, error) {
	symbols = dedupeUpper(symbols)
	if len(symbols) == 0 {
		return map[string]TechnicalRow{}, nil
	}

	query := `
		SELECT symbol, rsi, macd, sma_50, sma_200, trend, updated_at
		FROM technical_snapshots FINAL
		WHERE symbol IN (?)
	`
	rows, err := s.db.QueryContext(ctx, query, symbols)
	if err != nil {
		return nil, fmt.Errorf("technicals query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]TechnicalRow, len(symbols))
	for rows.Next() {
		var r TechnicalRow
		if err := rows.Scan(&r.Symbol, &r.RSI, &r.MACD, &r.SMA50, &r.SMA200, &r.Trend, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("technicals scan: %w", err)
		}
		out[r.Symbol] = r
	}
	return out, rows.Err()
}
