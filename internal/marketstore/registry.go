package marketstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// FindTicker resolves a token against the ticker-alias registry by exact
// symbol or registered alias. Returns (nil, nil) on a clean miss, which the
// resolver treats as "try the next strategy".
func (s *Store) FindTicker(ctx context.Context, token string) (*models.ResolvedAsset, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return nil, nil
	}

	query := `
		SELECT symbol, kind, price_feed_id, chart_feed_id, address, chain_family
		FROM ticker_aliases FINAL
		WHERE symbol = ? OR alias = ?
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, token, token)

	var (
		asset  models.ResolvedAsset
		kind   string
		family string
	)
	err := row.Scan(&asset.Symbol, &kind, &asset.IDs.PriceFeedID, &asset.IDs.ChartFeedID, &asset.OnchainAddress, &family)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ticker registry query: %w", err)
	}

	asset.Kind = models.AssetKind(kind)
	asset.OnchainFamily = models.ChainFamily(family)
	asset.Source = models.SourceStoreLookup
	return &asset, nil
}

// InCryptoSnapshots reports whether symbol has a row in the crypto snapshot
// table.
func (s *Store) InCryptoSnapshots(ctx context.Context, symbol string) (bool, error) {
	return s.symbolExists(ctx, "price_snapshots", symbol)
}

// InStockSnapshots reports whether symbol has a row in the stock snapshot
// table.
func (s *Store) InStockSnapshots(ctx context.Context, symbol string) (bool, error) {
	return s.symbolExists(ctx, "stock_snapshots", symbol)
}

func (s *Store) symbolExists(ctx context.Context, table, symbol string) (bool, error) {
	query := fmt.Sprintf(`SELECT count() FROM %s WHERE symbol = ?`, table)
	var n uint64
	if err := s.db.QueryRowContext(ctx, query, strings.ToUpper(symbol)).Scan(&n); err != nil {
		return false, fmt.Errorf("%s existence check: %w", table, err)
	}
	return n > 0, nil
}
