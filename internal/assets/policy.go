package assets

import (
	"context"
	"fmt"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// Lookup is the external store surface the resolver needs: the ticker-alias
// registry plus the two snapshot tables used as a secondary signal that a
// symbol is real.
type Lookup interface {
	// FindTicker resolves an exact symbol or registered alias from the
	// ticker registry. Returns (nil, nil) on a clean miss.
	FindTicker(ctx context.Context, token string) (*models.ResolvedAsset, error)

	// InCryptoSnapshots reports whether the symbol has a crypto snapshot row.
	InCryptoSnapshots(ctx context.Context, symbol string) (bool, error)

	// InStockSnapshots reports whether the symbol has a stock snapshot row.
	InStockSnapshots(ctx context.Context, symbol string) (bool, error)
}

// Strategy is one step of the resolution policy. A nil asset with a nil
// error means "this strategy has no opinion, try the next one".
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, cand Candidate) (*models.ResolvedAsset, error)
}

// ResolutionPolicy is the ordered guess-never-ask strategy chain: first
// success wins, and the final strategy always succeeds so a format-valid
// token is never silently dropped.
type ResolutionPolicy struct {
	strategies []Strategy
}

// NewResolutionPolicy builds the standard chain: static alias table, ticker
// registry, snapshot tables (crypto then stock), popularity guess, and the
// flagged assumption.
func NewResolutionPolicy(lookup Lookup) *ResolutionPolicy {
	return &ResolutionPolicy{
		strategies: []Strategy{
			aliasStrategy{},
			registryStrategy{lookup: lookup},
			snapshotStrategy{lookup: lookup},
			popularityStrategy{},
			assumptionStrategy{},
		},
	}
}

// Resolve runs the chain for one candidate. Infrastructure errors from a
// strategy are swallowed into advancing to the next strategy; the chain as a
// whole cannot fail.
func (p *ResolutionPolicy) Resolve(ctx context.Context, cand Candidate) models.ResolvedAsset {
	for _, s := range p.strategies {
		asset, err := s.Resolve(ctx, cand)
		if err != nil || asset == nil {
			continue
		}
		asset.DollarPrefixed = cand.Dollar
		return *asset
	}
	// Unreachable: assumptionStrategy never misses. Kept as a hard floor.
	return models.ResolvedAsset{
		Symbol: cand.Token,
		Kind:   models.AssetKindUnknown,
		Source: models.SourceAssumption,
		Caveat: fmt.Sprintf("assuming %q is a ticker", cand.Token),
	}
}

type aliasStrategy struct{}

func (aliasStrategy) Name() string { return "alias" }

func (aliasStrategy) Resolve(_ context.Context, cand Candidate) (*models.ResolvedAsset, error) {
	// Extraction already normalized aliases into canonical tickers; here the
	// table only confirms the token is one of its canonical targets.
	for _, canonical := range aliasTable {
		if canonical == cand.Token {
			kind := models.AssetKindCrypto
			if k, ok := constants.PopularMajors[cand.Token]; ok && k == "stock" {
				kind = models.AssetKindStock
			}
			return &models.ResolvedAsset{
				Symbol: cand.Token,
				Kind:   kind,
				Source: models.SourceAlias,
			}, nil
		}
	}
	return nil, nil
}

type registryStrategy struct {
	lookup Lookup
}

func (registryStrategy) Name() string { return "registry" }

func (s registryStrategy) Resolve(ctx context.Context, cand Candidate) (*models.ResolvedAsset, error) {
	if s.lookup == nil {
		return nil, nil
	}
	asset, err := s.lookup.FindTicker(ctx, cand.Token)
	if err != nil {
		return nil, fmt.Errorf("registry lookup %s: %w", cand.Token, err)
	}
	return asset, nil
}

type snapshotStrategy struct {
	lookup Lookup
}

func (snapshotStrategy) Name() string { return "snapshot" }

func (s snapshotStrategy) Resolve(ctx context.Context, cand Candidate) (*models.ResolvedAsset, error) {
	if s.lookup == nil {
		return nil, nil
	}
	if ok, err := s.lookup.InCryptoSnapshots(ctx, cand.Token); err == nil && ok {
		return &models.ResolvedAsset{
			Symbol: cand.Token,
			Kind:   models.AssetKindCrypto,
			Source: models.SourceStoreLookup,
		}, nil
	}
	ok, err := s.lookup.InStockSnapshots(ctx, cand.Token)
	if err != nil {
		return nil, fmt.Errorf("snapshot lookup %s: %w", cand.Token, err)
	}
	if !ok {
		return nil, nil
	}
	return &models.ResolvedAsset{
		Symbol: cand.Token,
		Kind:   models.AssetKindStock,
		Source: models.SourceStoreLookup,
	}, nil
}

type popularityStrategy struct{}

func (popularityStrategy) Name() string { return "popularity" }

func (popularityStrategy) Resolve(_ context.Context, cand Candidate) (*models.ResolvedAsset, error) {
	kind, ok := constants.PopularMajors[cand.Token]
	if !ok {
		return nil, nil
	}
	return &models.ResolvedAsset{
		Symbol: cand.Token,
		Kind:   models.AssetKind(kind),
		Source: models.SourcePopularity,
	}, nil
}

type assumptionStrategy struct{}

func (assumptionStrategy) Name() string { return "assumption" }

func (assumptionStrategy) Resolve(_ context.Context, cand Candidate) (*models.ResolvedAsset, error) {
	return &models.ResolvedAsset{
		Symbol: cand.Token,
		Kind:   models.AssetKindUnknown,
		Source: models.SourceAssumption,
		Caveat: fmt.Sprintf("treating %q as a ticker; it was not found in any registry", cand.Token),
	}, nil
}
