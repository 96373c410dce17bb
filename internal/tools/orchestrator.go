// Package tools fans out to the independent market-data backends for a turn.
// Every category runs concurrently under its own deadline; one slow or
// failing backend costs that category only, never the turn.
package tools

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/marketstore"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// MarketReader is the snapshot-store surface the orchestrator needs.
type MarketReader interface {
	Prices(ctx context.Context, symbols []string) (map[string]marketstore.PriceRow, error)
	Technicals(ctx context.Context, symbols []string) (map[string]marketstore.TechnicalRow, error)
	RunPreset(ctx context.Context, q models.PresetQuery) ([]marketstore.PriceRow, error)
}

type SocialFetcher interface {
	Configured() bool
	Metrics(ctx context.Context, symbols []string) (map[string]SocialMetrics, error)
}

type SecurityScanner interface {
	Scan(ctx context.Context, address string, chains []string) (*SecurityReport, error)
}

type DerivativesFetcher interface {
	Funding(ctx context.Context, symbols []string) ([]FundingRow, error)
}

type NewsFetcher interface {
	Configured() bool
	Latest(ctx context.Context, subjects []models.ResolvedAsset) ([]NewsItem, error)
}

type Orchestrator struct {
	Market      MarketReader
	Social      SocialFetcher
	Security    SecurityScanner
	Derivatives DerivativesFetcher
	News        NewsFetcher

	// Timeout bounds each category fetch independently. Zero means the
	// default.
	Timeout time.Duration
	Logger  *logrus.Logger
}

// Fetch runs every data category the routing decision flagged, concurrently,
// and joins with partial-failure tolerance: a category that errors, panics,
// or exceeds its deadline is left nil in the bundle and the rest proceed.
func (o *Orchestrator) Fetch(ctx context.Context, decision models.RoutingDecision, subjects []models.ResolvedAsset) *Bundle {
	bundle := &Bundle{}
	symbols := symbolsOf(subjects)

	var wg sync.WaitGroup
	run := func(name string, task func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					o.log().WithField("category", name).Errorf("fetch panicked: %v", r)
				}
			}()

			tctx, cancel := context.WithTimeout(ctx, o.timeout())
			defer cancel()

			if err := task(tctx); err != nil {
				o.log().WithError(err).WithField("category", name).Warn("fetch failed")
			}
		}()
	}

	if decision.Needs(models.DataPrices) && o.Market != nil && len(symbols) > 0 {
		run("prices", func(ctx context.Context) error {
			rows, err := o.Market.Prices(ctx, symbols)
			if err != nil {
				return err
			}
			data := &PriceData{Meta: metaNow("snapshot-store"), Rows: rows}
			data.Meta = data.Meta.withAge(oldestPrice(rows))
			bundle.Prices = data
			return nil
		})
	}

	if decision.MatchedPreset != nil && o.Market != nil {
		preset := *decision.MatchedPreset
		run("preset", func(ctx context.Context) error {
			rows, err := o.Market.RunPreset(ctx, preset.Query)
			if err != nil {
				return err
			}
			bundle.Preset = &PresetData{Meta: metaNow("snapshot-store"), Preset: preset, Rows: rows}
			return nil
		})
	}

	if decision.Needs(models.DataTechnicals) && o.Market != nil && len(symbols) > 0 {
		run("technicals", func(ctx context.Context) error {
			rows, err := o.Market.Technicals(ctx, symbols)
			if err != nil {
				return err
			}
			bundle.Technicals = &TechnicalData{Meta: metaNow("snapshot-store"), Rows: rows}
			return nil
		})
	}

	if decision.Needs(models.DataSocial) && o.Social != nil && o.Social.Configured() && len(symbols) > 0 {
		run("social", func(ctx context.Context) error {
			metrics, err := o.Social.Metrics(ctx, symbols)
			if err != nil {
				return err
			}
			bundle.Social = &SocialData{Meta: metaNow("social-api"), Metrics: metrics}
			return nil
		})
	}

	if decision.Needs(models.DataDerivatives) && o.Derivatives != nil && len(symbols) > 0 {
		run("derivatives", func(ctx context.Context) error {
			rows, err := o.Derivatives.Funding(ctx, cryptoSymbols(subjects))
			if err != nil {
				return err
			}
			bundle.Derivatives = &DerivativesData{Meta: metaNow("futures-api"), Rows: rows}
			return nil
		})
	}

	if decision.Needs(models.DataSecurity) && o.Security != nil {
		address, chains := securityTarget(subjects)
		run("security", func(ctx context.Context) error {
			if address == "" {
				// Explicitly empty: nothing to scan, which the answer notes.
				bundle.Security = &SecurityData{Meta: metaNow("security-api")}
				return nil
			}
			report, err := o.Security.Scan(ctx, address, chains)
			if err != nil {
				return err
			}
			bundle.Security = &SecurityData{Meta: metaNow("security-api"), Report: report}
			return nil
		})
	}

	if decision.Needs(models.DataNews) && o.News != nil && o.News.Configured() {
		run("news", func(ctx context.Context) error {
			items, err := o.News.Latest(ctx, subjects)
			if err != nil {
				return err
			}
			bundle.News = &NewsData{Meta: metaNow("news-api"), Items: items}
			return nil
		})
	}

	wg.Wait()
	return bundle
}

func (o *Orchestrator) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return constants.ToolFetchTimeout
}

func (o *Orchestrator) log() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func oldestPrice(rows map[string]marketstore.PriceRow) time.Time {
	var oldest time.Time
	for _, r := range rows {
		if oldest.IsZero() || r.UpdatedAt.Before(oldest) {
			oldest = r.UpdatedAt
		}
	}
	return oldest
}

func symbolsOf(subjects []models.ResolvedAsset) []string {
	out := make([]string, 0, len(subjects))
	for _, a := range subjects {
		out = append(out, a.Symbol)
	}
	return out
}

func cryptoSymbols(subjects []models.ResolvedAsset) []string {
	var out []string
	for _, a := range subjects {
		if a.Kind == models.AssetKindStock || a.Kind == models.AssetKindForex {
			continue
		}
		out = append(out, a.Symbol)
	}
	return out
}

// securityTarget picks the address to scan and the candidate chain ids. A
// known chain family narrows the candidates; otherwise the fixed ordered
// list is tried until one chain recognizes the address.
func securityTarget(subjects []models.ResolvedAsset) (string, []string) {
	for _, a := range subjects {
		if a.OnchainAddress == "" {
			continue
		}
		if a.OnchainFamily == models.ChainFamilySolana {
			return a.OnchainAddress, []string{"solana"}
		}
		return a.OnchainAddress, constants.SecurityChainCandidates
	}
	return "", nil
}
