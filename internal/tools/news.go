package tools

import (
	"context"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

const maxNewsItems = 5

// NewsClient fetches recent headlines for the turn's assets: company news
// for stocks, the crypto wire filtered by symbol for everything else.
type NewsClient struct {
	api        *finnhub.DefaultApiService
	configured bool
}

func NewNewsClient(apiKey string) *NewsClient {
	apiKey = strings.TrimSpace(apiKey)
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &NewsClient{
		api:        finnhub.NewAPIClient(cfg).DefaultApi,
		configured: apiKey != "",
	}
}

func (c *NewsClient) Configured() bool {
	return c.configured
}

// Latest returns up to maxNewsItems headlines relevant to the given assets.
func (c *NewsClient) Latest(ctx context.Context, subjects []models.ResolvedAsset) ([]NewsItem, error) {
	var out []NewsItem

	for _, asset := range subjects {
		if asset.Kind != models.AssetKindStock {
			continue
		}
		items, err := c.companyNews(ctx, asset.Symbol)
		if err != nil {
			return out, err
		}
		out = append(out, items...)
		if len(out) >= maxNewsItems {
			return out[:maxNewsItems], nil
		}
	}

	items, err := c.cryptoNews(ctx, subjects)
	if err != nil {
		return out, err
	}
	out = append(out, items...)
	if len(out) > maxNewsItems {
		out = out[:maxNewsItems]
	}
	return out, nil
}

func (c *NewsClient) companyNews(ctx context.Context, symbol string) ([]NewsItem, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -7)

	news, _, err := c.api.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, err
	}

	var out []NewsItem
	for _, n := range news {
		out = append(out, NewsItem{
			Headline:    n.GetHeadline(),
			Summary:     n.GetSummary(),
			Source:      n.GetSource(),
			URL:         n.GetUrl(),
			PublishedAt: time.Unix(n.GetDatetime(), 0).UTC(),
		})
		if len(out) >= maxNewsItems {
			break
		}
	}
	return out, nil
}

func (c *NewsClient) cryptoNews(ctx context.Context, subjects []models.ResolvedAsset) ([]NewsItem, error) {
	news, _, err := c.api.MarketNews(ctx).Category("crypto").Execute()
	if err != nil {
		return nil, err
	}

	mentions := func(text string) bool {
		upper := strings.ToUpper(text)
		for _, a := range subjects {
			if a.Kind == models.AssetKindStock {
				continue
			}
			if strings.Contains(upper, a.Symbol) {
				return true
			}
		}
		return false
	}

	var out []NewsItem
	for _, n := range news {
		if len(subjects) > 0 && !mentions(n.GetHeadline()+" "+n.GetRelated()) {
			continue
		}
		out = append(out, NewsItem{
			Headline:    n.GetHeadline(),
			Summary:     n.GetSummary(),
			Source:      n.GetSource(),
			URL:         n.GetUrl(),
			PublishedAt: time.Unix(n.GetDatetime(), 0).UTC(),
		})
		if len(out) >= maxNewsItems {
			break
		}
	}
	return out, nil
}
