package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPError is a non-2xx response from one of the data providers.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("%s http %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s http %d: %s", e.Provider, e.StatusCode, b)
}

// SocialClient fetches per-asset social metrics from the social data
// provider. Treated as optional: the turn degrades, never aborts, when it is
// down.
type SocialClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewSocialClient(baseURL, apiKey string) *SocialClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://lunarcrush.com/api4"
	}
	return &SocialClient{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP: &http.Client{
			Timeout: 6 * time.Second,
		},
	}
}

// Configured reports whether a credential is present.
func (c *SocialClient) Configured() bool {
	return c.APIKey != ""
}

type socialCoinResponse struct {
	Data struct {
		Symbol       string  `json:"symbol"`
		GalaxyScore  float64 `json:"galaxy_score"`
		AltRank      int     `json:"alt_rank"`
		Sentiment    float64 `json:"sentiment"`
		SocialVolume int64   `json:"social_volume_24h"`
	} `json:"data"`
}

// Metrics fetches social metrics per symbol. A symbol the provider does not
// know is skipped; only transport-level failures surface as errors.
func (c *SocialClient) Metrics(ctx context.Context, symbols []string) (map[string]SocialMetrics, error) {
	out := make(map[string]SocialMetrics, len(symbols))
	for _, sym := range symbols {
		m, err := c.coin(ctx, sym)
		if err != nil {
			if he, ok := err.(*HTTPError); ok && he.StatusCode == http.StatusNotFound {
				continue
			}
			return out, err
		}
		out[sym] = *m
	}
	return out, nil
}

func (c *SocialClient) coin(ctx context.Context, symbol string) (*SocialMetrics, error) {
	u := fmt.Sprintf("%s/public/coins/%s/v1", c.BaseURL, strings.ToUpper(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{Provider: "social", StatusCode: res.StatusCode, Body: body}
	}

	var parsed socialCoinResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode social response: %w", err)
	}
	return &SocialMetrics{
		Symbol:       strings.ToUpper(symbol),
		GalaxyScore:  parsed.Data.GalaxyScore,
		AltRank:      parsed.Data.AltRank,
		Sentiment:    parsed.Data.Sentiment,
		SocialVolume: parsed.Data.SocialVolume,
	}, nil
}
