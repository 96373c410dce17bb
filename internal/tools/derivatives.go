package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DerivativesClient reads funding and open-interest data from the public
// futures endpoints.
type DerivativesClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewDerivativesClient(baseURL string) *DerivativesClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://fapi.binance.com"
	}
	return &DerivativesClient{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 6 * time.Second,
		},
	}
}

type premiumIndexResponse struct {
	Symbol          string `json:"symbol"`
	MarkPrice       string `json:"markPrice"`
	LastFundingRate string `json:"lastFundingRate"`
	NextFundingTime int64  `json:"nextFundingTime"`
}

type openInterestResponse struct {
	OpenInterest string `json:"openInterest"`
}

// Funding fetches the perp funding/open-interest row for each symbol paired
// against USDT. Symbols without a perp market are skipped.
func (c *DerivativesClient) Funding(ctx context.Context, symbols []string) ([]FundingRow, error) {
	var out []FundingRow
	for _, sym := range symbols {
		pair := strings.ToUpper(sym) + "USDT"

		var premium premiumIndexResponse
		if err := c.getJSON(ctx, "/fapi/v1/premiumIndex?symbol="+pair, &premium); err != nil {
			if he, ok := err.(*HTTPError); ok && he.StatusCode == http.StatusBadRequest {
				continue // no such perp market
			}
			return out, err
		}

		row := FundingRow{
			Symbol:          strings.ToUpper(sym),
			MarkPrice:       parseFloat(premium.MarkPrice),
			FundingRate:     parseFloat(premium.LastFundingRate),
			NextFundingTime: premium.NextFundingTime,
		}

		var oi openInterestResponse
		if err := c.getJSON(ctx, "/fapi/v1/openInterest?symbol="+pair, &oi); err == nil {
			row.OpenInterest = parseFloat(oi.OpenInterest)
		}

		out = append(out, row)
	}
	return out, nil
}

func (c *DerivativesClient) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &HTTPError{Provider: "derivatives", StatusCode: res.StatusCode, Body: body}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode derivatives response: %w", err)
	}
	return nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
