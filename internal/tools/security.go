package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SecurityClient queries the on-chain token security scanner.
type SecurityClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewSecurityClient(baseURL string) *SecurityClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.gopluslabs.io/api/v1"
	}
	return &SecurityClient{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 6 * time.Second,
		},
	}
}

type securityResponse struct {
	Code   int                       `json:"code"`
	Result map[string]securityResult `json:"result"`
}

type securityResult struct {
	IsOpenSource     string `json:"is_open_source"`
	IsHoneypot       string `json:"is_honeypot"`
	BuyTax           string `json:"buy_tax"`
	SellTax          string `json:"sell_tax"`
	HolderCount      string `json:"holder_count"`
	OwnerAddress     string `json:"owner_address"`
	CanTakeBackOwner string `json:"can_take_back_ownership"`
	IsMintable       string `json:"is_mintable"`
	TradingCooldown  string `json:"trading_cooldown"`
}

// Scan checks one token address against an ordered list of candidate chain
// ids, stopping at the first chain that knows the address. Used when the
// chain family cannot be pinned down from context.
func (c *SecurityClient) Scan(ctx context.Context, address string, chains []string) (*SecurityReport, error) {
	var lastErr error
	for _, chain := range chains {
		report, err := c.scanChain(ctx, address, chain)
		if err != nil {
			lastErr = err
			continue
		}
		if report != nil {
			return report, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

func (c *SecurityClient) scanChain(ctx context.Context, address, chainID string) (*SecurityReport, error) {
	u := fmt.Sprintf("%s/token_security/%s?contract_addresses=%s",
		c.BaseURL, chainID, url.QueryEscape(strings.ToLower(address)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{Provider: "security", StatusCode: res.StatusCode, Body: body}
	}

	var parsed securityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode security response: %w", err)
	}

	result, ok := parsed.Result[strings.ToLower(address)]
	if !ok {
		// Chain does not know this address; try the next candidate.
		return nil, nil
	}

	return &SecurityReport{
		Address:         address,
		ChainID:         chainID,
		IsOpenSource:    result.IsOpenSource == "1",
		IsHoneypot:      result.IsHoneypot == "1",
		BuyTaxPercent:   parsePercent(result.BuyTax),
		SellTaxPercent:  parsePercent(result.SellTax),
		HolderCount:     parseInt64(result.HolderCount),
		OwnerAddress:    result.OwnerAddress,
		CanTakeOwnback:  result.CanTakeBackOwner == "1",
		IsMintable:      result.IsMintable == "1",
		TradingCooldown: result.TradingCooldown == "1",
	}, nil
}

func parsePercent(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f * 100
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
