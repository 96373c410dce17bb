package session

import (
	"regexp"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/assets"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

var (
	evmAddressRe    = regexp.MustCompile(`\b0x[0-9a-fA-F]{40}\b`)
	base58TokenRe   = regexp.MustCompile(`\b[1-9A-HJ-NP-Za-km-z]{32,44}\b`)
	addresserWordRe = regexp.MustCompile(`(?i)\b(address|contract|ca|mint|token)\b`)
)

// ExtractHistoryAssets mines ticker symbols from the visible conversation
// history using the same extraction logic as the resolver, scanning
// newest-message-first and capping at the per-turn asset limit.
func ExtractHistoryAssets(history []models.ChatMessage) []string {
	var out []string
	seen := make(map[string]bool)

	scanned := 0
	for i := len(history) - 1; i >= 0 && scanned < constants.MaxHistoryScanned; i-- {
		msg := history[i]
		if msg.Role != "user" {
			continue
		}
		scanned++
		for _, cand := range assets.ExtractCandidates(msg.Content) {
			if seen[cand.Token] {
				continue
			}
			seen[cand.Token] = true
			out = append(out, cand.Token)
			if len(out) >= constants.MaxAssetsPerTurn {
				return out
			}
		}
	}
	return out
}

// ExtractAddresses finds on-chain addresses in free text. EVM addresses have
// a distinctive 0x prefix and match on format alone. Base58 strings collide
// with ordinary alphanumeric noise, so a Solana candidate is only accepted
// when an address-ish keyword appears in the same text and the candidate
// parses as a real ed25519 public key.
func ExtractAddresses(text string) []models.ChainAddress {
	var out []models.ChainAddress
	seen := make(map[string]bool)

	for _, m := range evmAddressRe.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, models.ChainAddress{Address: m, Family: models.ChainFamilyEVM})
	}

	if !addresserWordRe.MatchString(text) {
		return out
	}
	for _, m := range base58TokenRe.FindAllString(text, -1) {
		// Cheap length pre-filter before the full pubkey parse.
		raw, err := base58.Decode(m)
		if err != nil || len(raw) != 32 {
			continue
		}
		pk, err := solana.PublicKeyFromBase58(m)
		if err != nil {
			continue
		}
		canonical := pk.String()
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, models.ChainAddress{Address: canonical, Family: models.ChainFamilySolana})
	}
	return out
}
