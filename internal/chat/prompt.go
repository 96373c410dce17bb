package chat

import (
	"fmt"
	"strings"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/tools"
)

const baseInstructions = `You are the market assistant on a financial news site.
Answer the user's question directly and concisely using the market data below.
Cite numbers from the data rather than inventing them. When a data section
notes its age, treat old numbers with caution and say when data may be stale.
If a section says no data was found, say that plainly instead of guessing.
Never give financial advice; describe what the data shows.`

// BuildSystemPrompt synthesizes the instruction prompt from the routing
// decision, the resolved subjects, the fetched data bundle, and the session
// memory. Absent categories are silently omitted; fetched-but-empty
// categories are noted explicitly so the model flags the gap instead of
// improvising.
func BuildSystemPrompt(decision models.RoutingDecision, subjects []models.ResolvedAsset, bundle *tools.Bundle, sess *models.SessionContext) string {
	var b strings.Builder
	b.WriteString(baseInstructions)
	b.WriteString("\n")

	if len(subjects) > 0 {
		b.WriteString("\n## Subjects\n")
		for i, a := range subjects {
			role := ""
			if i == 0 {
				role = " (primary)"
			}
			fmt.Fprintf(&b, "- %s [%s]%s", a.Symbol, a.Kind, role)
			if a.Caveat != "" {
				fmt.Fprintf(&b, " (note: %s)", a.Caveat)
			}
			b.WriteString("\n")
		}
	}

	if sess != nil && sess.RollingSummary != "" {
		b.WriteString("\n## Conversation so far\n")
		b.WriteString(sess.RollingSummary)
		b.WriteString("\n")
	}

	if bundle != nil {
		writePrices(&b, bundle.Prices)
		writePreset(&b, bundle.Preset)
		writeSocial(&b, bundle.Social)
		writeDerivatives(&b, bundle.Derivatives)
		writeSecurity(&b, bundle.Security)
		writeNews(&b, bundle.News)
		writeTechnicals(&b, bundle.Technicals)
	}

	if decision.Intent == models.IntentContentGeneration {
		b.WriteString("\nThe user wants drafted content. Produce the requested text, grounded in the data above.\n")
	}

	return b.String()
}

func writeHeader(b *strings.Builder, title string, meta tools.Meta) {
	fmt.Fprintf(b, "\n## %s (source: %s, fetched %s", title, meta.Source, meta.AsOf.Format("15:04 MST"))
	if meta.AgeSeconds > 60 {
		fmt.Fprintf(b, ", data age %dm", meta.AgeSeconds/60)
	}
	b.WriteString(")\n")
}

func writePrices(b *strings.Builder, d *tools.PriceData) {
	if d == nil {
		return
	}
	writeHeader(b, "Prices", d.Meta)
	if len(d.Rows) == 0 {
		b.WriteString("No price data was found for the requested assets.\n")
		return
	}
	for _, r := range d.Rows {
		fmt.Fprintf(b, "- %s: $%.6g (%+.2f%% 24h), vol $%.4g, mcap $%.4g\n",
			r.Symbol, r.PriceUSD, r.Change24h, r.Volume24h, r.MarketCap)
	}
}

func writePreset(b *strings.Builder, d *tools.PresetData) {
	if d == nil {
		return
	}
	writeHeader(b, d.Preset.Name, d.Meta)
	if len(d.Rows) == 0 {
		b.WriteString("The query returned no rows.\n")
		return
	}
	for i, r := range d.Rows {
		fmt.Fprintf(b, "%d. %s: $%.6g (%+.2f%% 24h), vol $%.4g\n",
			i+1, r.Symbol, r.PriceUSD, r.Change24h, r.Volume24h)
	}
	b.WriteString("Present this list as the answer; do not re-rank or filter it.\n")
}

func writeSocial(b *strings.Builder, d *tools.SocialData) {
	if d == nil {
		return
	}
	writeHeader(b, "Social metrics", d.Meta)
	if len(d.Metrics) == 0 {
		b.WriteString("No social data was found for the requested assets.\n")
		return
	}
	for _, m := range d.Metrics {
		fmt.Fprintf(b, "- %s: galaxy score %.1f, alt rank %d, sentiment %.2f, social volume %d\n",
			m.Symbol, m.GalaxyScore, m.AltRank, m.Sentiment, m.SocialVolume)
	}
}

func writeDerivatives(b *strings.Builder, d *tools.DerivativesData) {
	if d == nil {
		return
	}
	writeHeader(b, "Derivatives", d.Meta)
	if len(d.Rows) == 0 {
		b.WriteString("No perp market data was found for the requested assets.\n")
		return
	}
	for _, r := range d.Rows {
		fmt.Fprintf(b, "- %s perp: mark $%.6g, funding %.4f%%, open interest %.4g\n",
			r.Symbol, r.MarkPrice, r.FundingRate*100, r.OpenInterest)
	}
}

func writeSecurity(b *strings.Builder, d *tools.SecurityData) {
	if d == nil {
		return
	}
	writeHeader(b, "Token security", d.Meta)
	if d.Report == nil {
		b.WriteString("No contract address was available to scan, or no chain recognized it.\n")
		return
	}
	r := d.Report
	fmt.Fprintf(b, "- %s on chain %s: honeypot=%t, open source=%t, buy tax %.1f%%, sell tax %.1f%%, holders %d, mintable=%t\n",
		r.Address, r.ChainID, r.IsHoneypot, r.IsOpenSource, r.BuyTaxPercent, r.SellTaxPercent, r.HolderCount, r.IsMintable)
	if r.CanTakeOwnback {
		b.WriteString("- WARNING: ownership can be taken back.\n")
	}
}

func writeNews(b *strings.Builder, d *tools.NewsData) {
	if d == nil {
		return
	}
	writeHeader(b, "Recent news", d.Meta)
	if len(d.Items) == 0 {
		b.WriteString("No recent headlines were found for the requested assets.\n")
		return
	}
	for _, n := range d.Items {
		fmt.Fprintf(b, "- [%s] %s (%s)\n", n.Source, n.Headline, n.PublishedAt.Format("Jan 2"))
	}
}

func writeTechnicals(b *strings.Builder, d *tools.TechnicalData) {
	if d == nil {
		return
	}
	writeHeader(b, "Technicals", d.Meta)
	if len(d.Rows) == 0 {
		b.WriteString("No indicator data was found for the requested assets.\n")
		return
	}
	for _, r := range d.Rows {
		fmt.Fprintf(b, "- %s: RSI %.1f, MACD %.4g, SMA50 $%.6g, SMA200 $%.6g, trend %s\n",
			r.Symbol, r.RSI, r.MACD, r.SMA50, r.SMA200, r.Trend)
	}
}
