package llm

import (
	"fmt"
	"strings"

	"github.com/oracle-trading/oracle/internal/domain"
)

// BuildPrompt renders a market and its enrichment context into the prompt
// template every provider completion is generated from. The format is
// intentionally line-oriented: ParseCompletion's recovery chain scans lines
// from the end, so asking the model to reply with labelled PROBABILITY/
// CONFIDENCE lines keeps the common case cheap to parse.
func BuildPrompt(market domain.Market, dataCtx domain.DataContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", market.Question)
	if market.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", market.Description)
	}
	if market.ResolutionCriteria != "" {
		fmt.Fprintf(&b, "Resolution criteria: %s\n", market.ResolutionCriteria)
	}
	fmt.Fprintf(&b, "Current market price (YES): %s\n", market.PriceYes.String())
	fmt.Fprintf(&b, "Hours to deadline: %.1f\n", market.HoursToDeadline(dataCtx.Freshness))

	fmt.Fprintf(&b, "\nSupporting data (%s, source=%s):\n%s\n", dataCtx.Category, dataCtx.Source, dataCtx.Summary)

	if dataCtx.CrossRefs.HasAny() {
		b.WriteString("\nCross-platform signals:\n")
		if dataCtx.CrossRefs.MetaculusProb != nil {
			fmt.Fprintf(&b, "- Metaculus community probability: %s", dataCtx.CrossRefs.MetaculusProb.String())
			if dataCtx.CrossRefs.MetaculusForecasters != nil {
				fmt.Fprintf(&b, " (%d forecasters)", *dataCtx.CrossRefs.MetaculusForecasters)
			}
			b.WriteString("\n")
		}
		if dataCtx.CrossRefs.ManifoldProb != nil {
			fmt.Fprintf(&b, "- Manifold market probability: %s\n", dataCtx.CrossRefs.ManifoldProb.String())
		}
		if dataCtx.CrossRefs.ForecastexPrice != nil {
			fmt.Fprintf(&b, "- Forecastex price: %s\n", dataCtx.CrossRefs.ForecastexPrice.String())
		}
	}

	b.WriteString("\nEstimate the true probability this market resolves YES. Reply with exactly two labelled lines:\n")
	b.WriteString("PROBABILITY: <0.01-0.99>\n")
	b.WriteString("CONFIDENCE: <0.10-0.99>\n")
	b.WriteString("Then explain your reasoning in a short paragraph.\n")

	return b.String()
}
