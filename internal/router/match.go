package router

import (
	"strings"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/utils"
)

const matchThreshold = 0.45

// matchScore computes the Router's cross-reference similarity score:
// 0.6·Jaccard + 0.4·containment over lowercased alphanumeric word sets
// (tokens of length <= 2 dropped).
func matchScore(a, b map[string]struct{}) float64 {
	return 0.6*utils.Jaccard(a, b) + 0.4*utils.Containment(a, b)
}

// eligibleCategory reports whether a and b are allowed to cross-reference:
// same category, or either side is Other.
func eligibleCategory(a, b domain.Category) bool {
	return a == b || a == domain.CategoryOther || b == domain.CategoryOther
}

// attachCrossReferences finds, for each executable-venue market, the best
// textual match among informational-venue markets and attaches its
// probability/forecaster snapshot in place. Ties are broken by the higher
// score; on equal scores the first-fetched informational market wins,
// which falls out naturally here since informational markets are scanned
// in their original fetch order and replacement requires a strictly
// higher score. Returns which informational indices were matched, so the
// caller can exclude them from the merged list: an informational market
// only survives the merge when it has no executable match.
func attachCrossReferences(executable, informational []domain.Market) []bool {
	infoSets := make([]map[string]struct{}, len(informational))
	for i, m := range informational {
		infoSets[i] = utils.WordSet(m.Question)
	}

	matched := make([]bool, len(informational))

	for i := range executable {
		market := &executable[i]
		wordSet := utils.WordSet(market.Question)

		bestScore := 0.0
		bestIdx := -1
		for j, infoMarket := range informational {
			if !eligibleCategory(market.Category, infoMarket.Category) {
				continue
			}
			score := matchScore(wordSet, infoSets[j])
			if score < matchThreshold {
				continue
			}
			if score > bestScore {
				bestScore = score
				bestIdx = j
			}
		}

		if bestIdx < 0 {
			continue
		}
		attachSnapshot(market, informational[bestIdx])
		matched[bestIdx] = true
	}

	return matched
}

// attachSnapshot copies the matched informational market's probability
// snapshot onto market's CrossRefs, keyed by the informational venue's
// platform name.
func attachSnapshot(market *domain.Market, matched domain.Market) {
	probCopy := matched.PriceYes
	switch strings.ToLower(matched.Platform) {
	case "metaculus":
		market.CrossRefs.MetaculusProb = &probCopy
		if matched.Forecasters != nil {
			market.CrossRefs.MetaculusForecasters = matched.Forecasters
		}
	case "manifold":
		market.CrossRefs.ManifoldProb = &probCopy
	case "forecastex":
		market.CrossRefs.ForecastexPrice = &probCopy
	}
}
