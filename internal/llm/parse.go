package llm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	labelledLine = regexp.MustCompile(`(?i)^\s*(PROBABILITY|CONFIDENCE)\s*:\s*([0-9.]+%?)\s*$`)
	floatToken   = regexp.MustCompile(`[0-9]*\.?[0-9]+%?`)
)

// ParseCompletion implements the documented recovery chain:
//  1. scan lines from the end for labelled "PROBABILITY: X.XX" / "CONFIDENCE:
//     X.XX" lines;
//  2. if probability is still missing, scan the last five lines for the
//     first float-like token, treating a trailing "%" as divide-by-100;
//  3. clamp whatever was found into valid bounds; a missing confidence
//     defaults to a neutral 0.5 rather than being rescanned, since reusing
//     the last-five-lines float scan would usually just pick up the
//     probability line again;
//  4. if probability could not be recovered at all, fall back to an "echo"
//     estimate: probability = marketPrice, confidence = 0.1.
//
// ParseCompletion never errors: a malformed completion degrades to the echo
// estimate rather than aborting the cycle.
func ParseCompletion(completion string, marketPrice decimal.Decimal) domain.Estimate {
	lines := strings.Split(strings.TrimSpace(completion), "\n")

	prob, probFound := scanLabelled(lines, "PROBABILITY")
	conf, confFound := scanLabelled(lines, "CONFIDENCE")

	if !probFound {
		lastFive := lastNLines(lines, 5)
		if v, ok := scanFirstFloat(lastFive); ok {
			prob, probFound = v, true
		}
	}

	if !probFound {
		return domain.Estimate{
			Probability: marketPrice,
			Confidence:  decimal.NewFromFloat(0.1),
			Reasoning:   "echo fallback: unable to parse completion",
		}
	}

	if !confFound {
		conf = 0.5
	}

	return domain.Estimate{
		Probability: domain.ClampProbability(decimal.NewFromFloat(prob)),
		Confidence:  domain.ClampConfidence(decimal.NewFromFloat(conf)),
		Reasoning:   strings.TrimSpace(completion),
	}
}

// scanLabelled scans lines from the end for a "label: value" line.
func scanLabelled(lines []string, label string) (float64, bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		m := labelledLine.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		if !strings.EqualFold(m[1], label) {
			continue
		}
		if v, ok := parseMaybePercent(m[2]); ok {
			return v, true
		}
	}
	return 0, false
}

// scanFirstFloat scans lines in order for the first float-like token,
// interpreting a trailing "%" as divide-by-100.
func scanFirstFloat(lines []string) (float64, bool) {
	for _, line := range lines {
		tok := floatToken.FindString(line)
		if tok == "" {
			continue
		}
		if v, ok := parseMaybePercent(tok); ok {
			return v, true
		}
	}
	return 0, false
}

func parseMaybePercent(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v / 100, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lastNLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
