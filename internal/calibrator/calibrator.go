// Package calibrator implements a binned calibration curve, Brier score,
// and qualitative over/under-confidence diagnosis over an accumulated
// stream of (predicted, resolved) points.
package calibrator

import (
	"github.com/oracle-trading/oracle/internal/domain"
	"gonum.org/v1/gonum/stat"
)

const (
	numBins            = 10
	minTotalPoints     = 20
	minPopulatedBuckets = 3
	minBucketPoints    = 3
	significantDeviation = 0.05
)

// Point is one observation: an estimated probability and its eventual
// resolution, for one market in one category.
type Point struct {
	MarketID    string
	Category    domain.Category
	Probability float64
	ResolvedYes bool
}

// Calibrator accumulates Points in insertion order and emits a Report on
// demand.
type Calibrator struct {
	points []Point
}

// New builds an empty Calibrator.
func New() *Calibrator {
	return &Calibrator{}
}

// Record appends a resolved point to the calibrator's running history.
func (c *Calibrator) Record(p Point) {
	c.points = append(c.points, p)
}

// Report computes the overall and per-category Brier score, the binned
// calibration curve, and the diagnosis, over every point recorded so far.
func (c *Calibrator) Report() domain.CalibrationReport {
	overall := c.brier(c.points)
	categoryBrier := make(map[domain.Category]float64)
	byCategory := make(map[domain.Category][]Point)
	for _, p := range c.points {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	for cat, pts := range byCategory {
		categoryBrier[cat] = c.brier(pts)
	}

	buckets := c.buckets()
	diagnosis := diagnose(buckets, len(c.points))

	return domain.CalibrationReport{
		OverallBrier:  overall,
		CategoryBrier: categoryBrier,
		Buckets:       buckets,
		Diagnosis:     diagnosis,
		TotalPoints:   len(c.points),
	}
}

func (c *Calibrator) brier(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	errs := make([]float64, len(points))
	for i, p := range points {
		outcome := 0.0
		if p.ResolvedYes {
			outcome = 1.0
		}
		diff := p.Probability - outcome
		errs[i] = diff * diff
	}
	return stat.Mean(errs, nil)
}

// buckets splits [0,1] into numBins equal-width bins. Bin membership is
// [bin_start, bin_end), except the final bin which is inclusive on the
// right.
func (c *Calibrator) buckets() []domain.CalibrationBucket {
	width := 1.0 / float64(numBins)
	buckets := make([]domain.CalibrationBucket, numBins)
	sums := make([]float64, numBins)
	yesCounts := make([]int, numBins)
	counts := make([]int, numBins)

	for i := range buckets {
		buckets[i].BinStart = float64(i) * width
		buckets[i].BinEnd = float64(i+1) * width
	}

	for _, p := range c.points {
		idx := int(p.Probability / width)
		if idx >= numBins {
			idx = numBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		sums[idx] += p.Probability
		counts[idx]++
		if p.ResolvedYes {
			yesCounts[idx]++
		}
	}

	for i := range buckets {
		buckets[i].Count = counts[i]
		if counts[i] == 0 {
			buckets[i].MeanPredicted = (buckets[i].BinStart + buckets[i].BinEnd) / 2
			buckets[i].ActualRate = 0
			buckets[i].Deviation = 0
			continue
		}
		buckets[i].MeanPredicted = sums[i] / float64(counts[i])
		buckets[i].ActualRate = float64(yesCounts[i]) / float64(counts[i])
		diff := buckets[i].MeanPredicted - buckets[i].ActualRate
		if diff < 0 {
			diff = -diff
		}
		buckets[i].Deviation = diff
	}

	return buckets
}

// diagnose tallies overconfident vs underconfident signals across
// significantly-deviating populated buckets.
func diagnose(buckets []domain.CalibrationBucket, totalPoints int) domain.CalibrationDiagnosis {
	populated := 0
	for _, b := range buckets {
		if b.Count >= minBucketPoints {
			populated++
		}
	}
	if totalPoints < minTotalPoints || populated < minPopulatedBuckets {
		return domain.DiagnosisInsufficientData
	}

	over, under := 0, 0
	for _, b := range buckets {
		if b.Count < minBucketPoints || b.Deviation < significantDeviation {
			continue
		}
		midpoint := (b.BinStart + b.BinEnd) / 2
		switch {
		case midpoint < 0.3:
			if b.ActualRate > b.MeanPredicted {
				over++
			} else {
				under++
			}
		case midpoint > 0.7:
			if b.ActualRate < b.MeanPredicted {
				over++
			} else {
				under++
			}
		}
	}

	switch {
	case over > under+1:
		return domain.DiagnosisOverConfident
	case under > over+1:
		return domain.DiagnosisUnderConfident
	default:
		return domain.DiagnosisWellCalibrated
	}
}
