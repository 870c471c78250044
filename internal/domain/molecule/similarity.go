package molecule

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// SimilarityMetric names a score derived from the size of a common
// substructure relative to the two molecules it was found in.
type SimilarityMetric string

const (
	MetricTanimoto  SimilarityMetric = "tanimoto"
	MetricDice      SimilarityMetric = "dice"
	MetricEuclidean SimilarityMetric = "euclidean"
)

// ScorePrecision is the number of decimals similarity scores are rounded to.
const ScorePrecision = 4

// IsValid checks if the similarity metric is known.
func (m SimilarityMetric) IsValid() bool {
	switch m {
	case MetricTanimoto, MetricDice, MetricEuclidean:
		return true
	default:
		return false
	}
}

func (m SimilarityMetric) String() string { return string(m) }

// HigherIsBetter reports whether larger scores mean more similar.
func (m SimilarityMetric) HigherIsBetter() bool { return m != MetricEuclidean }

// ParseSimilarityMetric parses a string into a SimilarityMetric.
func ParseSimilarityMetric(s string) (SimilarityMetric, error) {
	m := SimilarityMetric(s)
	if m.IsValid() {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeValidation, "unsupported similarity metric: "+s)
}

// Round rounds x half-up to ScorePrecision decimals.
func Round(x float64) float64 {
	return scalar.Round(x, ScorePrecision)
}

// CommonSubgraphScore evaluates metric for a common substructure of mapped
// atoms between molecules of queryAtoms and targetAtoms atoms:
//
//	tanimoto  = m / (q + t - m)
//	dice      = 2m / (q + t)
//	euclidean = sqrt(q + t - 2m)
func CommonSubgraphScore(metric SimilarityMetric, queryAtoms, targetAtoms, mapped int) (float64, error) {
	if queryAtoms < 0 || targetAtoms < 0 || mapped < 0 || mapped > queryAtoms || mapped > targetAtoms {
		return 0, errors.Newf(errors.ErrCodeValidation,
			"inconsistent atom counts q=%d t=%d mapped=%d", queryAtoms, targetAtoms, mapped)
	}
	q, t, m := float64(queryAtoms), float64(targetAtoms), float64(mapped)
	switch metric {
	case MetricTanimoto:
		den := q + t - m
		if den == 0 {
			return 0, nil
		}
		return Round(m / den), nil
	case MetricDice:
		if q+t == 0 {
			return 0, nil
		}
		return Round(2 * m / (q + t)), nil
	case MetricEuclidean:
		return Round(math.Sqrt(q + t - 2*m)), nil
	}
	return 0, errors.New(errors.ErrCodeValidation, "unsupported similarity metric: "+string(metric))
}

//Personal.AI order the ending
