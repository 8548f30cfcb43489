package fastbloom

import "github.com/axiomhq/hyperloglog"

// CardinalityEstimator counts approximate distinct elements so a
// filter can be sized from a first pass over a stream of unknown
// cardinality. It wraps a 16-bit precision HyperLogLog sketch, which
// keeps the estimate within a fraction of a percent while using a few
// dozen kilobytes.
//
// It is not safe for concurrent use.
type CardinalityEstimator struct {
	sketch *hyperloglog.Sketch
}

// NewCardinalityEstimator creates an empty estimator.
func NewCardinalityEstimator() *CardinalityEstimator {
	return &CardinalityEstimator{sketch: hyperloglog.New16()}
}

// Insert records data as seen.
func (e *CardinalityEstimator) Insert(data []byte) {
	e.sketch.Insert(data)
}

// InsertString records a string as seen.
func (e *CardinalityEstimator) InsertString(s string) {
	e.sketch.Insert([]byte(s))
}

// Estimate returns the approximate number of distinct elements
// inserted so far.
func (e *CardinalityEstimator) Estimate() uint64 {
	return e.sketch.Estimate()
}

// Merge folds another estimator into e, so e estimates the union of
// both streams.
func (e *CardinalityEstimator) Merge(other *CardinalityEstimator) error {
	return e.sketch.Merge(other.sketch)
}

// Builder returns a FilterBuilder sized for the observed cardinality
// and the desired false positive rate.
func (e *CardinalityEstimator) Builder(fpRate float64) *FilterBuilder {
	return NewFilterBuilder(e.sketch.Estimate(), fpRate)
}
