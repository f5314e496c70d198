package charts

import (
	"cmp"
	"slices"
)

const (
	DefaultTolerance = 0.2
	// CrowdedTolerance applies to the first and the middle category of an
	// even-sized radar, where labels of opposite spokes sit on one vertical.
	CrowdedTolerance = 0.15
)

// OffsetTable holds adjusted label positions indexed [series][category].
type OffsetTable [][]float64

func (t OffsetTable) At(series, category int) float64 {
	if series < 0 || series >= len(t) {
		return 0
	}
	row := t[series]
	if category < 0 || category >= len(row) {
		return 0
	}
	return row[category]
}

// Delta is the adjusted position minus the raw value.
func (t OffsetTable) Delta(values [][]float64, series, category int) float64 {
	if series < 0 || series >= len(values) || category < 0 || category >= len(values[series]) {
		return 0
	}
	return t.At(series, category) - values[series][category]
}

// GenerateOffsets separates close values per category. At each category the
// series are stable-sorted by raw value and every series closer than the
// tolerance to its predecessor's adjusted position is pushed to exactly one
// tolerance above it. Pushes only cascade forward and the order is not
// revisited after adjustment.
//
// The sort permutation is carried from one category to the next, so ties are
// broken by the order the previous category produced.
func GenerateOffsets(values [][]float64) OffsetTable {
	offsets := make(OffsetTable, len(values))
	for i, row := range values {
		offsets[i] = append([]float64(nil), row...)
	}
	if len(values) <= 1 {
		return offsets
	}
	total := len(values[0])
	n := total
	for _, row := range values[1:] {
		n = min(n, len(row))
	}
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	for c := 0; c < n; c++ {
		tolerance := toleranceAt(c, total)
		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(values[a][c], values[b][c])
		})
		for j := 1; j < len(order); j++ {
			cur, prev := order[j], order[j-1]
			gap := values[cur][c] - offsets[prev][c]
			if gap < tolerance {
				offsets[cur][c] = offsets[prev][c] + tolerance
			}
		}
	}
	return offsets
}

func toleranceAt(category, categories int) float64 {
	if categories%2 == 0 && (category == 0 || category == categories/2) {
		return CrowdedTolerance
	}
	return DefaultTolerance
}
