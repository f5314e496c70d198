package charts

import (
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-9

func sameTable(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if math.Abs(a[i][j]-b[i][j]) > epsilon {
				return false
			}
		}
	}
	return true
}

func TestGenerateOffsetsSingleSeriesIsIdentity(t *testing.T) {
	for _, values := range [][][]float64{
		nil,
		{{}},
		{{0.1, 0.1, 0.1}},
		{{0.9, 0, 0.5, 0.5}},
	} {
		got := GenerateOffsets(values)
		if !sameTable(got, values) {
			t.Fatalf("expected identity for %v, got %v", values, got)
		}
	}
}

func TestGenerateOffsetsKeepsSeparatedValues(t *testing.T) {
	values := [][]float64{{10, 50, 90}, {15, 48, 92}}
	got := GenerateOffsets(values)
	if !sameTable(got, values) {
		t.Fatalf("expected raw values kept, got %v", got)
	}
}

func TestGenerateOffsetsPushesEqualValues(t *testing.T) {
	values := [][]float64{{0.10}, {0.10}}
	got := GenerateOffsets(values)
	if math.Abs(got[0][0]-0.10) > epsilon {
		t.Fatalf("lowest series moved: %v", got[0][0])
	}
	if math.Abs(got[1][0]-0.30) > epsilon {
		t.Fatalf("expected second series at 0.30, got %v", got[1][0])
	}
}

func TestGenerateOffsetsCascadesForward(t *testing.T) {
	values := [][]float64{{0}, {0.01}, {0.02}}
	got := GenerateOffsets(values)
	want := [][]float64{{0}, {0.2}, {0.4}}
	if !sameTable(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGenerateOffsetsCrowdedTolerance(t *testing.T) {
	values := [][]float64{{0.5, 0.5, 0.5, 0.5}, {0.5, 0.5, 0.5, 0.5}}
	got := GenerateOffsets(values)
	want := []float64{0.65, 0.7, 0.65, 0.7}
	for c, w := range want {
		if math.Abs(got[1][c]-w) > epsilon {
			t.Fatalf("category %d: expected %v, got %v", c, w, got[1][c])
		}
	}

	odd := GenerateOffsets([][]float64{{0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}})
	for c := range odd[1] {
		if math.Abs(odd[1][c]-0.7) > epsilon {
			t.Fatalf("odd category %d: expected 0.7, got %v", c, odd[1][c])
		}
	}
}

func TestGenerateOffsetsTiesFollowPreviousOrder(t *testing.T) {
	// category 0 orders series 1 before series 0; the tie at category 1
	// keeps that order, so series 0 is the one pushed.
	values := [][]float64{{0.9, 0.4}, {0.1, 0.4}}
	got := GenerateOffsets(values)
	if math.Abs(got[1][1]-0.4) > epsilon {
		t.Fatalf("expected series 1 to keep 0.4, got %v", got[1][1])
	}
	if math.Abs(got[0][1]-0.55) > epsilon {
		t.Fatalf("expected series 0 pushed to 0.55, got %v", got[0][1])
	}
}

func TestGenerateOffsetsAdjacentGapProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		series := 2 + rng.Intn(4)
		categories := 1 + rng.Intn(7)
		values := make([][]float64, series)
		for s := range values {
			values[s] = make([]float64, categories)
			for c := range values[s] {
				values[s][c] = math.Round(rng.Float64()*10) / 10
			}
		}
		got := GenerateOffsets(values)
		for c := 0; c < categories; c++ {
			tolerance := toleranceAt(c, categories)
			for s := range values {
				if got[s][c] < values[s][c]-epsilon {
					t.Fatalf("round %d: series %d category %d moved down", round, s, c)
				}
			}
			// every moved entry sits exactly one tolerance above some other entry
			for s := range values {
				if math.Abs(got[s][c]-values[s][c]) <= epsilon {
					continue
				}
				found := false
				for o := range values {
					if o != s && math.Abs(got[s][c]-got[o][c]-tolerance) <= epsilon {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("round %d: series %d category %d adjusted to %v without a predecessor", round, s, c, got[s][c])
				}
			}
		}
	}
}

func TestGenerateOffsetsIsDeterministic(t *testing.T) {
	values := [][]float64{{0.3, 0.3, 0.1}, {0.3, 0.35, 0.1}, {0.31, 0.2, 0.1}}
	first := GenerateOffsets(values)
	for i := 0; i < 10; i++ {
		if !sameTable(GenerateOffsets(values), first) {
			t.Fatalf("output changed between runs")
		}
	}
}

func TestGenerateOffsetsIdempotentOnSpacedInput(t *testing.T) {
	values := [][]float64{{0.1, 0.5, 0.2}, {0.1, 0.5, 0.2}, {0.1, 0.52, 0.9}}
	once := GenerateOffsets(values)
	twice := GenerateOffsets(once)
	if !sameTable(once, twice) {
		t.Fatalf("expected spaced input unchanged, got %v then %v", once, twice)
	}
}

func TestGenerateOffsetsDoesNotMutateInput(t *testing.T) {
	values := [][]float64{{0.4, 0.1}, {0.1, 0.1}}
	snapshot := [][]float64{{0.4, 0.1}, {0.1, 0.1}}
	out := GenerateOffsets(values)
	if !sameTable(values, snapshot) {
		t.Fatalf("input mutated: %v", values)
	}
	out[0][0] = 99
	if values[0][0] != 0.4 {
		t.Fatalf("output aliases input")
	}
}

func TestOffsetTableDelta(t *testing.T) {
	values := [][]float64{{0.10}, {0.10}}
	table := GenerateOffsets(values)
	if d := table.Delta(values, 1, 0); math.Abs(d-0.2) > epsilon {
		t.Fatalf("expected delta 0.2, got %v", d)
	}
	if d := table.Delta(values, 5, 0); d != 0 {
		t.Fatalf("expected 0 for missing series, got %v", d)
	}
}
