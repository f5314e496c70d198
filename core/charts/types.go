package charts

import (
	"fmt"
	"strconv"
)

type Dataset struct {
	Label           string
	Data            []float64
	BackgroundColor string
	BorderColor     string
}

// Item is one renderable chart. Subtype keeps the raw tag so skipped items
// can be reported with what the caller actually sent.
type Item struct {
	Kind        Kind
	Subtype     string
	Title       string
	Labels      []string
	Datasets    []Dataset
	ScaleYMax   *float64
	Min         []float64
	Max         []float64
	FormatTypes []FormatKind
}

func (it Item) Categories() int {
	if len(it.Datasets) == 0 {
		return len(it.Labels)
	}
	return len(it.Datasets[0].Data)
}

// Values returns the raw series matrix indexed [series][category]; the row
// index is the series identity used by the offset table.
func (it Item) Values() [][]float64 {
	out := make([][]float64, len(it.Datasets))
	for i, ds := range it.Datasets {
		out[i] = append([]float64(nil), ds.Data...)
	}
	return out
}

func (it Item) Validate() error {
	n := it.Categories()
	for i, ds := range it.Datasets {
		if len(ds.Data) != n {
			return fmt.Errorf("%w: dataset %d has %d values, expected %d", ErrMalformedInput, i, len(ds.Data), n)
		}
	}
	if it.Kind == KindRadar {
		if len(it.Min) < n || len(it.Max) < n {
			return fmt.Errorf("%w: radar needs min/max bounds for %d categories", ErrMalformedInput, n)
		}
		if len(it.FormatTypes) < n {
			return fmt.Errorf("%w: radar needs format types for %d categories", ErrMalformedInput, n)
		}
	}
	return nil
}

// categoryLabels pads or trims labels to the category count.
func categoryLabels(labels []string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(labels) {
			out[i] = labels[i]
		} else {
			out[i] = strconv.Itoa(i + 1)
		}
	}
	return out
}

func copyDatasets(in []Dataset) []Dataset {
	out := make([]Dataset, len(in))
	for i, ds := range in {
		out[i] = ds
		out[i].Data = append([]float64(nil), ds.Data...)
	}
	return out
}
