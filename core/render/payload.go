package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"chartd/core/charts"
)

// wireItem is the JSON shape callers post for one chart.
type wireItem struct {
	OptionType  string    `json:"optionType"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Data        wireData  `json:"data"`
	ScaleYMax   *float64  `json:"scaleYMax"`
	Min         []float64 `json:"min"`
	Max         []float64 `json:"max"`
	FormatTypes []string  `json:"formatTypes"`
}

type wireData struct {
	Labels   []wireLabel   `json:"labels"`
	Datasets []wireDataset `json:"datasets"`
}

type wireDataset struct {
	Label           string      `json:"label"`
	Data            []wireValue `json:"data"`
	BackgroundColor wireColor   `json:"backgroundColor"`
	BorderColor     wireColor   `json:"borderColor"`
}

// wireLabel accepts strings and numbers.
type wireLabel string

func (l *wireLabel) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*l = wireLabel(s)
		return nil
	}
	if string(raw) == "null" {
		*l = ""
		return nil
	}
	if len(raw) > 0 && raw[0] == '[' {
		var parts []string
		if err := json.Unmarshal(raw, &parts); err != nil {
			return err
		}
		*l = wireLabel(strings.Join(parts, " "))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return err
	}
	*l = wireLabel(n.String())
	return nil
}

// wireValue is a number; null marks a missing point and decodes to NaN.
type wireValue float64

func (v *wireValue) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if string(raw) == "null" {
		*v = wireValue(math.NaN())
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("value %q is not a number", s)
		}
		*v = wireValue(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	*v = wireValue(f)
	return nil
}

// wireColor takes a single color or a per-point list; the first entry wins.
type wireColor string

func (c *wireColor) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		*c = ""
	case raw[0] == '[':
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			*c = wireColor(list[0])
		}
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*c = wireColor(s)
	}
	return nil
}

func (w wireItem) subtype() string {
	if w.OptionType != "" {
		return w.OptionType
	}
	return w.Type
}

func (w wireItem) toItem() charts.Item {
	subtype := w.subtype()
	kind, _ := charts.ParseKind(subtype)
	item := charts.Item{
		Kind:      kind,
		Subtype:   subtype,
		Title:     w.Title,
		ScaleYMax: w.ScaleYMax,
		Min:       append([]float64(nil), w.Min...),
		Max:       append([]float64(nil), w.Max...),
	}
	for _, l := range w.Data.Labels {
		item.Labels = append(item.Labels, string(l))
	}
	for _, ft := range w.FormatTypes {
		item.FormatTypes = append(item.FormatTypes, charts.FormatKind(ft))
	}
	for _, ds := range w.Data.Datasets {
		data := make([]float64, len(ds.Data))
		for i, v := range ds.Data {
			data[i] = float64(v)
		}
		item.Datasets = append(item.Datasets, charts.Dataset{
			Label:           ds.Label,
			Data:            data,
			BackgroundColor: string(ds.BackgroundColor),
			BorderColor:     string(ds.BorderColor),
		})
	}
	return item
}

// decodeItems accepts a single object or an array of objects.
func decodeItems(body []byte) ([]wireItem, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", charts.ErrMalformedInput)
	}
	switch body[0] {
	case '[':
		var items []wireItem
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", charts.ErrMalformedInput, err)
		}
		return items, nil
	case '{':
		var item wireItem
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, fmt.Errorf("%w: %v", charts.ErrMalformedInput, err)
		}
		return []wireItem{item}, nil
	default:
		return nil, fmt.Errorf("%w: body must be a JSON object or array", charts.ErrMalformedInput)
	}
}
