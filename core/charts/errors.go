package charts

import "errors"

var (
	ErrUnsupportedChartType = errors.New("unsupported chart type")
	ErrMalformedInput       = errors.New("malformed input")
)
