package charts

import (
	"math"
	"strconv"
)

type FormatKind string

const (
	FormatToFixed2           FormatKind = "toFixed2"
	FormatRound              FormatKind = "round"
	FormatPercentage         FormatKind = "percentage"
	FormatPercentageToFixed2 FormatKind = "percentageToFixed2"
)

const formatErrorLabel = "err"

// Denormalize maps a [0,1] radar value back onto [min,max].
func Denormalize(value, lo, hi float64) float64 {
	return value*(hi-lo) + lo
}

func FormatValue(kind FormatKind, value float64) string {
	switch kind {
	case FormatToFixed2:
		return strconv.FormatFloat(value, 'f', 2, 64)
	case FormatRound:
		return formatInteger(roundHalfUp(value))
	case FormatPercentage:
		return formatInteger(math.Floor(value*100)) + "%"
	case FormatPercentageToFixed2:
		return strconv.FormatFloat(value*100, 'f', 2, 64) + "%"
	default:
		return formatErrorLabel
	}
}

func FormatWellPercent(value float64) string {
	return formatInteger(roundHalfUp(value*100)) + "%"
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func formatInteger(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
