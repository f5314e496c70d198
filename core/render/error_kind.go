package render

import (
	"context"
	"errors"

	"chartd/core/charts"
)

type ErrorKind string

const (
	ErrorKindOK                 ErrorKind = "ok"
	ErrorKindUnsupportedType    ErrorKind = "unsupported_type"
	ErrorKindUnsupportedTopType ErrorKind = "unsupported_top_level_type"
	ErrorKindMalformedInput     ErrorKind = "malformed_input"
	ErrorKindRenderFailed       ErrorKind = "render_failed"
	ErrorKindTimeout            ErrorKind = "timeout"
	ErrorKindCanceled           ErrorKind = "canceled"
	ErrorKindUnknown            ErrorKind = "unknown"
)

func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ErrorKindOK
	}
	if errors.Is(err, ErrUnsupportedTopLevelType) {
		return ErrorKindUnsupportedTopType
	}
	if errors.Is(err, charts.ErrUnsupportedChartType) {
		return ErrorKindUnsupportedType
	}
	if errors.Is(err, charts.ErrMalformedInput) {
		return ErrorKindMalformedInput
	}
	if errors.Is(err, ErrRenderFailed) {
		return ErrorKindRenderFailed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrorKindCanceled
	}
	return ErrorKindUnknown
}
