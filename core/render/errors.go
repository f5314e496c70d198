package render

import "errors"

var (
	ErrUnsupportedTopLevelType = errors.New("unsupported top-level chart type")
	ErrRenderFailed            = errors.New("render failed")
)
