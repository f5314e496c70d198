package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type fontSet struct {
	regular *text.FontSource
	bold    *text.FontSource
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

// loadFonts parses the embedded Go fonts once; sources are read-only afterwards.
func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		regular, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		bold, err := text.NewFontSource(gobold.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		fonts = fontSet{regular: regular, bold: bold}
	})
	return fonts, fontsErr
}

func fontFace(bold bool, size float64) (text.Face, error) {
	set, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if size < 6 {
		size = 6
	}
	if bold {
		return set.bold.Face(size), nil
	}
	return set.regular.Face(size), nil
}

// PreloadFonts parses the label fonts ahead of the first job.
func PreloadFonts() error {
	_, err := loadFonts()
	return err
}
