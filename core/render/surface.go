package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/gogpu/gg"
)

const DataURIPrefix = "data:image/png;base64,"

// Surface owns one pixel buffer. Release shrinks it to 1x1 before closing so
// the large buffer is dropped even if a caller keeps the pointer around.
type Surface struct {
	dc       *gg.Context
	released bool
}

func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrRenderFailed, width, height)
	}
	if !fitsPixels(width, height, 1, MaxSurfacePixels) {
		return nil, fmt.Errorf("%w: surface %dx%d exceeds %d pixels", ErrRenderFailed, width, height, MaxSurfacePixels)
	}
	return &Surface{dc: gg.NewContext(width, height)}, nil
}

func (s *Surface) Width() int {
	if s.released {
		return 0
	}
	return s.dc.Width()
}

func (s *Surface) Height() int {
	if s.released {
		return 0
	}
	return s.dc.Height()
}

// Context exposes the drawing context to painters.
func (s *Surface) Context() *gg.Context {
	return s.dc
}

// Snapshot returns a copy of the current pixels; it never aliases the surface.
func (s *Surface) Snapshot() *image.RGBA {
	_ = s.dc.FlushGPU()
	img := s.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		out := &image.RGBA{
			Pix:    append([]uint8(nil), rgba.Pix...),
			Stride: rgba.Stride,
			Rect:   rgba.Rect,
		}
		return out
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// FillBehind paints bg underneath everything already drawn (destination-over).
// Pixels are premultiplied, so out = src + bg*(1-srcA).
func (s *Surface) FillBehind(bg gg.RGBA) error {
	if s.released {
		return fmt.Errorf("%w: surface released", ErrRenderFailed)
	}
	img := s.Snapshot()
	br, bgc, bb, ba := bg.R*bg.A*255, bg.G*bg.A*255, bg.B*bg.A*255, bg.A*255
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		rest := 1 - float64(pix[i+3])/255
		if rest <= 0 {
			continue
		}
		pix[i] = clampByte(float64(pix[i]) + br*rest)
		pix[i+1] = clampByte(float64(pix[i+1]) + bgc*rest)
		pix[i+2] = clampByte(float64(pix[i+2]) + bb*rest)
		pix[i+3] = clampByte(float64(pix[i+3]) + ba*rest)
	}
	pm := gg.NewPixmap(img.Rect.Dx(), img.Rect.Dy())
	copy(pm.Data(), pix)
	next := gg.NewContext(pm.Width(), pm.Height(), gg.WithPixmap(pm))
	_ = s.dc.Close()
	s.dc = next
	return nil
}

// Composite draws src over s with its top-left corner at (x, y).
func (s *Surface) Composite(src *Surface, x, y int) error {
	if s.released || src == nil || src.released {
		return fmt.Errorf("%w: composite on released surface", ErrRenderFailed)
	}
	buf := gg.ImageBufFromImage(src.Snapshot())
	s.dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:         float64(x),
		Y:         float64(y),
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
	return nil
}

func (s *Surface) EncodePNG(w io.Writer) error {
	if s.released {
		return fmt.Errorf("%w: encode released surface", ErrRenderFailed)
	}
	_ = s.dc.FlushGPU()
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("%w: encode png: %v", ErrRenderFailed, err)
	}
	return nil
}

func (s *Surface) DataURI() (string, error) {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return "", err
	}
	return EncodeDataURI(buf.Bytes()), nil
}

func EncodeDataURI(raw []byte) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(raw)
}

// Release is idempotent.
func (s *Surface) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	_ = s.dc.Resize(1, 1)
	_ = s.dc.Close()
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
