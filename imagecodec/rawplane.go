// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package imagecodec

import (
	"image"
	"image/color"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
)

// rawPlane implements image.Image directly over band-interleaved or
// band-sequential 8-bit pixel bytes, without copying, so the identity
// codec's one allocation is the destination image draw.Draw produces.
type rawPlane struct {
	buf    []byte
	rows   int
	cols   int
	bands  int
	stride func(row, col, band int) int
}

// newRawPlane validates buffer's length against p's geometry and returns a
// plane addressing it per p.Mode.
func newRawPlane(buffer []byte, p Params) (*rawPlane, error) {
	want := p.Rows * p.Cols * p.Bands
	if len(buffer) < want {
		return nil, errs.Wrap(errs.ErrMalformedField, "pixel buffer too small: want %d bytes (%dx%dx%d), have %d", want, p.Rows, p.Cols, p.Bands, len(buffer))
	}

	plane := &rawPlane{buf: buffer, rows: p.Rows, cols: p.Cols, bands: p.Bands}

	switch p.Mode {
	case 'P', 0:
		// Pixel interleaved: band is the fastest-varying index.
		plane.stride = func(row, col, band int) int {
			return (row*p.Cols+col)*p.Bands + band
		}
	case 'B':
		// Band sequential: each band is a full contiguous plane.
		plane.stride = func(row, col, band int) int {
			return band*p.Rows*p.Cols + row*p.Cols + col
		}
	default:
		return nil, errs.Wrap(errs.ErrNoCodecForCompression, "identity codec does not support IMODE %q", string(rune(p.Mode)))
	}

	return plane, nil
}

func (p *rawPlane) ColorModel() color.Model {
	if p.bands >= 3 {
		return color.NRGBAModel
	}
	return color.GrayModel
}

func (p *rawPlane) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.cols, p.rows)
}

func (p *rawPlane) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= p.cols || y >= p.rows {
		return color.Gray{}
	}
	if p.bands >= 3 {
		c := color.NRGBA{A: 0xff}
		c.R = p.buf[p.stride(y, x, 0)]
		c.G = p.buf[p.stride(y, x, 1)]
		c.B = p.buf[p.stride(y, x, 2)]
		return c
	}
	return color.Gray{Y: p.buf[p.stride(y, x, 0)]}
}
