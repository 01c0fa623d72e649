// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package imagecodec adapts an Image Segment's opaque pixel bytes into a
// standard image.Image, keyed by the segment's compression code. A Registry
// is a generalized rendering of the source's Driver_Factory: one map from
// compression code to Codec rather than two separate decode/encode dicts.
package imagecodec

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
)

// Params carries the Image Subheader geometry a Codec needs to interpret
// otherwise-opaque pixel bytes: row/column counts, band count, bits per
// pixel per band, and the band interleave mode (NITF's IMODE: B band
// sequential, P pixel interleaved, R row interleaved, S block interleaved).
type Params struct {
	Rows, Cols, Bands, BitsPerPixel int
	Mode                            byte
}

// Codec decodes (and, where supported, encodes) one compression code's
// pixel representation.
type Codec interface {
	Decode(buffer []byte, p Params) (image.Image, error)
	Encode(img image.Image, p Params) ([]byte, error)
}

// Registry dispatches by ImageCompression code. Unlike the source's
// Driver_Factory (separate decode_drivers/encode_drivers maps keyed the
// same way), one Codec here serves both directions for a given code.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register binds code to codec.
func (r *Registry) Register(code string, codec Codec) {
	r.codecs[code] = codec
}

// Decode dispatches to the codec registered for code, or
// ErrNoCodecForCompression if none is registered.
func (r *Registry) Decode(code string, buffer []byte, p Params) (image.Image, error) {
	c, ok := r.codecs[code]
	if !ok {
		return nil, errs.Wrap(errs.ErrNoCodecForCompression, "no codec registered for compression code %q", code)
	}
	return c.Decode(buffer, p)
}

// Encode dispatches to the codec registered for code, or
// ErrNoCodecForCompression if none is registered.
func (r *Registry) Encode(code string, img image.Image, p Params) ([]byte, error) {
	c, ok := r.codecs[code]
	if !ok {
		return nil, errs.Wrap(errs.ErrNoCodecForCompression, "no codec registered for compression code %q", code)
	}
	return c.Encode(img, p)
}

// Default returns a Registry with only the identity codec registered for
// "NC" and "NM" (uncompressed), matching the source's observation that
// every other compression code (C1…M8) has no safe identity rendering and
// should surface NoCodecForCompression rather than guess.
func Default() *Registry {
	r := NewRegistry()
	id := &IdentityCodec{}
	r.Register("NC", id)
	r.Register("NM", id)
	return r
}

// IdentityCodec interprets uncompressed pixel bytes directly, rasterizing
// them through golang.org/x/image/draw into a stdlib image.NRGBA rather than
// hand-rolling per-mode pixel math beyond the raw plane itself.
type IdentityCodec struct{}

// Decode rasterizes buffer per p's geometry. Only 8-bit-per-band data in
// pixel-interleaved ("P") or band-sequential ("B") layout is supported; any
// other combination returns ErrNoCodecForCompression, since the identity
// codec has no safe guess for it.
func (IdentityCodec) Decode(buffer []byte, p Params) (image.Image, error) {
	if p.BitsPerPixel != 8 {
		return nil, errs.Wrap(errs.ErrNoCodecForCompression, "identity codec supports only 8-bit bands, got %d", p.BitsPerPixel)
	}

	plane, err := newRawPlane(buffer, p)
	if err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(plane.Bounds())
	draw.Draw(dst, dst.Bounds(), plane, image.Point{}, draw.Src)
	return dst, nil
}

// Encode is unsupported: re-encoding to NITF's uncompressed layout is out of
// scope (NITF writing is a Non-goal).
func (IdentityCodec) Encode(image.Image, Params) ([]byte, error) {
	return nil, errs.Wrap(errs.ErrNoCodecForCompression, "identity codec does not support encode")
}
