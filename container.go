// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package nitf

import (
	"fmt"
	"image"
	"os"
	"sort"
	"strconv"
	"strings"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/cespare/xxhash/v2"

	"github.com/Terminus-Geospatial/terminus-nitf-go/fhdr"
	"github.com/Terminus-Geospatial/terminus-nitf-go/imagecodec"
	"github.com/Terminus-Geospatial/terminus-nitf-go/imsubhdr"
)

// ImageSegment is one parsed image segment: its subheader plus the raw
// pixel bytes that follow it on disk, not yet rasterized. Err is set, and
// Subheader left nil, when the subheader's own fixed/dynamic fields failed
// to parse — the segment's LISH_N/LI_N byte regions are still consumed from
// the file header's descriptors, so sibling segments remain readable.
type ImageSegment struct {
	Subheader *imsubhdr.ImageSubheader
	Data      []byte
	Err       error
}

// bandCount returns the number of per-band field groups the subheader
// expanded, counted directly off the parsed fields rather than trusting
// NBANDS/XBANDS (only one of which is present in the stream at a time).
func (s *ImageSegment) bandCount() int {
	n := 0
	for _, f := range s.Subheader.Fields {
		if f.Schema.Name == "IREPBAND_N" {
			n++
		}
	}
	return n
}

// Container is C9: one parsed NITF File Header plus its ordered image
// segments, bound to the TRE and image-codec registries that produced them.
type Container struct {
	FileHeader    *fhdr.FileHeader
	ImageSegments []ImageSegment
	Codecs        *imagecodec.Registry

	// data (the memory mapping backing every ParsedField's Raw slice) and f
	// are non-nil only when the container was produced by LoadNITF (a
	// memory-mapped file, closed by Close) rather than LoadBytes (a
	// caller-owned buffer).
	data mmap.MMap
	f    *os.File
}

// Close releases the memory-mapped file backing the container, if any.
// Containers produced by LoadBytes need not be closed. After Close, every
// field whose bytes came from the mapped file is no longer valid to read.
func (c *Container) Close() error {
	if c.data != nil {
		if err := c.data.Unmap(); err != nil {
			return err
		}
	}
	if c.f != nil {
		return c.f.Close()
	}
	return nil
}

// GetImage looks up IC on the segment_index'th Image Subheader, resolves it
// to an ImageCompression, and dispatches to the Codecs entry registered for
// it. An unregistered compression code surfaces ErrNoCodecForCompression.
func (c *Container) GetImage(segmentIndex int) (image.Image, error) {
	if segmentIndex < 0 || segmentIndex >= len(c.ImageSegments) {
		return nil, fmt.Errorf("nitf: image segment index %d out of range (have %d)", segmentIndex, len(c.ImageSegments))
	}
	seg := c.ImageSegments[segmentIndex]
	if seg.Subheader == nil {
		return nil, fmt.Errorf("nitf: image segment %d has no subheader (parse failed: %w)", segmentIndex, seg.Err)
	}

	icField, ok := seg.Subheader.Get("IC")
	if !ok {
		return nil, fmt.Errorf("nitf: image segment %d has no IC field", segmentIndex)
	}
	code := strings.TrimSpace(icField.Value.Text())
	ic, ok := ImageCompressionFromStr(code)
	if !ok {
		return nil, fmt.Errorf("nitf: image segment %d: unrecognized compression code %q: %w", segmentIndex, code, ErrNoCodecForCompression)
	}

	rows, _ := seg.Subheader.Get("NROWS")
	cols, _ := seg.Subheader.Get("NCOLS")
	abpp, _ := seg.Subheader.Get("ABPP")
	imode, _ := seg.Subheader.Get("IMODE")

	var mode byte
	if m := imode.Value.Text(); len(m) > 0 {
		mode = m[0]
	}

	p := imagecodec.Params{
		Rows:         int(rows.Value.Int()),
		Cols:         int(cols.Value.Int()),
		Bands:        seg.bandCount(),
		BitsPerPixel: int(abpp.Value.Int()),
		Mode:         mode,
	}

	return c.Codecs.Decode(ic.String(), seg.Data, p)
}

// AsKVP produces a flat diagnostic mapping: the File Header's fields under
// "file_header.", and each segment's subheader fields under
// "image_segment.<i>.".
func (c *Container) AsKVP() map[string]string {
	out := make(map[string]string)
	for k, v := range c.FileHeader.AsKVP() {
		out["file_header."+k] = v
	}
	for i, seg := range c.ImageSegments {
		if seg.Subheader == nil {
			continue
		}
		prefix := "image_segment." + strconv.Itoa(i) + "."
		for k, v := range seg.Subheader.AsKVP() {
			out[prefix+k] = v
		}
	}
	return out
}

// ValidationErrors aggregates every non-fatal problem found while building
// the container: the File Header's own collected UDHD/XHD TRE errors, an
// image segment whose subheader failed to parse at all, and each
// successfully-parsed subheader's own collected Validate() errors (e.g. a
// malformed UDID/IXSHD TRE stream). Callers can inspect this before trusting
// semantic fields derived from the affected header or segments.
func (c *Container) ValidationErrors() []error {
	var out []error
	for _, e := range c.FileHeader.Errors {
		out = append(out, fmt.Errorf("file header: %w", e))
	}
	for i, seg := range c.ImageSegments {
		if seg.Err != nil {
			out = append(out, fmt.Errorf("image segment %d: %w", i, seg.Err))
			continue
		}
		for _, e := range seg.Subheader.Validate() {
			out = append(out, fmt.Errorf("image segment %d: %w", i, e))
		}
	}
	return out
}

// Digest returns a stable xxhash64 fingerprint over the container's flat
// kvp view: keys sorted, then hashed "key=value\n" per entry, so the same
// parsed content always yields the same digest regardless of map iteration
// order.
func (c *Container) Digest() uint64 {
	kvp := c.AsKVP()
	keys := make([]string, 0, len(kvp))
	for k := range kvp {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := xxhash.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte("="))
		h.Write([]byte(kvp[k]))
		h.Write([]byte("\n"))
	}
	return h.Sum64()
}
