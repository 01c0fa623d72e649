// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package nitf parses National Imagery Transmission Format (NITF 2.1/BF01)
// files: the File Header, each Image Subheader and its raw pixel bytes, and
// every Tagged Record Extension reachable from either. LoadNITF and
// LoadBytes are the two entry points; everything else hangs off the
// *Container they return.
package nitf

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/Terminus-Geospatial/terminus-nitf-go/fhdr"
	"github.com/Terminus-Geospatial/terminus-nitf-go/imagecodec"
	"github.com/Terminus-Geospatial/terminus-nitf-go/imsubhdr"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/log"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
	"github.com/Terminus-Geospatial/terminus-nitf-go/tre"
)

// MinNITFSize is the smallest plausible NITF file: shorter than this and
// the file cannot even hold a minimal File Header.
const MinNITFSize = 10

// Options configures a parse. The zero value is the default: strict length
// checking on, the default TRE registry, and the default (NC/NM-only) image
// codec registry.
type Options struct {
	// DisableStrictLengthCheck, when true, downgrades an FL/file-size
	// mismatch from a returned error to a logged warning.
	DisableStrictLengthCheck bool

	// TREs overrides the default TRE dispatch table.
	TREs *tre.Registry

	// Codecs overrides the default image codec dispatch table; a
	// compression code with no registered entry yields
	// ErrNoCodecForCompression from Container.GetImage.
	Codecs *imagecodec.Registry

	// Logger receives non-fatal diagnostics (a relaxed length-check
	// mismatch, skipped TRE decode detail). Defaults to log.Default().
	Logger log.Logger
}

func (o *Options) treRegistry() *tre.Registry {
	if o != nil && o.TREs != nil {
		return o.TREs
	}
	return tre.DefaultRegistry()
}

func (o *Options) codecRegistry() *imagecodec.Registry {
	if o != nil && o.Codecs != nil {
		return o.Codecs
	}
	return imagecodec.Default()
}

func (o *Options) helper() *log.Helper {
	if o != nil && o.Logger != nil {
		return log.NewHelper(o.Logger)
	}
	return log.Default()
}

// LoadNITF memory-maps the file at path and parses it. The returned
// Container's fields reference the mapping directly; call Close when done.
func LoadNITF(path string, opts *Options) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrFileNotFound, "%s", path)
		}
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	c, err := parse(data, opts)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	c.data = data
	c.f = f
	return c, nil
}

// LoadBytes parses an in-memory NITF buffer. The returned Container's
// fields reference data directly; the caller owns data's lifetime.
func LoadBytes(data []byte, opts *Options) (*Container, error) {
	return parse(data, opts)
}

func parse(data []byte, opts *Options) (*Container, error) {
	if len(data) < MinNITFSize {
		return nil, errs.Wrap(errs.ErrFileTooSmall, "file is %d bytes, minimum is %d", len(data), MinNITFSize)
	}

	treRegistry := opts.treRegistry()
	helper := opts.helper()

	cur := record.NewCursor(data)

	fh, err := fhdr.Parse(cur, treRegistry, helper)
	if err != nil {
		return nil, err
	}

	strict := opts == nil || !opts.DisableStrictLengthCheck
	if verrs := fh.Validate(int64(len(data))); len(verrs) > 0 {
		if strict {
			return nil, verrs[0]
		}
		for _, e := range verrs {
			helper.Warnf("file header validation: %v", e)
		}
	}

	numi, ok := fh.Get("NUMI", 0)
	if !ok {
		return nil, fmt.Errorf("nitf: file header has no NUMI field")
	}

	segments := make([]ImageSegment, 0, numi.Value.Int())
	for i := 0; i < int(numi.Value.Int()); i++ {
		lish, ok := fh.Get("LISH_N", i)
		if !ok {
			return nil, fmt.Errorf("nitf: file header has no LISH_N entry for image segment %d", i)
		}
		li, ok := fh.Get("LI_N", i)
		if !ok {
			return nil, fmt.Errorf("nitf: file header has no LI_N entry for image segment %d", i)
		}

		// LISH_N bounds this subheader's own byte region: reading it up
		// front keeps the main cursor in sync with the file header's
		// descriptors regardless of whether the subheader parses cleanly,
		// so one malformed Image Subheader does not strand every segment
		// after it.
		subBytes, err := cur.Read(int(lish.Value.Int()), "image_subheader")
		if err != nil {
			return nil, err
		}

		seg := ImageSegment{}
		sub, err := imsubhdr.Parse(record.NewCursor(subBytes), treRegistry, helper)
		if err != nil {
			helper.Warnf("image segment %d: subheader parse failed: %v", i, err)
			seg.Err = err
		} else {
			seg.Subheader = sub
		}

		pixels, err := cur.Read(int(li.Value.Int()), "image_data")
		if err != nil {
			return nil, err
		}
		seg.Data = pixels

		segments = append(segments, seg)
	}

	return &Container{
		FileHeader:    fh,
		ImageSegments: segments,
		Codecs:        opts.codecRegistry(),
	}, nil
}
