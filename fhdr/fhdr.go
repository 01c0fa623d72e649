// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package fhdr implements C5, the NITF File Header: a thin binding of
// internal/record's generic engine to the File Header's fixed starting
// schema and its count-driven image/graphic/text/DES/RES segment lists.
package fhdr

import (
	"strconv"
	"strings"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/log"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
	"github.com/Terminus-Geospatial/terminus-nitf-go/tre"
)

// FileHeader is the parsed NITF File Header: every fixed and
// dynamically-expanded field in stream order, plus the TREs extracted from
// its User-Defined and Extended header data sections. Errors collects
// non-fatal problems encountered while extracting UDHD/XHD (a malformed TRE
// stream does not prevent the rest of the header from parsing).
type FileHeader struct {
	Fields []record.ParsedField
	UDHD   []*tre.TRE
	XHD    []*tre.TRE
	Errors []error
}

// Get returns the index-th field named name (0-based among same-named
// fields), mirroring File_Header.get's per-tag occurrence lookup.
func (h *FileHeader) Get(name string, index int) (record.ParsedField, bool) {
	return record.Get(h.Fields, name, index)
}

// AsKVP flattens the header into a qualified-name → stringified-value map,
// nesting UDHD/XHD TRE fields under "udhd.<tag>." / "xhd.<tag>." prefixes.
func (h *FileHeader) AsKVP() map[string]string {
	out := make(map[string]string, len(h.Fields))
	for _, f := range h.Fields {
		out[f.Schema.Name] = f.Value.LogString()
	}
	for _, t := range h.UDHD {
		for k, v := range t.AsKVP() {
			out["udhd."+t.Tag+"."+k] = v
		}
	}
	for _, t := range h.XHD {
		for k, v := range t.AsKVP() {
			out["xhd."+t.Tag+"."+k] = v
		}
	}
	return out
}

// Validate checks the header against the observed on-disk file size: FL
// must equal fileSize, matching File_Header.validate. UDHD/XHD extraction
// errors collected during Parse are exposed separately on h.Errors — they
// are non-fatal and do not gate FL's strict/relaxed mismatch handling.
func (h *FileHeader) Validate(fileSize int64) []error {
	var errs_ []error

	fl, ok := h.Get("FL", 0)
	if !ok || fl.Value.Absent {
		errs_ = append(errs_, errs.Wrap(errs.ErrFileLengthMismatch, "no FL value found"))
		return errs_
	}
	if fl.Value.Int() != fileSize {
		errs_ = append(errs_, errs.Wrap(errs.ErrFileLengthMismatch, "FL value (%d) does not match observed file size (%d)", fl.Value.Int(), fileSize))
	}
	return errs_
}

// LogString renders a human-readable block for diagnostics.
func (h *FileHeader) LogString() string {
	var sb strings.Builder
	sb.WriteString("NITF File Header:\n")
	for _, f := range h.Fields {
		sb.WriteString("  " + f.Schema.Name + " = " + f.Value.LogString() + "\n")
	}
	sb.WriteString("  UDHD TREs (" + strconv.Itoa(len(h.UDHD)) + "):\n")
	for _, t := range h.UDHD {
		sb.WriteString(t.LogString(2))
	}
	sb.WriteString("  XHD TREs (" + strconv.Itoa(len(h.XHD)) + "):\n")
	for _, t := range h.XHD {
		sb.WriteString(t.LogString(2))
	}
	for _, e := range h.Errors {
		sb.WriteString("  ERROR: " + e.Error() + "\n")
	}
	return sb.String()
}

// Parse drives the engine over cur starting at its current position,
// applying the File Header's side-effect table (NUMI/NUMS/NUMT/NUMDES/
// NUM_RES segment-length expansion; UDHDL/XHDL-conditional TRE regions),
// then extracts UDHD/XHD's TREs via registry. A truncated UDHD/XHD TRE
// stream does not fail Parse: it is logged via helper (which may be nil)
// and collected onto the returned header's Errors, so the rest of the File
// Header still parses.
func Parse(cur *record.Cursor, registry *tre.Registry, helper *log.Helper) (*FileHeader, error) {
	eng := record.NewEngine(cur, schema())
	if err := eng.Run(); err != nil {
		return nil, err
	}

	h := &FileHeader{Fields: eng.Fields()}

	if f, ok := record.Get(h.Fields, "UDHD", 0); ok {
		udhd, err := tre.ExtractAll(f.Value.Bytes(), registry, helper)
		if err != nil {
			helper.Warnf("file header: UDHD TRE extraction failed: %v", err)
			h.Errors = append(h.Errors, err)
		}
		h.UDHD = udhd
	}
	if f, ok := record.Get(h.Fields, "XHD", 0); ok {
		xhd, err := tre.ExtractAll(f.Value.Bytes(), registry, helper)
		if err != nil {
			helper.Warnf("file header: XHD TRE extraction failed: %v", err)
			h.Errors = append(h.Errors, err)
		}
		h.XHD = xhd
	}

	return h, nil
}

// segmentPairSchema returns the [LxSH_N, LN_N] pair pushed once per segment
// when a NUM* count field is positive — the repeatable-segment-descriptor
// shape shared by image, graphic, text, DES, and RES segments.
func segmentPairSchema(lshName string, lshWidth int, lName string, lWidth int, kind field.Kind) []record.FieldSchema {
	return []record.FieldSchema{
		{Name: lshName, Width: lshWidth, Kind: kind},
		{Name: lName, Width: lWidth, Kind: kind},
	}
}

func countEffect(lshName string, lshWidth int, lName string, lWidth int, kind field.Kind) record.Effect {
	return func(e *record.Engine, v field.Value) error {
		n := v.Int()
		if n <= 0 {
			return nil
		}
		var batch []record.FieldSchema
		for i := int64(0); i < n; i++ {
			batch = append(batch, segmentPairSchema(lshName, lshWidth, lName, lWidth, kind)...)
		}
		e.PushFront(batch...)
		return nil
	}
}

// schema returns the File Header's fixed starting sequence, per the NITF
// 2.1 standard's file-header layout.
func schema() []record.FieldSchema {
	return []record.FieldSchema{
		{Name: "FHDR", Width: 4, Kind: field.BCSA},
		{Name: "FVER", Width: 5, Kind: field.BCSA},
		{Name: "CLEVEL", Width: 2, Kind: field.BCSNP},
		{Name: "STYPE", Width: 4, Kind: field.BCSA},
		{Name: "OSTAID", Width: 10, Kind: field.BCSA},
		{Name: "FDT", Width: 14, Kind: field.BCSN},
		{Name: "FTITLE", Width: 80, Kind: field.ECSA},
		{Name: "FSCLAS", Width: 1, Kind: field.ECSA},
		{Name: "FSCLSY", Width: 2, Kind: field.ECSA},
		{Name: "FSCODE", Width: 11, Kind: field.ECSA},
		{Name: "FSCTLH", Width: 2, Kind: field.ECSA},
		{Name: "FSREL", Width: 20, Kind: field.ECSA},
		{Name: "FSDCTP", Width: 2, Kind: field.ECSA},
		{Name: "FSDCDT", Width: 8, Kind: field.ECSA},
		{Name: "FSDCXM", Width: 4, Kind: field.ECSA},
		{Name: "FSDG", Width: 1, Kind: field.ECSA},
		{Name: "FSDGDT", Width: 8, Kind: field.ECSA},
		{Name: "FSCLTX", Width: 43, Kind: field.ECSA},
		{Name: "FSCATP", Width: 1, Kind: field.ECSA},
		{Name: "FSCAUT", Width: 40, Kind: field.ECSA},
		{Name: "FSCRSN", Width: 1, Kind: field.ECSA},
		{Name: "FSSRDT", Width: 8, Kind: field.ECSA},
		{Name: "FSCTLN", Width: 15, Kind: field.ECSA},
		{Name: "FSCOP", Width: 5, Kind: field.BCSN},
		{Name: "FSCPYS", Width: 5, Kind: field.BCSN},
		{Name: "ENCRYPT", Width: 1, Kind: field.BCSN},
		{Name: "FPKGC", Width: 3, Kind: field.UnsignedBinary},
		{Name: "ONAME", Width: 24, Kind: field.ECSA},
		{Name: "OPHONE", Width: 18, Kind: field.ECSA},
		{Name: "FL", Width: 12, Kind: field.BCSNP},
		{Name: "HL", Width: 6, Kind: field.BCSN},
		{Name: "NUMI", Width: 3, Kind: field.BCSN, Effect: countEffect("LISH_N", 6, "LI_N", 10, field.BCSN)},
		{Name: "NUMS", Width: 3, Kind: field.BCSN, Effect: countEffect("LSSH_N", 4, "LS_N", 6, field.BCSN)},
		{Name: "NUMX", Width: 3, Kind: field.BCSN},
		{Name: "NUMT", Width: 3, Kind: field.BCSN, Effect: countEffect("LTSH_N", 4, "LT_N", 5, field.BCSNP)},
		{Name: "NUMDES", Width: 3, Kind: field.BCSNP, Effect: countEffect("LDSH_N", 4, "LD_N", 9, field.BCSNP)},
		{Name: "NUM_RES", Width: 3, Kind: field.BCSNP, Effect: countEffect("LRESH_N", 4, "LRE_N", 7, field.BCSNP)},
		{Name: "UDHDL", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			if v.Int() <= 0 {
				return nil
			}
			e.PushFront(
				record.FieldSchema{Name: "UDHOFL", Width: 3, Kind: field.BCSNP},
				record.FieldSchema{Name: "UDHD", Width: 0, Kind: field.TRE},
			)
			e.PushSize(int(v.Int()) - 3)
			return nil
		}},
		{Name: "XHDL", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			if v.Int() <= 0 {
				return nil
			}
			e.PushFront(
				record.FieldSchema{Name: "XHDLOFL", Width: 3, Kind: field.BCSNP},
				record.FieldSchema{Name: "XHD", Width: 0, Kind: field.TRE},
			)
			e.PushSize(int(v.Int()) - 3)
			return nil
		}},
	}
}
