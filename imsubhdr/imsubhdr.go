// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package imsubhdr implements C6, the NITF Image Subheader: a thin binding
// of internal/record's generic engine to the subheader's fixed starting
// schema, its comment/band/LUT count-driven expansion, and its
// UDID/IXSHD TRE regions.
package imsubhdr

import (
	"strconv"
	"strings"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/log"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
	"github.com/Terminus-Geospatial/terminus-nitf-go/tre"
)

// ImageSubheader is one parsed NITF Image Subheader: every fixed and
// dynamically-expanded field in stream order, plus the TREs extracted from
// its User-Defined and Extended subheader data sections. Errors collects
// non-fatal problems encountered while extracting UDID/IXSHD (a malformed
// TRE stream does not prevent the rest of the subheader from parsing).
type ImageSubheader struct {
	Fields []record.ParsedField
	UDID   []*tre.TRE
	IXSHD  []*tre.TRE
	Errors []error
}

// Get returns the first field named name.
func (s *ImageSubheader) Get(name string) (record.ParsedField, bool) {
	return record.Get(s.Fields, name, 0)
}

// AsKVP flattens the subheader into a qualified-name → stringified-value
// map, nesting UDID/IXSHD TRE fields under "udid.<tag>." / "ixshd.<tag>."
// prefixes.
func (s *ImageSubheader) AsKVP() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Schema.Name] = f.Value.LogString()
	}
	for _, t := range s.UDID {
		for k, v := range t.AsKVP() {
			out["udid."+t.Tag+"."+k] = v
		}
	}
	for _, t := range s.IXSHD {
		for k, v := range t.AsKVP() {
			out["ixshd."+t.Tag+"."+k] = v
		}
	}
	return out
}

// Validate returns every non-fatal error collected while parsing this
// subheader (currently: UDID/IXSHD TRE extraction failures).
func (s *ImageSubheader) Validate() []error { return s.Errors }

// LogString renders a human-readable block for diagnostics.
func (s *ImageSubheader) LogString() string {
	var sb strings.Builder
	sb.WriteString("NITF Image Subheader:\n")
	for _, f := range s.Fields {
		sb.WriteString("  " + f.Schema.Name + " = " + f.Value.LogString() + "\n")
	}
	sb.WriteString("  UDID TREs (" + strconv.Itoa(len(s.UDID)) + "):\n")
	for _, t := range s.UDID {
		sb.WriteString(t.LogString(2))
	}
	sb.WriteString("  IXSHD TREs (" + strconv.Itoa(len(s.IXSHD)) + "):\n")
	for _, t := range s.IXSHD {
		sb.WriteString(t.LogString(2))
	}
	for _, e := range s.Errors {
		sb.WriteString("  ERROR: " + e.Error() + "\n")
	}
	return sb.String()
}

// Parse drives the engine over cur starting at its current position,
// applying the Image Subheader's side-effect table, then extracts
// UDID/IXSHD's TREs via registry. A truncated UDID/IXSHD TRE stream does not
// fail Parse: it is logged via helper (which may be nil) and collected onto
// the returned subheader's Errors (surfaced via Validate), so the rest of
// the Image Subheader still parses.
func Parse(cur *record.Cursor, registry *tre.Registry, helper *log.Helper) (*ImageSubheader, error) {
	eng := record.NewEngine(cur, schema())
	if err := eng.Run(); err != nil {
		return nil, err
	}

	s := &ImageSubheader{Fields: eng.Fields()}

	if f, ok := record.Get(s.Fields, "UDID", 0); ok {
		udid, err := tre.ExtractAll(f.Value.Bytes(), registry, helper)
		if err != nil {
			helper.Warnf("image subheader: UDID TRE extraction failed: %v", err)
			s.Errors = append(s.Errors, err)
		}
		s.UDID = udid
	}
	if f, ok := record.Get(s.Fields, "IXSHD", 0); ok {
		ixshd, err := tre.ExtractAll(f.Value.Bytes(), registry, helper)
		if err != nil {
			helper.Warnf("image subheader: IXSHD TRE extraction failed: %v", err)
			s.Errors = append(s.Errors, err)
		}
		s.IXSHD = ixshd
	}

	return s, nil
}

// bandSchema returns one band's field sequence: representation, subcategory,
// filter condition, filter code, and an NLUTS_n-gated LUT block.
func bandSchema() []record.FieldSchema {
	var nluts int64

	nlutsSchema := record.FieldSchema{Name: "NLUTS_N", Width: 1, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		nluts = v.Int()
		if nluts <= 0 {
			return nil
		}
		e.PushFront(record.FieldSchema{Name: "NELUT_N", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			total := int(nluts * v.Int())
			e.PushFront(record.FieldSchema{Name: "LUTD_N_M", Width: 0, Kind: field.UnsignedBinary})
			e.PushSize(total)
			return nil
		}})
		return nil
	}}

	return []record.FieldSchema{
		{Name: "IREPBAND_N", Width: 2, Kind: field.BCSA},
		{Name: "ISUBCAT_N", Width: 6, Kind: field.BCSA},
		{Name: "IFC_N", Width: 1, Kind: field.BCSA},
		{Name: "IMFLT_N", Width: 3, Kind: field.BCSA},
		nlutsSchema,
	}
}

// schema returns the Image Subheader's fixed starting sequence, per the
// NITF 2.1 standard's image-subheader layout.
func schema() []record.FieldSchema {
	nbands := record.FieldSchema{Name: "NBANDS", Width: 1, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		if v.Int() == 0 {
			e.PushFront(record.FieldSchema{Name: "XBANDS", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
				pushBands(e, v.Int())
				return nil
			}})
			return nil
		}
		pushBands(e, v.Int())
		return nil
	}}

	nicom := record.FieldSchema{Name: "NICOM", Width: 1, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		n := v.Int()
		if n <= 0 {
			return nil
		}
		var batch []record.FieldSchema
		for i := int64(0); i < n; i++ {
			batch = append(batch, record.FieldSchema{Name: "ICOM_N", Width: 80, Kind: field.ECSA})
		}
		e.PushFront(batch...)
		return nil
	}}

	ic := record.FieldSchema{Name: "IC", Width: 2, Kind: field.BCSA, Effect: func(e *record.Engine, v field.Value) error {
		code := strings.TrimSpace(v.Text())
		if code == "NC" || code == "NM" {
			return nil
		}
		e.PushFront(record.FieldSchema{Name: "COMRAT", Width: 4, Kind: field.BCSA})
		return nil
	}}

	return []record.FieldSchema{
		{Name: "IM", Width: 2, Kind: field.BCSA},
		{Name: "IID1", Width: 10, Kind: field.BCSA},
		{Name: "IDATIM", Width: 14, Kind: field.BCSN},
		{Name: "TGTID", Width: 17, Kind: field.BCSA},
		{Name: "IID2", Width: 80, Kind: field.ECSA},
		{Name: "ISCLAS", Width: 1, Kind: field.ECSA},
		{Name: "ISCLSY", Width: 2, Kind: field.ECSA},
		{Name: "ISCODE", Width: 11, Kind: field.ECSA},
		{Name: "ISCTLH", Width: 2, Kind: field.ECSA},
		{Name: "ISREL", Width: 20, Kind: field.ECSA},
		{Name: "ISDCTP", Width: 2, Kind: field.ECSA},
		{Name: "ISDCDT", Width: 8, Kind: field.ECSA},
		{Name: "ISDCXM", Width: 4, Kind: field.ECSA},
		{Name: "ISDG", Width: 1, Kind: field.ECSA},
		{Name: "ISDGDT", Width: 8, Kind: field.ECSA},
		{Name: "ISCLTX", Width: 43, Kind: field.ECSA},
		{Name: "ISCATP", Width: 1, Kind: field.ECSA},
		{Name: "ISCAUT", Width: 40, Kind: field.ECSA},
		{Name: "ISCRSN", Width: 1, Kind: field.ECSA},
		{Name: "ISSRDT", Width: 8, Kind: field.ECSA},
		{Name: "ISCTLN", Width: 15, Kind: field.ECSA},
		{Name: "ENCRYP", Width: 1, Kind: field.BCSNP},
		{Name: "ISORCE", Width: 42, Kind: field.ECSA},
		{Name: "NROWS", Width: 8, Kind: field.BCSNP},
		{Name: "NCOLS", Width: 8, Kind: field.BCSNP},
		{Name: "PVTYPE", Width: 3, Kind: field.BCSA},
		{Name: "IREP", Width: 8, Kind: field.BCSA},
		{Name: "ICAT", Width: 8, Kind: field.BCSA},
		{Name: "ABPP", Width: 2, Kind: field.BCSNP},
		{Name: "PJUST", Width: 1, Kind: field.BCSA},
		{Name: "ICORDS", Width: 1, Kind: field.BCSA},
		{Name: "IGEOLO", Width: 60, Kind: field.BCSA},
		nicom,
		ic,
		nbands,
		{Name: "ISYNC", Width: 1, Kind: field.BCSNP},
		{Name: "IMODE", Width: 1, Kind: field.BCSA},
		{Name: "NBPR", Width: 4, Kind: field.BCSNP},
		{Name: "NBPC", Width: 4, Kind: field.BCSNP},
		{Name: "NPPBH", Width: 4, Kind: field.BCSNP},
		{Name: "NPPBV", Width: 4, Kind: field.BCSNP},
		{Name: "NBPP", Width: 2, Kind: field.BCSNP},
		{Name: "IDLVL", Width: 3, Kind: field.BCSNP},
		{Name: "IALVL", Width: 3, Kind: field.BCSNP},
		{Name: "ILOC", Width: 10, Kind: field.BCSNP},
		{Name: "IMAG", Width: 4, Kind: field.BCSA},
		{Name: "UDIDL", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			if v.Int() <= 0 {
				return nil
			}
			e.PushFront(
				record.FieldSchema{Name: "UDOFL", Width: 3, Kind: field.BCSNP},
				record.FieldSchema{Name: "UDID", Width: 0, Kind: field.TRE},
			)
			e.PushSize(int(v.Int()) - 3)
			return nil
		}},
		{Name: "IXSHDL", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			if v.Int() <= 0 {
				return nil
			}
			e.PushFront(
				record.FieldSchema{Name: "IXSOFL", Width: 3, Kind: field.BCSNP},
				record.FieldSchema{Name: "IXSHD", Width: 0, Kind: field.TRE},
			)
			e.PushSize(int(v.Int()) - 3)
			return nil
		}},
	}
}

// pushBands enqueues count bands' fields as one ordered batch, preserving
// band order (band 1 fully, then band 2 fully, …) while keeping each band's
// own fields nested together.
func pushBands(e *record.Engine, count int64) {
	var batch []record.FieldSchema
	for i := int64(0); i < count; i++ {
		batch = append(batch, bandSchema()...)
	}
	e.PushFront(batch...)
}
