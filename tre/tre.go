// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package tre implements C7 (the TRE container and sequential extractor) and
// hosts C8, the per-tag decoders. A Registry is an ordered list of
// (name, validator, builder) triples tried in order; the first validator to
// accept a tag wins. A catch-all decoder that accepts every tag is mandatory
// and always registered last, so extraction never fails merely because a
// tag has no dedicated decoder.
package tre

import (
	"strconv"
	"strings"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/log"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

// TRE is one decoded Tagged Record Extension: its tag, declared length, and
// the ordered fields a decoder extracted from CEDATA.
type TRE struct {
	Tag    string
	CEL    int
	Fields []record.ParsedField
	Raw    []byte
}

// Get returns the index-th field named name.
func (t *TRE) Get(name string, index int) (record.ParsedField, bool) {
	return record.Get(t.Fields, name, index)
}

// AsKVP flattens the TRE's fields into a string-keyed map, mirroring
// File_Header.as_kvp's per-TRE nesting convention (caller prefixes with
// "udhd.<tag>." or "xhd.<tag>.").
func (t *TRE) AsKVP() map[string]string {
	out := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		key := f.Schema.Name
		if _, exists := out[key]; exists {
			// repeated field name (e.g. LUTD_n_m): disambiguate by position.
			key = key + "#" + strconv.Itoa(len(out))
		}
		out[key] = f.Value.LogString()
	}
	return out
}

// LogString renders a human-readable block for diagnostics, indented by
// depth levels of two spaces.
func (t *TRE) LogString(depth int) string {
	gap := strings.Repeat("  ", depth)
	var sb strings.Builder
	sb.WriteString(gap + "TRE " + t.Tag + " (CEL=" + strconv.Itoa(t.CEL) + "):\n")
	for _, f := range t.Fields {
		sb.WriteString(gap + "  " + f.Schema.Name + " = " + f.Value.LogString() + "\n")
	}
	return sb.String()
}

// BuildFunc decodes one TRE's CEDATA into a *TRE.
type BuildFunc func(tag string, cel int, cedata []byte) (*TRE, error)

// ValidFunc reports whether a decoder can handle the given tag/length.
type ValidFunc func(tag string, cel int, cedata []byte) bool

type registration struct {
	name  string
	valid ValidFunc
	build BuildFunc
}

// Registry is an ordered dispatch table of TRE decoders.
type Registry struct {
	entries []registration
}

// NewRegistry returns an empty Registry. Register entries, then Register the
// catch-all last (or use DefaultRegistry, which does this for you).
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a decoder to the dispatch order.
func (r *Registry) Register(name string, valid ValidFunc, build BuildFunc) {
	r.entries = append(r.entries, registration{name: name, valid: valid, build: build})
}

// Build dispatches to the first decoder whose validator accepts
// (tag, cel, cedata). DefaultRegistry's tail entry accepts everything, so a
// Registry built from it never returns a nil *TRE. A matched decoder whose
// build fails does not fail the TRE: the error is logged via helper (which
// may be nil) and genericBuild claims the bytes instead, so one malformed
// TRE never prevents its siblings from being read.
func (r *Registry) Build(tag string, cel int, cedata []byte, helper *log.Helper) (*TRE, error) {
	for _, e := range r.entries {
		if e.valid(tag, cel, cedata) {
			t, err := e.build(tag, cel, cedata)
			if err != nil {
				helper.Warnf("tre: decoder %q rejected tag %q (%v), falling back to generic", e.name, strings.TrimSpace(tag), err)
				return genericBuild(tag, cel, cedata)
			}
			return t, nil
		}
	}
	return genericBuild(tag, cel, cedata)
}

// DefaultRegistry returns the standard decoder set in priority order, ending
// with the mandatory generic fallback.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("ACCHZB", isACCHZB, buildACCHZB)
	r.Register("ACFTB", isACFTB, buildACFTB)
	r.Register("AIMIDB", isAIMIDB, buildAIMIDB)
	r.Register("BANDSB", isBANDSB, buildBANDSB)
	r.Register("BLOCKA", isBLOCKA, buildBLOCKA)
	r.Register("CAMSDA", isCAMSDA, buildCAMSDA)
	r.Register("CCINFA", isCCINFA, buildCCINFA)
	r.Register("CSDIDA", isCSDIDA, buildCSDIDA)
	r.Register("ENGRDA", isENGRDA, buildENGRDA)
	r.Register("MATESA", isMATESA, buildMATESA)
	r.Register("MIMCSA", isMIMCSA, buildMIMCSA)
	r.Register("generic", func(string, int, []byte) bool { return true }, genericBuild)
	return r
}

// genericBuild is the mandatory catch-all: it stores CEDATA as one opaque
// UnsignedBinary field named CEDATA, so an unrecognized tag still round-trips
// through AsKVP/LogString instead of aborting extraction.
func genericBuild(tag string, cel int, cedata []byte) (*TRE, error) {
	val, err := field.Decode(field.UnsignedBinary, cedata, "CEDATA")
	if err != nil {
		return nil, err
	}
	return &TRE{
		Tag: tag,
		CEL: cel,
		Raw: cedata,
		Fields: []record.ParsedField{
			{Schema: record.FieldSchema{Name: "CEDATA", Width: len(cedata), Kind: field.UnsignedBinary}, Value: val},
		},
	}, nil
}

// parseFixed drives schema over cedata via the record engine and wraps the
// result as a *TRE, failing with ErrDecoderInvariantViolation if the schema
// did not consume cedata exactly. Only the fixed-schema decoders (ACFTB,
// AIMIDB, BLOCKA, CSDIDA, MIMCSA) call through here; ACCHZB, BANDSB, CAMSDA,
// CCINFA, ENGRDA and MATESA run their own engine and do not check that
// CEDATA was fully consumed.
func parseFixed(tag string, cel int, cedata []byte, schema []record.FieldSchema) (*TRE, error) {
	cur := record.NewCursor(cedata)
	eng := record.NewEngine(cur, schema)
	if err := eng.Run(); err != nil {
		return nil, err
	}
	if cur.Remaining() != 0 {
		return nil, errs.Wrap(errs.ErrDecoderInvariantViolation, "TRE %s: schema consumed %d of %d CEDATA bytes", tag, cur.Offset(), len(cedata))
	}
	return &TRE{Tag: tag, CEL: cel, Raw: cedata, Fields: eng.Fields()}, nil
}

// byTag returns a ValidFunc that accepts exactly one tag, compared after
// trimming surrounding spaces from CETAG.
func byTag(tag string) ValidFunc {
	return func(cetag string, _ int, _ []byte) bool {
		return strings.TrimSpace(cetag) == tag
	}
}

// trimmed strips surrounding spaces from a CETAG.
func trimmed(s string) string { return strings.TrimSpace(s) }

// trimmedTagIs is the common is_valid shape: trimmed CETAG equals name.
func trimmedTagIs(cetag, name string) bool { return strings.TrimSpace(cetag) == name }

// parseCount parses a trimmed decimal count field used to drive a repeat.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.Wrap(errs.ErrMalformedField, "malformed repeat count %q (%v)", s, err)
	}
	return n, nil
}

// ExtractAll runs C7's sequential TRE extractor over data: read CETAG(6),
// CEL(5, decimal), then CEL bytes of CEDATA; dispatch to registry; repeat
// until data is exhausted. A partial tail is ErrTruncatedTRE and aborts
// extraction — the stream framing itself is broken, so no later TRE in the
// buffer can be located reliably. A matched decoder's own build failure does
// not abort: Registry.Build already falls back to the generic decoder for
// that one TRE, so sibling TREs downstream are still read. helper may be nil.
func ExtractAll(data []byte, registry *Registry, helper *log.Helper) ([]*TRE, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}

	var out []*TRE
	idx := 0
	for idx < len(data) {
		if idx+6+5 > len(data) {
			return out, errs.Wrap(errs.ErrTruncatedTRE, "TRE header truncated at offset %d (%d bytes remain)", idx, len(data)-idx)
		}

		tagRaw := data[idx : idx+6]
		idx += 6
		celRaw := data[idx : idx+5]
		idx += 5

		tagVal, err := field.Decode(field.BCSA, tagRaw, "CETAG")
		if err != nil {
			return out, err
		}
		celVal, err := field.Decode(field.BCSNP, celRaw, "CEL")
		if err != nil {
			return out, err
		}
		cel := int(celVal.Int())

		if idx+cel > len(data) {
			return out, errs.Wrap(errs.ErrTruncatedTRE, "TRE %s CEDATA truncated: wanted %d bytes, had %d", strings.TrimSpace(tagVal.Text()), cel, len(data)-idx)
		}
		cedata := data[idx : idx+cel]
		idx += cel

		tre, err := registry.Build(tagVal.Text(), cel, cedata, helper)
		if err != nil {
			return out, err
		}
		out = append(out, tre)
	}
	return out, nil
}
