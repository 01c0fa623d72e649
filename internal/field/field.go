// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package field implements C1, the field-type codec: decoding a byte slice
// of known width into one of NITF's eight closed field kinds. Each kind is a
// case of a single sum type (Kind) rather than a polymorphic class
// hierarchy — decode is one function keyed on Kind, not a virtual method
// per kind.
package field

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
)

// Kind is one of the eight closed NITF field semantics.
type Kind int

// The full, closed set of NITF field kinds.
const (
	// BCSA is Basic Character Set, Alphanumeric: fixed-width, space-padded
	// 7-bit ASCII text.
	BCSA Kind = iota

	// BCSN is Basic Character Set, Numeric: a decimal integer that may be
	// space-padded or entirely blank.
	BCSN

	// BCSNP is "zero-padded decimal": strictly decimal digits, tolerating
	// surrounding space padding but never an embedded non-digit.
	BCSNP

	// ECSA is Extended Character Set, Alphanumeric: fixed-width text over
	// the ISO/IEC 8859-1 repertoire rather than strict ASCII.
	ECSA

	// UInt32 is a big-endian unsigned 32-bit integer.
	UInt32

	// UnsignedBinary is an opaque raw byte region.
	UnsignedBinary

	// IEEE754Float is a big-endian IEEE-754 binary32 float.
	IEEE754Float

	// TRE marks a field whose bytes are not decoded here at all — they are
	// forwarded whole to the tre package for sequential TRE extraction.
	TRE
)

func (k Kind) String() string {
	switch k {
	case BCSA:
		return "BCS_A"
	case BCSN:
		return "BCS_N"
	case BCSNP:
		return "BCS_NP"
	case ECSA:
		return "ECS_A"
	case UInt32:
		return "UINT32"
	case UnsignedBinary:
		return "UnsignedBinary"
	case IEEE754Float:
		return "IEEE_754_FLOAT"
	case TRE:
		return "TRE"
	default:
		return "UNKNOWN"
	}
}

// Value is the decoded result of one field. Only the members relevant to
// Kind are meaningful; callers should branch on Kind (or use the Int/Text/
// Float/Raw accessors, which are safe regardless of kind).
type Value struct {
	Kind   Kind
	Raw    []byte
	Width  int
	text   string
	intVal int64
	f32    float32
	u32    uint32

	// Absent is set for BCS_N/BCS_NP fields whose bytes were entirely
	// blank — the numeric value is a placeholder zero, not a parsed value.
	Absent bool
}

// Text returns the decoded string for BCS_A/BCS_N/BCS_NP/ECS_A kinds.
func (v Value) Text() string { return v.text }

// Int returns the decoded integer for BCS_N/BCS_NP kinds.
func (v Value) Int() int64 { return v.intVal }

// Float32 returns the decoded float for IEEE754Float.
func (v Value) Float32() float32 { return v.f32 }

// Uint32 returns the decoded word for UInt32.
func (v Value) Uint32() uint32 { return v.u32 }

// Bytes returns the raw byte payload (defined for every kind).
func (v Value) Bytes() []byte { return v.Raw }

// LogString renders a human-friendly representation for diagnostics,
// mirroring the source's __str__/__repr__ convention: text kinds render the
// space-padded text, numeric kinds render their parsed value.
func (v Value) LogString() string {
	switch v.Kind {
	case BCSA, ECSA:
		return padRight(v.text, v.Width)
	case BCSN, BCSNP:
		if v.Absent {
			return "<absent>"
		}
		return strconv.FormatInt(v.intVal, 10)
	case UInt32:
		return strconv.FormatUint(uint64(v.u32), 10)
	case IEEE754Float:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case UnsignedBinary, TRE:
		return fmt.Sprintf("%d bytes", len(v.Raw))
	default:
		return "<unknown>"
	}
}

// a latin-1 decoder shared across ECS_A decodes; stateless and safe for
// concurrent use per golang.org/x/text/encoding's contract.
var ecsDecoder = charmap.ISO8859_1.NewDecoder()

// Decode turns raw (exactly width bytes) into a typed Value per kind. field
// names the owning schema slot purely for error messages.
func Decode(kind Kind, raw []byte, fieldName string) (Value, error) {
	v := Value{Kind: kind, Raw: raw, Width: len(raw)}

	switch kind {
	case BCSA:
		v.text = strings.TrimRight(string(raw), " ")
		return v, nil

	case ECSA:
		decoded, err := ecsDecoder.String(string(raw))
		if err != nil {
			return v, errs.Wrap(errs.ErrMalformedField, "field %s: malformed ECS_A bytes (%v)", fieldName, err)
		}
		v.text = strings.TrimRight(decoded, " ")
		return v, nil

	case BCSN:
		trimmed := strings.TrimSpace(string(raw))
		v.text = trimmed
		if trimmed == "" {
			v.Absent = true
			return v, nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return v, errs.Wrap(errs.ErrMalformedField, "field %s: malformed BCS_N %q (%v)", fieldName, string(raw), err)
		}
		v.intVal = n
		return v, nil

	case BCSNP:
		trimmed := strings.TrimSpace(string(raw))
		v.text = trimmed
		if trimmed == "" {
			v.Absent = true
			return v, nil
		}
		for _, b := range []byte(trimmed) {
			if b < '0' || b > '9' {
				return v, errs.Wrap(errs.ErrMalformedField, "field %s: malformed BCS_NP %q: non-decimal byte 0x%02x", fieldName, string(raw), b)
			}
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return v, errs.Wrap(errs.ErrMalformedField, "field %s: malformed BCS_NP %q (%v)", fieldName, string(raw), err)
		}
		v.intVal = n
		return v, nil

	case UInt32:
		if len(raw) != 4 {
			return v, errs.Wrap(errs.ErrMalformedField, "field %s: UINT32 requires 4 bytes, got %d", fieldName, len(raw))
		}
		v.u32 = binary.BigEndian.Uint32(raw)
		return v, nil

	case IEEE754Float:
		if len(raw) != 4 {
			return v, errs.Wrap(errs.ErrMalformedField, "field %s: IEEE_754_FLOAT requires 4 bytes, got %d", fieldName, len(raw))
		}
		v.f32 = math.Float32frombits(binary.BigEndian.Uint32(raw))
		return v, nil

	case UnsignedBinary, TRE:
		return v, nil

	default:
		return v, errs.Wrap(errs.ErrMalformedField, "field %s: unknown field kind %v", fieldName, kind)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
