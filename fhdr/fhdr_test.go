// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package fhdr

import (
	"strings"
	"testing"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
	"github.com/Terminus-Geospatial/terminus-nitf-go/tre"
)

// fhdrBuilder assembles a valid File Header byte stream field by field, in
// schema order, so width mistakes fail loudly as a parse error rather than
// silently misaligning later fields.
type fhdrBuilder struct {
	buf strings.Builder
}

func (b *fhdrBuilder) text(width int, s string) *fhdrBuilder {
	if len(s) > width {
		s = s[:width]
	}
	b.buf.WriteString(s + strings.Repeat(" ", width-len(s)))
	return b
}

func (b *fhdrBuilder) digits(width int, n int) *fhdrBuilder {
	s := strings.Repeat("0", width)
	digits := []byte(s)
	ns := []byte(strings_Itoa(n))
	copy(digits[width-len(ns):], ns)
	b.buf.Write(digits)
	return b
}

func (b *fhdrBuilder) raw(bytes []byte) *fhdrBuilder {
	b.buf.Write(bytes)
	return b
}

func strings_Itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// minimalFileHeader builds a File Header with zero image/graphic/text/DES/
// RES segments and no UDHD/XHD, which is enough to exercise the fixed
// schema and the zero-count no-op path of every Effect.
func minimalFileHeader() []byte {
	b := &fhdrBuilder{}
	b.text(4, "NITF").text(5, "02.10").digits(2, 3).text(4, "BF01")
	b.text(10, "STATION").digits(14, 0).text(80, "TITLE")
	b.text(1, "U").text(2, "").text(11, "").text(2, "").text(20, "")
	b.text(2, "").text(8, "").text(4, "").text(1, "").text(8, "")
	b.text(43, "").text(1, "").text(40, "").text(1, "").text(8, "")
	b.text(15, "")
	b.digits(5, 0).digits(5, 0).digits(1, 0)
	b.raw([]byte{0, 0, 0})
	b.text(24, "").text(18, "")
	b.digits(12, 999).digits(6, 404)
	b.digits(3, 0) // NUMI
	b.digits(3, 0) // NUMS
	b.digits(3, 0) // NUMX
	b.digits(3, 0) // NUMT
	b.digits(3, 0) // NUMDES
	b.digits(3, 0) // NUM_RES
	b.digits(5, 0) // UDHDL
	b.digits(5, 0) // XHDL
	return []byte(b.buf.String())
}

func TestParseMinimalFileHeader(t *testing.T) {
	cur := record.NewCursor(minimalFileHeader())
	h, err := Parse(cur, tre.DefaultRegistry(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fhdrField, ok := h.Get("FHDR", 0)
	if !ok || fhdrField.Value.Text() != "NITF" {
		t.Errorf("FHDR = %+v, want \"NITF\"", fhdrField)
	}

	numi, ok := h.Get("NUMI", 0)
	if !ok || numi.Value.Int() != 0 {
		t.Errorf("NUMI = %+v, want 0", numi)
	}

	if cur.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0 (schema should consume the whole buffer)", cur.Remaining())
	}

	if len(h.UDHD) != 0 || len(h.XHD) != 0 {
		t.Errorf("expected no UDHD/XHD TREs, got %d/%d", len(h.UDHD), len(h.XHD))
	}
}

func TestFileHeaderValidateDetectsLengthMismatch(t *testing.T) {
	cur := record.NewCursor(minimalFileHeader())
	h, err := Parse(cur, tre.DefaultRegistry(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if errs := h.Validate(999); len(errs) != 0 {
		t.Errorf("expected no validation errors when FL matches, got %v", errs)
	}
	if errs := h.Validate(1000); len(errs) == 0 {
		t.Error("expected a validation error when FL does not match file size")
	}
}

func TestParseExpandsImageSegmentDescriptors(t *testing.T) {
	b := &fhdrBuilder{}
	b.text(4, "NITF").text(5, "02.10").digits(2, 3).text(4, "BF01")
	b.text(10, "STATION").digits(14, 0).text(80, "TITLE")
	b.text(1, "U").text(2, "").text(11, "").text(2, "").text(20, "")
	b.text(2, "").text(8, "").text(4, "").text(1, "").text(8, "")
	b.text(43, "").text(1, "").text(40, "").text(1, "").text(8, "")
	b.text(15, "")
	b.digits(5, 0).digits(5, 0).digits(1, 0)
	b.raw([]byte{0, 0, 0})
	b.text(24, "").text(18, "")
	b.digits(12, 100).digits(6, 404)
	b.digits(3, 2) // NUMI = 2
	b.digits(6, 111).digits(10, 1000)
	b.digits(6, 222).digits(10, 2000)
	b.digits(3, 0) // NUMS
	b.digits(3, 0) // NUMX
	b.digits(3, 0) // NUMT
	b.digits(3, 0) // NUMDES
	b.digits(3, 0) // NUM_RES
	b.digits(5, 0) // UDHDL
	b.digits(5, 0) // XHDL

	cur := record.NewCursor([]byte(b.buf.String()))
	h, err := Parse(cur, tre.DefaultRegistry(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	li0, ok := h.Get("LI_N", 0)
	if !ok || li0.Value.Int() != 1000 {
		t.Errorf("LI_N[0] = %+v, want 1000", li0)
	}
	li1, ok := h.Get("LI_N", 1)
	if !ok || li1.Value.Int() != 2000 {
		t.Errorf("LI_N[1] = %+v, want 2000", li1)
	}
}
