// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package field

import (
	"errors"
	"testing"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
)

func TestDecodeBCSA(t *testing.T) {
	v, err := Decode(BCSA, []byte("NITF  "), "FHDR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Text() != "NITF" {
		t.Errorf("Text() = %q, want %q", v.Text(), "NITF")
	}
}

func TestDecodeBCSNBlankIsAbsent(t *testing.T) {
	v, err := Decode(BCSN, []byte("   "), "NUMI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Absent {
		t.Error("expected Absent for all-blank BCS_N field")
	}
}

func TestDecodeBCSNumeric(t *testing.T) {
	v, err := Decode(BCSN, []byte(" 42"), "NUMI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int() != 42 {
		t.Errorf("Int() = %d, want 42", v.Int())
	}
}

func TestDecodeBCSNPRejectsNonDigit(t *testing.T) {
	_, err := Decode(BCSNP, []byte("1x234"), "FL")
	if !errors.Is(err, errs.ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
}

func TestDecodeUInt32(t *testing.T) {
	v, err := Decode(UInt32, []byte{0x00, 0x00, 0x01, 0x00}, "FPKGC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Uint32() != 256 {
		t.Errorf("Uint32() = %d, want 256", v.Uint32())
	}
}

func TestDecodeECSALatin1(t *testing.T) {
	// 0xE9 in ISO-8859-1 is 'é'.
	v, err := Decode(ECSA, []byte{0xE9, ' ', ' '}, "FTITLE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Text() != "é" {
		t.Errorf("Text() = %q, want %q", v.Text(), "é")
	}
}

func TestDecodeUnsignedBinaryPassesRawThrough(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	v, err := Decode(UnsignedBinary, raw, "LUTD_N_M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Bytes()) != 3 {
		t.Errorf("Bytes() length = %d, want 3", len(v.Bytes()))
	}
}
