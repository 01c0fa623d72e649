// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

// bandsbMinimalPayload builds a BANDSB CEDATA buffer with COUNT=0 bands and
// an all-zero EXISTENCE_MASK, so every mask-gated field (including the
// NUM_AUX_B/NUM_AUX_C auxiliary blocks) is absent from the stream entirely.
func bandsbMinimalPayload() []byte {
	var buf bytes.Buffer
	buf.WriteString("00000")                // COUNT
	buf.WriteString(strings.Repeat(" ", 24)) // RADIOMETRIC_QUANTITY
	buf.WriteString(" ")                     // RADIOMETRIC_QUANTITY_UNIT
	var f [4]byte
	binary.BigEndian.PutUint32(f[:], 0)
	buf.Write(f[:]) // SCALE_FACTOR
	buf.Write(f[:]) // ADDITIVE_FACTOR
	buf.WriteString("0000000")               // ROW_GSD
	buf.WriteString(" ")                     // ROW_GSD_UNIT
	buf.WriteString("0000000")               // COL_GSD
	buf.WriteString(" ")                     // COL_GSD_UNIT
	buf.WriteString("0000000")               // SPT_RESP_ROW
	buf.WriteString(" ")                     // SPT_RESP_UNIT_ROW
	buf.WriteString("0000000")               // SPT_RESP_COL
	buf.WriteString(" ")                     // SPT_RESP_UNIT_COL
	buf.WriteString(strings.Repeat(" ", 48)) // DATA_FLD_1
	var mask [4]byte
	binary.BigEndian.PutUint32(mask[:], 0) // EXISTENCE_MASK == 0: every gated field absent
	buf.Write(mask[:])
	buf.WriteString("N") // WAVE_LENGTH_UNIT
	return buf.Bytes()
}

func TestBuildBANDSBZeroMaskOmitsGatedFields(t *testing.T) {
	payload := bandsbMinimalPayload()
	got, err := buildBANDSB("BANDSB", len(payload), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.Get("EXISTENCE_MASK", 0); !ok {
		t.Error("EXISTENCE_MASK should always be present")
	}
	if _, ok := got.Get("RADIOMETRIC_ADJUSTMENT_SURFACE", 0); ok {
		t.Error("RADIOMETRIC_ADJUSTMENT_SURFACE is gated by bit 31, which is clear, so it should be absent")
	}
	if _, ok := got.Get("NUM_AUX_B", 0); ok {
		t.Error("NUM_AUX_B is gated by bit 0, which is clear, so it should be absent")
	}
	if _, ok := got.Get("BANDID_N", 0); ok {
		t.Error("COUNT is 0, so no per-band fields should appear")
	}
}

func TestBuildBANDSBMaskGatesInOptionalTrailer(t *testing.T) {
	payload := bandsbMinimalPayload()
	// Flip bit 31 (RADIOMETRIC_ADJUSTMENT_SURFACE / ATMOSPHERIC_ADJUSTMENT_ALTITUDE).
	mask := payload[len(payload)-5 : len(payload)-1]
	binary.BigEndian.PutUint32(mask, 1<<31)

	got, err := buildBANDSB("BANDSB", len(payload), payload)
	if err == nil {
		t.Fatalf("expected error: setting bit 31 adds 28 bytes the fixed-length payload no longer has room for, got TRE %+v", got)
	}
}
