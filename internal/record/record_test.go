// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package record

import (
	"errors"
	"testing"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
)

func TestCursorReadAdvancesOffset(t *testing.T) {
	cur := NewCursor([]byte("ABCDEF"))
	b, err := cur.Read(3, "X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "ABC" {
		t.Errorf("Read returned %q, want %q", b, "ABC")
	}
	if cur.Offset() != 3 {
		t.Errorf("Offset() = %d, want 3", cur.Offset())
	}
	if cur.Remaining() != 3 {
		t.Errorf("Remaining() = %d, want 3", cur.Remaining())
	}
}

func TestCursorReadPastEndIsUnexpectedEOF(t *testing.T) {
	cur := NewCursor([]byte("AB"))
	_, err := cur.Read(3, "X")
	if !errors.Is(err, errs.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestEngineFixedSchema(t *testing.T) {
	schema := []FieldSchema{
		{Name: "A", Width: 2, Kind: field.BCSA},
		{Name: "B", Width: 3, Kind: field.BCSA},
	}
	eng := NewEngine(NewCursor([]byte("HIfoo")), schema)
	if err := eng.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := eng.Fields()
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(fields))
	}
	if fields[0].Value.Text() != "HI" || fields[1].Value.Text() != "foo" {
		t.Errorf("unexpected field values: %+v", fields)
	}
}

func TestEngineEffectExpandsCount(t *testing.T) {
	// A count field whose Effect pushes that many 1-byte children,
	// mirroring the NUMI-style segment-descriptor expansion.
	countSchema := FieldSchema{Name: "N", Width: 1, Kind: field.BCSNP, Effect: func(e *Engine, v field.Value) error {
		var batch []FieldSchema
		for i := int64(0); i < v.Int(); i++ {
			batch = append(batch, FieldSchema{Name: "ITEM", Width: 1, Kind: field.BCSA})
		}
		e.PushFront(batch...)
		return nil
	}}
	eng := NewEngine(NewCursor([]byte("3xyz")), []FieldSchema{countSchema})
	if err := eng.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := eng.Fields()
	if len(fields) != 4 {
		t.Fatalf("len(fields) = %d, want 4 (N + 3 items)", len(fields))
	}
	got := fields[1].Value.Text() + fields[2].Value.Text() + fields[3].Value.Text()
	if got != "xyz" {
		t.Errorf("items = %q, want %q", got, "xyz")
	}
}

func TestEngineZeroWidthResolvesFromSizeQueue(t *testing.T) {
	lenSchema := FieldSchema{Name: "L", Width: 1, Kind: field.BCSNP, Effect: func(e *Engine, v field.Value) error {
		e.PushFront(FieldSchema{Name: "PAYLOAD", Width: 0, Kind: field.UnsignedBinary})
		e.PushSize(int(v.Int()))
		return nil
	}}
	eng := NewEngine(NewCursor([]byte("3abctail")), []FieldSchema{lenSchema})
	if err := eng.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, ok := Get(eng.Fields(), "PAYLOAD", 0)
	if !ok {
		t.Fatal("PAYLOAD field not found")
	}
	if string(payload.Value.Bytes()) != "abc" {
		t.Errorf("PAYLOAD = %q, want %q", payload.Value.Bytes(), "abc")
	}
	if eng.Cursor().Remaining() != 4 {
		t.Errorf("Remaining() = %d, want 4 (tail unread)", eng.Cursor().Remaining())
	}
}

func TestEngineMaskGateSkipsField(t *testing.T) {
	bit := 0
	schema := []FieldSchema{
		{Name: "GATED", Width: 2, Kind: field.BCSA, MaskBit: &bit},
		{Name: "NEXT", Width: 2, Kind: field.BCSA},
	}
	eng := NewEngine(NewCursor([]byte("ABCD")), schema)
	eng.MaskGate = func(int) bool { return false }
	if err := eng.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// GATED is skipped without consuming bytes, so NEXT reads "AB".
	next, ok := Get(eng.Fields(), "NEXT", 0)
	if !ok {
		t.Fatal("NEXT field not found")
	}
	if next.Value.Text() != "AB" {
		t.Errorf("NEXT = %q, want %q (GATED should not have consumed bytes)", next.Value.Text(), "AB")
	}
}

func TestGetByIndexAmongRepeatedNames(t *testing.T) {
	fields := []ParsedField{
		{Schema: FieldSchema{Name: "LI_N"}, Value: field.Value{}},
		{Schema: FieldSchema{Name: "LI_N"}, Value: field.Value{}},
	}
	if _, ok := Get(fields, "LI_N", 1); !ok {
		t.Error("expected to find second LI_N occurrence")
	}
	if _, ok := Get(fields, "LI_N", 2); ok {
		t.Error("expected no third LI_N occurrence")
	}
}
