// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package record implements C4, the generic schema-driven record parser
// engine. One engine implementation is shared by the File Header, the Image
// Subheader, and every TRE decoder: each of those supplies its own ordered
// FieldSchema list and attaches side effects (dynamic expansion, size
// resolution, mask gating) as data on the schema itself, rather than the
// engine special-casing field names.
package record

import (
	"fmt"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
)

// Cursor is a forward-only view over a byte buffer. Multiple Engines can
// share one Cursor, each continuing where the previous one stopped.
type Cursor struct {
	data   []byte
	offset int
}

// NewCursor wraps data for sequential consumption starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Read consumes exactly n bytes, or returns UnexpectedEOF naming field.
func (c *Cursor) Read(n int, fieldName string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("record: negative width for field %s", fieldName)
	}
	if c.offset+n > len(c.data) {
		return nil, &UnexpectedEOFError{Field: fieldName, Want: n, Have: len(c.data) - c.offset}
	}
	out := c.data[c.offset : c.offset+n]
	c.offset += n
	return out, nil
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.offset }

// Remaining returns the number of unconsumed bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.offset }

// UnexpectedEOFError reports a field whose declared width the stream could
// not satisfy.
type UnexpectedEOFError struct {
	Field string
	Want  int
	Have  int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of stream reading field %s: wanted %d bytes, had %d", e.Field, e.Want, e.Have)
}

// Unwrap lets callers errors.Is(err, errs.ErrUnexpectedEOF).
func (e *UnexpectedEOFError) Unwrap() error { return errs.ErrUnexpectedEOF }

// Effect is a side effect a schema row triggers once its field has been
// read and decoded. It may push more schemas onto the engine's work queue,
// enqueue a resolved width for an upcoming zero-width schema, or adjust the
// engine's mask gate.
type Effect func(e *Engine, v field.Value) error

// FieldSchema is C3: static, read-only metadata describing one positional
// field. Width == 0 means the width is resolved at parse time from the size
// queue (see Engine.PushSize).
type FieldSchema struct {
	Name    string
	Width   int
	Kind    field.Kind
	Label   string
	MaskBit *int
	Effect  Effect
}

// ParsedField is one decoded field, kept in stream order — Records are
// indexed by position, not by name, because names repeat (LISH_1, LISH_2, …).
type ParsedField struct {
	Schema FieldSchema
	Value  field.Value
}

// Engine drives a schema through a Cursor, applying each field's Effect as
// it is consumed and honoring an optional mask gate for BANDSB-style
// existence-mask-conditional fields.
type Engine struct {
	cursor    *Cursor
	queue     []FieldSchema
	sizeQueue []int
	fields    []ParsedField

	// MaskGate, when non-nil, is consulted for every schema whose MaskBit
	// is set; a false result skips the field entirely (it is not present in
	// the stream at all, not merely defaulted).
	MaskGate func(bit int) bool
}

// NewEngine returns an Engine reading from cursor, seeded with the given
// initial schema sequence.
func NewEngine(cursor *Cursor, initial []FieldSchema) *Engine {
	e := &Engine{cursor: cursor}
	e.PushBack(initial...)
	return e
}

// Cursor exposes the underlying stream, e.g. so a caller can hand the
// remaining bytes of a fixed-size region to a sub-parser (TRE extraction).
func (e *Engine) Cursor() *Cursor { return e.cursor }

// PushBack enqueues schemas at the tail, after everything already queued —
// NewEngine uses it to seed the initial schema sequence.
func (e *Engine) PushBack(schemas ...FieldSchema) {
	e.queue = append(e.queue, schemas...)
}

// PushFront enqueues schemas at the head — used for nested groups that must
// be fully consumed before the next independent block starts (keeping band
// sub-fields contiguous).
func (e *Engine) PushFront(schemas ...FieldSchema) {
	e.queue = append(append([]FieldSchema{}, schemas...), e.queue...)
}

// PushSize enqueues a resolved width for the next zero-width schema that
// needs one.
func (e *Engine) PushSize(n int) {
	e.sizeQueue = append(e.sizeQueue, n)
}

// Fields returns every field parsed so far, in stream order.
func (e *Engine) Fields() []ParsedField { return e.fields }

// Empty reports whether the work queue has been fully drained.
func (e *Engine) Empty() bool { return len(e.queue) == 0 }

// Run drains the work queue to completion, applying each schema's Effect
// immediately after the field decodes.
func (e *Engine) Run() error {
	for len(e.queue) > 0 {
		if _, err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step dequeues and processes exactly one schema, returning its parsed
// field (or the zero ParsedField and a nil error if the field was
// mask-gated out).
func (e *Engine) Step() (ParsedField, error) {
	schema := e.queue[0]
	e.queue = e.queue[1:]

	if schema.MaskBit != nil && e.MaskGate != nil && !e.MaskGate(*schema.MaskBit) {
		return ParsedField{}, nil
	}

	width := schema.Width
	if width == 0 {
		if len(e.sizeQueue) == 0 {
			return ParsedField{}, fmt.Errorf("record: field %s has dynamic width but no size was queued", schema.Name)
		}
		width = e.sizeQueue[0]
		e.sizeQueue = e.sizeQueue[1:]
	}

	raw, err := e.cursor.Read(width, schema.Name)
	if err != nil {
		return ParsedField{}, err
	}

	val, err := field.Decode(schema.Kind, raw, schema.Name)
	if err != nil {
		return ParsedField{}, err
	}

	pf := ParsedField{Schema: schema, Value: val}
	e.fields = append(e.fields, pf)

	if schema.Effect != nil {
		if err := schema.Effect(e, val); err != nil {
			return pf, err
		}
	}
	return pf, nil
}

// Get returns the index-th ParsedField (0-based) whose schema name matches
// name, or false if there is no such field.
func Get(fields []ParsedField, name string, index int) (ParsedField, bool) {
	count := 0
	for _, f := range fields {
		if f.Schema.Name == name {
			if count == index {
				return f, true
			}
			count++
		}
	}
	return ParsedField{}, false
}
