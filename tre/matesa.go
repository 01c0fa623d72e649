// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

func isMATESA(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "MATESA") }

// buildMATESA decodes the current file's mate-relationship groups: NUM_GROUPS
// pairs of (RELATIONSHIP_N, NUM_MATES_N), each followed immediately (nested,
// LIFO) by NUM_MATES_N mate records — the nested group must finish before
// the next independent (RELATIONSHIP_N, NUM_MATES_N) pair starts, matching
// §4.3's LIFO-for-nested-groups rule.
func buildMATESA(cetag string, cel int, cedata []byte) (*TRE, error) {
	cur := record.NewCursor(cedata)

	curFileIDLen := record.FieldSchema{Name: "CUR_FILE_ID_LEN", Width: 4, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		e.PushSize(int(v.Int()))
		return nil
	}}
	curFileID := record.FieldSchema{Name: "CUR_FILE_ID", Width: 0, Kind: field.ECSA}

	numGroups := record.FieldSchema{Name: "NUM_GROUPS", Width: 4, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		var groups []record.FieldSchema
		for i := int64(0); i < v.Int(); i++ {
			groups = append(groups,
				record.FieldSchema{Name: "RELATIONSHIP_N", Width: 24, Kind: field.ECSA},
				matesaNumMatesSchema(),
			)
		}
		e.PushFront(groups...)
		return nil
	}}

	initial := []record.FieldSchema{
		{Name: "CUR_SOURCE", Width: 42, Kind: field.ECSA},
		{Name: "CUR_MATE_TYPE", Width: 16, Kind: field.ECSA},
		curFileIDLen,
		curFileID,
		numGroups,
	}

	eng := record.NewEngine(cur, initial)
	if err := eng.Run(); err != nil {
		return nil, err
	}
	return &TRE{Tag: trimmed(cetag), CEL: cel, Raw: cedata, Fields: eng.Fields()}, nil
}

// matesaNumMatesSchema builds NUM_MATES_N with an Effect that pushes
// NUM_MATES_N mate records to the front of the queue — ahead of the next
// independent (RELATIONSHIP_N, NUM_MATES_N) pair NUM_GROUPS already queued.
func matesaNumMatesSchema() record.FieldSchema {
	return record.FieldSchema{Name: "NUM_MATES_N", Width: 4, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		var mates []record.FieldSchema
		for i := int64(0); i < v.Int(); i++ {
			mates = append(mates, matesaMateSchema()...)
		}
		e.PushFront(mates...)
		return nil
	}}
}

func matesaMateSchema() []record.FieldSchema {
	return []record.FieldSchema{
		{Name: "SOURCE_N_M", Width: 42, Kind: field.ECSA},
		{Name: "MATE_TYPE_N_M", Width: 16, Kind: field.ECSA},
		{Name: "MATE_ID_LEN_N", Width: 4, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			e.PushSize(int(v.Int()))
			return nil
		}},
		{Name: "MATE_ID_N_M", Width: 0, Kind: field.ECSA},
	}
}
