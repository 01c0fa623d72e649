// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

func isCCINFA(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "CCINFA") }

// buildCCINFA decodes NUMCODE entries, each a code (CODE_LEN_N-sized),
// an equivalence type, an equivalent-URN (ESURN_LEN_N-sized), and an
// optional compressed detail block present only when DETAIL_LEN_N > 0.
func buildCCINFA(cetag string, cel int, cedata []byte) (*TRE, error) {
	cur := record.NewCursor(cedata)

	numcode := record.FieldSchema{Name: "NUMCODE", Width: 3, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		var entries []record.FieldSchema
		for i := int64(0); i < v.Int(); i++ {
			entries = append(entries, ccinfaEntrySchema()...)
		}
		e.PushFront(entries...)
		return nil
	}}

	eng := record.NewEngine(cur, []record.FieldSchema{numcode})
	if err := eng.Run(); err != nil {
		return nil, err
	}
	return &TRE{Tag: trimmed(cetag), CEL: cel, Raw: cedata, Fields: eng.Fields()}, nil
}

func ccinfaEntrySchema() []record.FieldSchema {
	return []record.FieldSchema{
		{Name: "CODE_LEN_N", Width: 1, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			e.PushSize(int(v.Int()))
			return nil
		}},
		{Name: "CODE_N", Width: 0, Kind: field.BCSA},
		{Name: "EQTYPE_N", Width: 1, Kind: field.BCSA},
		{Name: "ESURN_LEN_N", Width: 2, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			e.PushSize(int(v.Int()))
			return nil
		}},
		{Name: "ESURN_N", Width: 0, Kind: field.BCSA},
		{Name: "DETAIL_LEN_N", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			if v.Int() > 0 {
				e.PushFront(
					record.FieldSchema{Name: "DETAIL_CMPR_N", Width: 1, Kind: field.BCSA},
					record.FieldSchema{Name: "DETAIL_N", Width: 0, Kind: field.ECSA},
				)
				e.PushSize(int(v.Int()))
			}
			return nil
		}},
	}
}
