// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

func isENGRDA(cetag string, _ int, _ []byte) bool {
	t := trimmed(cetag)
	return t == "ENGRDA" || t == "ENGDRA"
}

// buildENGRDA decodes RESRC/RECNT, then RECNT engineering-data records.
// Each record is a label (ENGLN_N-sized), a matrix shape (ENGMTXC_N x
// ENGMTXR_N), an element type/size/units/count, and ENGMTXC_N*ENGMTXR_N
// opaque elements each ENGDTS_N bytes wide.
func buildENGRDA(cetag string, cel int, cedata []byte) (*TRE, error) {
	cur := record.NewCursor(cedata)

	resrc := record.FieldSchema{Name: "RESRC", Width: 20, Kind: field.BCSA}
	recnt := record.FieldSchema{Name: "RECNT", Width: 3, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		var entries []record.FieldSchema
		for i := int64(0); i < v.Int(); i++ {
			entries = append(entries, engrdaEntrySchema()...)
		}
		e.PushFront(entries...)
		return nil
	}}

	eng := record.NewEngine(cur, []record.FieldSchema{resrc, recnt})
	if err := eng.Run(); err != nil {
		return nil, err
	}
	return &TRE{Tag: trimmed(cetag), CEL: cel, Raw: cedata, Fields: eng.Fields()}, nil
}

func engrdaEntrySchema() []record.FieldSchema {
	var mtxc, mtxr, dts int64

	engdatc := record.FieldSchema{Name: "ENGDATC_N", Width: 8, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		total := mtxc * mtxr
		if total <= 0 {
			return nil
		}
		var elems []record.FieldSchema
		for i := int64(0); i < total; i++ {
			elems = append(elems, record.FieldSchema{Name: "ENGDATA_N", Width: 0, Kind: field.UnsignedBinary})
			e.PushSize(int(dts))
		}
		e.PushFront(elems...)
		return nil
	}}

	return []record.FieldSchema{
		{Name: "ENGLN_N", Width: 2, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			e.PushSize(int(v.Int()))
			return nil
		}},
		{Name: "ENGLBL_N", Width: 0, Kind: field.BCSA},
		{Name: "ENGMTXC_N", Width: 4, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			mtxc = v.Int()
			return nil
		}},
		{Name: "ENGMTXR_N", Width: 4, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
			mtxr = v.Int()
			return nil
		}},
		{Name: "ENGTYP_N", Width: 1, Kind: field.BCSA},
		{Name: "ENGDTS_N", Width: 1, Kind: field.BCSN, Effect: func(e *record.Engine, v field.Value) error {
			dts = v.Int()
			return nil
		}},
		{Name: "ENGDATU_N", Width: 2, Kind: field.BCSA},
		engdatc,
	}
}
