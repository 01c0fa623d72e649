// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"strings"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

func isACCHZB(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "ACCHZB") }

// buildACCHZB decodes horizontal accuracy regions: NUM_ACHZ groups, each an
// optional AAH_N (gated by whether UNIAAH_N names a unit), an optional
// APH_N (same gate on UNIAPH_N), and a bounding polygon of NUM_PTS_N
// (LON_N_M, LAT_N_M) pairs.
func buildACCHZB(cetag string, cel int, cedata []byte) (*TRE, error) {
	cur := record.NewCursor(cedata)

	numACHZSchema := record.FieldSchema{Name: "NUM_ACHZ", Width: 2, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		region := regionSchema()
		var all []record.FieldSchema
		for i := int64(0); i < v.Int(); i++ {
			all = append(all, region...)
		}
		e.PushFront(all...)
		return nil
	}}

	eng := record.NewEngine(cur, []record.FieldSchema{numACHZSchema})
	if err := eng.Run(); err != nil {
		return nil, err
	}
	return &TRE{Tag: trimmed(cetag), CEL: cel, Raw: cedata, Fields: eng.Fields()}, nil
}

// regionSchema returns the schema for one horizontal-accuracy region. The
// conditional AAH_N/APH_N reads and the NUM_PTS_N-driven polygon are
// expressed as Effects rather than as a fixed list, since each step's
// presence depends on the value just read.
func regionSchema() []record.FieldSchema {
	var uniaah, uniaph string

	return []record.FieldSchema{
		{Name: "UNIAAH_N", Width: 3, Kind: field.BCSA, Effect: func(e *record.Engine, v field.Value) error {
			uniaah = strings.TrimSpace(v.Text())
			if uniaah != "" {
				e.PushFront(record.FieldSchema{Name: "AAH_N", Width: 5, Kind: field.BCSNP})
			}
			return nil
		}},
		{Name: "UNIAPH_N", Width: 3, Kind: field.BCSA, Effect: func(e *record.Engine, v field.Value) error {
			uniaph = strings.TrimSpace(v.Text())
			if uniaph != "" {
				e.PushFront(record.FieldSchema{Name: "APH_N", Width: 5, Kind: field.BCSNP})
			}
			return nil
		}},
		{Name: "NUM_PTS_N", Width: 3, Kind: field.BCSA, Effect: func(e *record.Engine, v field.Value) error {
			n := strings.TrimSpace(v.Text())
			if n == "" {
				return nil
			}
			count, err := parseCount(n)
			if err != nil {
				return err
			}
			var pts []record.FieldSchema
			for i := 0; i < count; i++ {
				pts = append(pts,
					record.FieldSchema{Name: "LON_N_M", Width: 15, Kind: field.BCSN},
					record.FieldSchema{Name: "LAT_N_M", Width: 15, Kind: field.BCSN},
				)
			}
			e.PushFront(pts...)
			return nil
		}},
	}
}
