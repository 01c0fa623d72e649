// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

// AIMIDB carries additional image identification metadata: mission, tile
// range, and location. Fixed-width, no repeats.
var aimidbSchema = []record.FieldSchema{
	{Name: "ACQUISITION_DATE", Width: 14, Kind: field.BCSNP},
	{Name: "MISSION_NO", Width: 4, Kind: field.BCSA},
	{Name: "MISSION_IDENTIFICATION", Width: 10, Kind: field.BCSA},
	{Name: "FLIGHT_NO", Width: 2, Kind: field.BCSN},
	{Name: "OP_NUM", Width: 3, Kind: field.BCSNP},
	{Name: "CURRENT_SEGMENT", Width: 2, Kind: field.BCSA},
	{Name: "REPRO_NUM", Width: 2, Kind: field.BCSNP},
	{Name: "REPLAY", Width: 3, Kind: field.BCSA},
	{Name: "RESERVED_1", Width: 1, Kind: field.BCSA},
	{Name: "START_TILE_COLUMN", Width: 3, Kind: field.BCSNP},
	{Name: "START_TILE_ROW", Width: 5, Kind: field.BCSNP},
	{Name: "END_SEGMENT", Width: 2, Kind: field.BCSA},
	{Name: "END_TILE_COLUMN", Width: 3, Kind: field.BCSNP},
	{Name: "END_TILE_ROW", Width: 5, Kind: field.BCSNP},
	{Name: "COUNTRY", Width: 2, Kind: field.BCSA},
	{Name: "RESERVED_2", Width: 4, Kind: field.BCSA},
	{Name: "LOCATION", Width: 11, Kind: field.BCSA},
	{Name: "RESERVED_3", Width: 13, Kind: field.BCSA},
}

func isAIMIDB(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "AIMIDB") }

func buildAIMIDB(cetag string, cel int, cedata []byte) (*TRE, error) {
	return parseFixed(trimmed(cetag), cel, cedata, aimidbSchema)
}
