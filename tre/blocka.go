// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

// BLOCKA carries per-block image geopositioning (radar block corners).
// Fixed-width, no repeats.
var blockaSchema = []record.FieldSchema{
	{Name: "BLOCK_INSTANCE", Width: 2, Kind: field.BCSNP},
	{Name: "N_GRAY", Width: 5, Kind: field.BCSNP},
	{Name: "L_LINES", Width: 5, Kind: field.BCSNP},
	{Name: "LAYOVER_ANGLE", Width: 3, Kind: field.BCSNP},
	{Name: "SHADOW_ANGLE", Width: 3, Kind: field.BCSNP},
	{Name: "RESERVED_1", Width: 16, Kind: field.BCSA},
	{Name: "FRLC_LOC", Width: 21, Kind: field.BCSA},
	{Name: "LRLC_LOC", Width: 21, Kind: field.BCSA},
	{Name: "LRFC_LOC", Width: 21, Kind: field.BCSA},
	{Name: "FRFC_LOC", Width: 21, Kind: field.BCSA},
	{Name: "RESERVED_2", Width: 5, Kind: field.ECSA},
}

func isBLOCKA(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "BLOCKA") }

func buildBLOCKA(cetag string, cel int, cedata []byte) (*TRE, error) {
	return parseFixed(trimmed(cetag), cel, cedata, blockaSchema)
}
