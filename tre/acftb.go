// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

// ACFTB carries airborne sensor/platform metadata. It is a straight
// fixed-width field sequence — a degenerate case of the record engine with
// no repeats or dynamic widths.
var acftbSchema = []record.FieldSchema{
	{Name: "AC_MSN_ID", Width: 20, Kind: field.ECSA},
	{Name: "AC_TAIL_NO", Width: 10, Kind: field.ECSA},
	{Name: "AC_TO", Width: 12, Kind: field.BCSNP},
	{Name: "SENSOR_ID_TYPE", Width: 4, Kind: field.BCSA},
	{Name: "SENSOR_ID", Width: 6, Kind: field.BCSA},
	{Name: "SCENE_SOURCE", Width: 1, Kind: field.BCSNP},
	{Name: "SCNUM", Width: 6, Kind: field.BCSNP},
	{Name: "PDATE", Width: 8, Kind: field.BCSNP},
	{Name: "IMHOSTNO", Width: 6, Kind: field.BCSNP},
	{Name: "IMREQID", Width: 5, Kind: field.BCSNP},
	{Name: "MPLAN", Width: 3, Kind: field.BCSNP},
	{Name: "ENTLOC", Width: 25, Kind: field.BCSA},
	{Name: "LOC_ACCY", Width: 6, Kind: field.BCSNP},
	{Name: "ENTELV", Width: 6, Kind: field.BCSN},
	{Name: "ELV_UNIT", Width: 1, Kind: field.BCSA},
	{Name: "EXITLOC", Width: 25, Kind: field.BCSA},
	{Name: "EXITELV", Width: 6, Kind: field.BCSN},
	{Name: "TMAP", Width: 7, Kind: field.BCSN},
	{Name: "ROW_SPACING", Width: 7, Kind: field.BCSNP},
	{Name: "ROW_SPACING_UNITS", Width: 1, Kind: field.BCSA},
	{Name: "COL_SPACING", Width: 7, Kind: field.BCSNP},
	{Name: "COL_SPACING_UNITS", Width: 1, Kind: field.BCSA},
	{Name: "FOCAL_LENGTH", Width: 6, Kind: field.BCSNP},
	{Name: "SENSERIAL", Width: 6, Kind: field.BCSA},
	{Name: "ABSWVER", Width: 7, Kind: field.BCSA},
	{Name: "CAL_DATE", Width: 8, Kind: field.BCSNP},
	{Name: "PATCH_TOT", Width: 4, Kind: field.BCSNP},
	{Name: "MTI_TOT", Width: 3, Kind: field.BCSNP},
}

func isACFTB(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "ACFTB") }

func buildACFTB(cetag string, cel int, cedata []byte) (*TRE, error) {
	return parseFixed(trimmed(cetag), cel, cedata, acftbSchema)
}
