// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"strings"

	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/bitset"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

func isBANDSB(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "BANDSB") }

func bit(n int) *int { return &n }

// buildBANDSB decodes band-independent and per-band spectral calibration.
// From RADIOMETRIC_ADJUSTMENT_SURFACE on, every field except
// WAVE_LENGTH_UNIT is gated by a bit in the 32-bit EXISTENCE_MASK word:
// absent bits mean the field is not present in the stream at all, not
// merely defaulted. WAVE_LENGTH_UNIT has no mask bit and is always read.
// NUM_AUX_B/NUM_AUX_C, present iff their shared mask bit (0) is set, each introduce a format-tagged
// auxiliary parameter block — one format/unit pair followed by COUNT
// per-band values for the band-level ("B") block, and a single cube-level
// value for the cube-level ("C") block.
func buildBANDSB(cetag string, cel int, cedata []byte) (*TRE, error) {
	cur := record.NewCursor(cedata)

	var count int64
	mask := bitset.New(32)

	count_ := record.FieldSchema{Name: "COUNT", Width: 5, Kind: field.BCSNP, Effect: func(e *record.Engine, v field.Value) error {
		count = v.Int()
		return nil
	}}

	existenceMask := record.FieldSchema{Name: "EXISTENCE_MASK", Width: 4, Kind: field.UInt32, Effect: func(e *record.Engine, v field.Value) error {
		mask.SetFromU32(v.Uint32())
		e.MaskGate = mask.Get
		return nil
	}}

	waveLengthUnit := record.FieldSchema{Name: "WAVE_LENGTH_UNIT", Width: 1, Kind: field.BCSA, Effect: func(e *record.Engine, v field.Value) error {
		var tail []record.FieldSchema
		for n := int64(0); n < count; n++ {
			tail = append(tail, bandsbBandSchema()...)
		}
		tail = append(tail,
			record.FieldSchema{Name: "NUM_AUX_B", Width: 2, Kind: field.BCSNP, MaskBit: bit(0), Effect: func(e *record.Engine, v field.Value) error {
				e.PushFront(bandsbAuxSchema("B", int(v.Int()), int(count))...)
				return nil
			}},
			record.FieldSchema{Name: "NUM_AUX_C", Width: 2, Kind: field.BCSNP, MaskBit: bit(0), Effect: func(e *record.Engine, v field.Value) error {
				e.PushFront(bandsbAuxSchema("C", int(v.Int()), 1)...)
				return nil
			}},
		)
		e.PushFront(tail...)
		return nil
	}}

	initial := []record.FieldSchema{
		count_,
		{Name: "RADIOMETRIC_QUANTITY", Width: 24, Kind: field.BCSA},
		{Name: "RADIOMETRIC_QUANTITY_UNIT", Width: 1, Kind: field.BCSA},
		{Name: "SCALE_FACTOR", Width: 4, Kind: field.IEEE754Float},
		{Name: "ADDITIVE_FACTOR", Width: 4, Kind: field.IEEE754Float},
		{Name: "ROW_GSD", Width: 7, Kind: field.BCSNP},
		{Name: "ROW_GSD_UNIT", Width: 1, Kind: field.BCSA},
		{Name: "COL_GSD", Width: 7, Kind: field.BCSNP},
		{Name: "COL_GSD_UNIT", Width: 1, Kind: field.BCSA},
		{Name: "SPT_RESP_ROW", Width: 7, Kind: field.BCSNP},
		{Name: "SPT_RESP_UNIT_ROW", Width: 1, Kind: field.BCSA},
		{Name: "SPT_RESP_COL", Width: 7, Kind: field.BCSNP},
		{Name: "SPT_RESP_UNIT_COL", Width: 1, Kind: field.BCSA},
		{Name: "DATA_FLD_1", Width: 48, Kind: field.ECSA},
		existenceMask,
		{Name: "RADIOMETRIC_ADJUSTMENT_SURFACE", Width: 24, Kind: field.BCSA, MaskBit: bit(31)},
		{Name: "ATMOSPHERIC_ADJUSTMENT_ALTITUDE", Width: 4, Kind: field.IEEE754Float, MaskBit: bit(31)},
		{Name: "DIAMETER", Width: 7, Kind: field.BCSNP, MaskBit: bit(30)},
		{Name: "DATA_FLD_2", Width: 4, Kind: field.BCSA, MaskBit: bit(29)},
		waveLengthUnit,
	}

	eng := record.NewEngine(cur, initial)
	if err := eng.Run(); err != nil {
		return nil, err
	}
	return &TRE{Tag: trimmed(cetag), CEL: cel, Raw: cedata, Fields: eng.Fields()}, nil
}

func bandsbBandSchema() []record.FieldSchema {
	return []record.FieldSchema{
		{Name: "BANDID_N", Width: 50, Kind: field.BCSA, MaskBit: bit(28)},
		{Name: "BAD_BAND_N", Width: 1, Kind: field.BCSNP, MaskBit: bit(27)},
		{Name: "NIIRS_N", Width: 3, Kind: field.BCSNP, MaskBit: bit(26)},
		{Name: "FOCAL_LEN_N", Width: 5, Kind: field.BCSNP, MaskBit: bit(25)},
		{Name: "CWAVE_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(24)},
		{Name: "FWHM_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(23)},
		{Name: "FWHM_UNC_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(22)},
		{Name: "NOM_WAVE_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(21)},
		{Name: "NOM_WAV_UNC_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(20)},
		{Name: "LBOUND_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(19)},
		{Name: "UBOUND_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(19)},
		{Name: "SCALE_FACTOR_N", Width: 4, Kind: field.IEEE754Float, MaskBit: bit(18)},
		{Name: "ADDITIVE_FACTOR_N", Width: 4, Kind: field.IEEE754Float, MaskBit: bit(18)},
		{Name: "START_TIME_N", Width: 16, Kind: field.BCSNP, MaskBit: bit(17)},
		{Name: "INT_TIME_N", Width: 6, Kind: field.BCSNP, MaskBit: bit(16)},
		{Name: "CALDRK_N", Width: 6, Kind: field.BCSNP, MaskBit: bit(15)},
		{Name: "CALIBRATION_SENSITIVITY_N", Width: 5, Kind: field.BCSNP, MaskBit: bit(15)},
		{Name: "ROW_GSD_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(14)},
		{Name: "ROW_GSD_UNC_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(13)},
		{Name: "ROW_GSD_UNIT_N", Width: 1, Kind: field.BCSA, MaskBit: bit(14)},
		{Name: "COL_GSD_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(14)},
		{Name: "COL_GSD_UNC_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(13)},
		{Name: "COL_GSD_UNIT_N", Width: 1, Kind: field.BCSA, MaskBit: bit(14)},
		{Name: "BKNOISE_N", Width: 5, Kind: field.BCSNP, MaskBit: bit(12)},
		{Name: "SCNNOISE_N", Width: 5, Kind: field.BCSNP, MaskBit: bit(12)},
		{Name: "SPT_RESP_FUNCTION_ROW_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(11)},
		{Name: "SPT_RESP_UNC_ROW_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(10)},
		{Name: "SPT_RESP_UNIT_ROW_N", Width: 1, Kind: field.BCSA, MaskBit: bit(11)},
		{Name: "SPT_RESP_FUNCTION_COL_N", Width: 7, Kind: field.BCSNP, MaskBit: bit(11)},
		{Name: "SPT_RESP_UNC_COL_N", Width: 7, Kind: field.BCSA, MaskBit: bit(10)},
		{Name: "SPT_RESP_UNIT_COL_N", Width: 1, Kind: field.BCSA, MaskBit: bit(11)},
		{Name: "DATA_FLD_3_N", Width: 2, Kind: field.ECSA, MaskBit: bit(9)},
		{Name: "DATA_FLD_4_N", Width: 3, Kind: field.ECSA, MaskBit: bit(8)},
		{Name: "DATA_FLD_5_N", Width: 4, Kind: field.ECSA, MaskBit: bit(7)},
		{Name: "DATA_FLD_6_N", Width: 6, Kind: field.ECSA, MaskBit: bit(6)},
	}
}

// bandsbAuxSchema builds level's (band "B" or cube "C") auxiliary parameter
// block: numAux repetitions of a format/unit pair followed by valueCount
// format-typed values (one per band for "B", one for the whole cube for
// "C").
func bandsbAuxSchema(level string, numAux, valueCount int) []record.FieldSchema {
	formatName, unitName, intName, realName, strName := "BAPF_M", "UBAP_M", "APN_M_N", "APR_M_N", "APA_M_N"
	if level == "C" {
		formatName, unitName, intName, realName, strName = "CAPF_K", "UCAP_K", "APN_K", "APR_K", "APA_K"
	}

	var out []record.FieldSchema
	for i := 0; i < numAux; i++ {
		var format string
		out = append(out,
			record.FieldSchema{Name: formatName, Width: 1, Kind: field.BCSA, Effect: func(e *record.Engine, v field.Value) error {
				format = strings.TrimSpace(v.Text())
				return nil
			}},
			record.FieldSchema{Name: unitName, Width: 7, Kind: field.BCSA, Effect: func(e *record.Engine, v field.Value) error {
				kind, width, name := auxValueKind(format, intName, realName, strName)
				var values []record.FieldSchema
				for n := 0; n < valueCount; n++ {
					values = append(values, record.FieldSchema{Name: name, Width: width, Kind: kind})
				}
				e.PushFront(values...)
				return nil
			}},
		)
	}
	return out
}

// auxValueKind maps a BAPF/CAPF format code to the field kind, width, and
// schema name of the value that follows it: "I" integer, "R" real, anything
// else treated as a character string, per the format codes the NITF
// standard defines for band/cube auxiliary parameters.
func auxValueKind(formatCode, intName, realName, strName string) (field.Kind, int, string) {
	switch formatCode {
	case "I":
		return field.BCSN, 10, intName
	case "R":
		return field.IEEE754Float, 4, realName
	default:
		return field.BCSA, 20, strName
	}
}
