package hexmerge

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertParseError(t *testing.T, input string, et ParseErrorType) {
	t.Helper()
	_, err := ParseRecord(input)
	require.Error(t, err, "input %q", input)
	assert.True(t, IsParseError(err, et), "input %q: got %v, want %s", input, err, et)
}

func TestParseRecord_SyntaxError(t *testing.T) {
	assertParseError(t, "00000001FF", NotAHexLine)
	assertParseError(t, "", NotAHexLine)
	assertParseError(t, " :00000001FF", NotAHexLine)
	assertParseError(t, ":qw00000001FF", MalformedHex)
	assertParseError(t, ":0000001FF", MalformedHex)
	assertParseError(t, ":00000001FF ", MalformedHex)
}

func TestParseRecord_TooShort(t *testing.T) {
	assertParseError(t, ":", TooShort)
	assertParseError(t, ":000000FF", TooShort)
}

func TestParseRecord_ChecksumError(t *testing.T) {
	assertParseError(t, ":00000001FE", ChecksumMismatch)
	assertParseError(t, ":0000000001", ChecksumMismatch)
	assertParseError(t, ":000000FF02", ChecksumMismatch)
	assertParseError(t, ":10010000214601360121470136007EFE09D2190141", ChecksumMismatch)
}

func TestParseRecord_Data(t *testing.T) {
	line := ":10010000214601360121470136007EFE09D2190140"
	rec, err := ParseRecord(line)
	require.NoError(t, err)

	assert.Equal(t, DataRecord, rec.Type)
	assert.Equal(t, byte(0x10), rec.ByteCount)
	assert.Equal(t, uint16(0x0100), rec.Address)
	assert.Equal(t, []byte{
		0x21, 0x46, 0x01, 0x36, 0x01, 0x21, 0x47, 0x01,
		0x36, 0x00, 0x7E, 0xFE, 0x09, 0xD2, 0x19, 0x01,
	}, rec.Data)
	assert.Equal(t, line, rec.Line)
}

func TestParseRecord_LowerCase(t *testing.T) {
	rec, err := ParseRecord(":00000001ff")
	require.NoError(t, err)
	assert.Equal(t, EOFRecord, rec.Type)
	assert.Equal(t, ":00000001ff", rec.Line)
}

func TestParseRecord_ClipsOverstatedLength(t *testing.T) {
	rec, err := ParseRecord(":0300000001FC")
	require.NoError(t, err)
	assert.Equal(t, byte(3), rec.ByteCount)
	assert.Equal(t, []byte{0x01}, rec.Data)
}

func TestParseRecord_UnknownType(t *testing.T) {
	rec, err := ParseRecord(":00000007F9")
	require.NoError(t, err)
	assert.Equal(t, RecordType(0x07), rec.Type)
	assert.Equal(t, "type(0x07)", rec.Type.String())
}

func TestRecord_HighAddress(t *testing.T) {
	rec, err := ParseRecord(":02000004800179")
	require.NoError(t, err)
	high, ok := rec.HighAddress()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x8001), high)

	rec, err = ParseRecord(":0100000410EB")
	require.NoError(t, err)
	_, ok = rec.HighAddress()
	assert.False(t, ok)
}

func TestGenerateRecord(t *testing.T) {
	assert.Equal(t, EOFLine, GenerateRecord(EOFRecord, 0, nil))
	assert.Equal(t, ":02000004A00159", NewExtendedLinearAddress(0xA001))
	assert.Equal(t, ":0200000480007A", NewExtendedLinearAddress(0x8000))
	assert.Equal(t, ":01001000AA45", GenerateRecord(DataRecord, 0x0010, []byte{0xAA}))
	assert.Equal(t, ":0400000501000000F6", GenerateRecord(StartLinearAddressRecord, 0, []byte{0x01, 0x00, 0x00, 0x00}))
}

func TestGenerateRecord_ChecksumSumsToZero(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0x00},
		{0xFF, 0xFF, 0xFF, 0xFF},
		{0x80, 0x00},
		make([]byte, 255),
	}
	for i := range payloads[4] {
		payloads[4][i] = byte(i)
	}

	for _, data := range payloads {
		line := GenerateRecord(DataRecord, 0xFFFF, data)
		bytes, err := hex.DecodeString(line[1:])
		require.NoError(t, err)

		var sum byte
		for _, b := range bytes {
			sum += b
		}
		assert.Zero(t, sum, "line %s", line)
	}
}

func TestGenerateRecord_RoundTrip(t *testing.T) {
	cases := []struct {
		typ  RecordType
		addr uint16
		data []byte
	}{
		{DataRecord, 0x0000, []byte{0x01, 0x02, 0x03}},
		{DataRecord, 0xFFF0, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{ExtendedLinearAddressRecord, 0, []byte{0xA0, 0x01}},
		{StartLinearAddressRecord, 0, []byte{0x08, 0x00, 0x01, 0x00}},
		{EOFRecord, 0, []byte{}},
	}

	for _, c := range cases {
		line := GenerateRecord(c.typ, c.addr, c.data)
		rec, err := ParseRecord(line)
		require.NoError(t, err, line)
		assert.Equal(t, c.typ, rec.Type)
		assert.Equal(t, c.addr, rec.Address)
		assert.Equal(t, c.data, rec.Data)
		assert.Equal(t, byte(len(c.data)), rec.ByteCount)
		assert.Equal(t, line, rec.Line)
	}
}
