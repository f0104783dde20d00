// Package hexmerge decodes Intel HEX records and regroups the data records
// of an image by extended linear address.
package hexmerge

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// RecordType is the Intel HEX record type field.
type RecordType byte

// Constants definitions of IntelHex record types
const (
	DataRecord                   RecordType = 0x00 // Record with data bytes
	EOFRecord                    RecordType = 0x01 // Record with end of file indicator
	ExtendedSegmentAddressRecord RecordType = 0x02 // Record with extended segment address
	StartSegmentAddressRecord    RecordType = 0x03 // Record with start segment address
	ExtendedLinearAddressRecord  RecordType = 0x04 // Record with extended linear address
	StartLinearAddressRecord     RecordType = 0x05 // Record with start linear address
)

// EOFLine is the standard end of file record.
const EOFLine = ":00000001FF"

func (t RecordType) String() string {
	switch t {
	case DataRecord:
		return "data"
	case EOFRecord:
		return "eof"
	case ExtendedSegmentAddressRecord:
		return "extended segment address"
	case StartSegmentAddressRecord:
		return "start segment address"
	case ExtendedLinearAddressRecord:
		return "extended linear address"
	case StartLinearAddressRecord:
		return "start linear address"
	}
	return fmt.Sprintf("type(0x%02X)", byte(t))
}

// Record is a single decoded IntelHex line.
type Record struct {
	Type      RecordType // Record type, unknown values kept as is
	ByteCount byte       // Declared data length
	Address   uint16     // Load offset field
	Data      []byte     // Data bytes
	Line      string     // Source line, written back unchanged
}

// HighAddress decodes the upper 16 address bits carried by an extended
// linear address record. It returns false if the payload is too short.
func (r Record) HighAddress() (uint16, bool) {
	if len(r.Data) < 2 {
		return 0, false
	}
	return binary.BigEndian.Uint16(r.Data[0:2]), true
}

// ParseRecord decodes one line of IntelHex text.
func ParseRecord(line string) (Record, error) {
	if len(line) == 0 || line[0] != ':' {
		return Record{}, newParseError(NotAHexLine, "no colon char on the first line character")
	}
	bytes, err := hex.DecodeString(line[1:])
	if err != nil {
		return Record{}, newParseError(MalformedHex, err.Error())
	}
	if len(bytes) < 5 {
		return Record{}, newParseError(TooShort, "not enough data bytes")
	}
	if err := checkSum(bytes); err != nil {
		return Record{}, newParseError(ChecksumMismatch, err.Error())
	}
	return Record{
		Type:      RecordType(bytes[3]),
		ByteCount: bytes[0],
		Address:   binary.BigEndian.Uint16(bytes[1:3]),
		Data:      getRecordData(bytes),
		Line:      line,
	}, nil
}

// GenerateRecord serializes a record with a freshly computed checksum.
func GenerateRecord(t RecordType, adr uint16, data []byte) string {
	return makeLine(adr, byte(t), data)
}

// NewExtendedLinearAddress returns the extended linear address line for
// the given upper 16 address bits.
func NewExtendedLinearAddress(high uint16) string {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, high)
	return GenerateRecord(ExtendedLinearAddressRecord, 0, data)
}
