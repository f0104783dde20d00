package hexmerge

import (
	"encoding/binary"
	"fmt"
	"strings"
)

func calcSum(bytes []byte) byte {
	sum := 0
	for _, b := range bytes {
		sum += int(b)
	}
	sum %= 256
	sum = 256 - sum
	return byte(sum)
}

// checkSum verifies that every byte of the record, checksum included,
// adds up to zero modulo 256.
func checkSum(bytes []byte) error {
	var sum byte
	for _, b := range bytes {
		sum += b
	}
	if sum != 0 {
		last := bytes[len(bytes)-1]
		return fmt.Errorf("incorrect checksum (sum = %02X != %02X)", calcSum(bytes[:len(bytes)-1]), last)
	}
	return nil
}

// getRecordData returns the payload of a decoded record. The declared
// length is clipped so the checksum byte is never read as data.
func getRecordData(bytes []byte) []byte {
	end := 4 + int(bytes[0])
	if end > len(bytes)-1 {
		end = len(bytes) - 1
	}
	data := make([]byte, end-4)
	copy(data, bytes[4:end])
	return data
}

func makeLine(adr uint16, recordType byte, data []byte) string {
	bytes := make([]byte, 4, len(data)+5)
	bytes[0] = byte(len(data))
	binary.BigEndian.PutUint16(bytes[1:3], adr)
	bytes[3] = recordType
	bytes = append(bytes, data...)
	bytes = append(bytes, calcSum(bytes))

	var sb strings.Builder
	sb.Grow(1 + 2*len(bytes))
	sb.WriteByte(':')
	for _, b := range bytes {
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
