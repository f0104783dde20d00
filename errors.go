package hexmerge

import (
	"errors"
	"fmt"
)

// ParseErrorType classifies why a line could not be decoded as a record.
type ParseErrorType uint

const (
	NotAHexLine      ParseErrorType = 1 // Line does not start with a colon
	MalformedHex     ParseErrorType = 2 // Invalid hex digit or odd digit count
	TooShort         ParseErrorType = 3 // Fewer than 5 decoded bytes
	ChecksumMismatch ParseErrorType = 4 // Bytes do not sum to zero
)

func (et ParseErrorType) String() string {
	switch et {
	case NotAHexLine:
		return "not a hex line"
	case MalformedHex:
		return "malformed hex"
	case TooShort:
		return "record too short"
	case ChecksumMismatch:
		return "checksum mismatch"
	}
	return "error"
}

// ParseError is returned by ParseRecord for any line that is not a valid record.
type ParseError struct {
	ErrorType ParseErrorType
	Message   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
}

func newParseError(et ParseErrorType, msg string) error {
	return &ParseError{ErrorType: et, Message: msg}
}

// IsParseError reports whether err is a ParseError of the given type.
func IsParseError(err error, et ParseErrorType) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.ErrorType == et
	}
	return false
}
