package x86

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Decode, wrapped in a *DecodeError so callers
// can recover the byte offset where decoding stopped.
var (
	// ErrShortRead is returned when the cursor runs out of bytes while a
	// form is still expecting a ModR/M byte, displacement, or immediate.
	ErrShortRead = errors.New("short read: instruction truncated")

	// ErrUnknownOpcode is returned when the first byte of an instruction
	// matches no known opcode prefix at any width.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrReservedEncoding is returned when a byte matches a known opcode
	// prefix but the remaining bits select a reserved, undefined encoding
	// (e.g. a grp2 ModR/M reg field of 111).
	ErrReservedEncoding = errors.New("reserved encoding")

	// ErrUnsupportedAddressing is returned for addressing forms that are
	// valid 8086 encodings but fall outside this decoder's scope (string
	// instructions, segment override prefixes, REP/LOCK prefixes), and for
	// a register source given to lea/lds/les.
	ErrUnsupportedAddressing = errors.New("unsupported addressing mode")
)

// DecodeError wraps a decode failure with the byte offset it occurred at,
// grounded the same way config.ParseError carries a file position.
type DecodeError struct {
	Offset int   // byte offset of the instruction that failed to decode
	Err    error // one of the sentinel errors above
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
