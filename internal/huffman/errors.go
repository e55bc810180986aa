package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a code is requested for a stream
	// without any symbols.
	ErrEmptyInput = errors.New("huffman: empty input")
	// ErrInvalidBit is returned when a text stream holds a character other
	// than '0' or '1'.
	ErrInvalidBit = errors.New("huffman: invalid bit character")
	// ErrTruncated is returned when a stream ends in the middle of a code
	// or header.
	ErrTruncated = errors.New("huffman: truncated stream")
	// ErrBadMagic is returned when a packed stream does not start with the
	// expected header.
	ErrBadMagic = errors.New("huffman: not a packed huffman stream")
	// ErrNotPrefixFree is returned when a set of codes cannot be decoded
	// unambiguously.
	ErrNotPrefixFree = errors.New("huffman: codes are not prefix-free")
	// ErrUnknownCode is returned when a bit sequence matches no code.
	ErrUnknownCode = errors.New("huffman: bit sequence matches no code")
	// ErrIncompleteCode is returned when a set of codes leaves a branch of
	// the tree unused, so it cannot form a strict binary tree.
	ErrIncompleteCode = errors.New("huffman: codes do not form a full tree")
	// ErrCorruptTree is returned when the tree stored in a packed stream is
	// deeper than the byte alphabet allows or repeats a symbol.
	ErrCorruptTree = errors.New("huffman: corrupt tree in packed stream")
)

// UnencodableSymbolError reports a symbol that has no code in the table
// used for encoding.
type UnencodableSymbolError struct {
	Symbol byte
	Offset uint64 // position of the symbol in the encoding input
}

func (e *UnencodableSymbolError) Error() string {
	return fmt.Sprintf("huffman: symbol %q (0x%02x) at offset %d has no code", e.Symbol, e.Symbol, e.Offset)
}
