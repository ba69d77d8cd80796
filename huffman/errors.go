package huffman

import "errors"

// Errors returned by this package. They are wrapped with context, so
// compare them with errors.Is.
var (
	ErrSourceUnreadable   = errors.New("huffman: source file could not be read")
	ErrWidthMismatch      = errors.New("huffman: table symbol width does not match the requested width")
	ErrStreamCorrupt      = errors.New("huffman: encoded stream or table is broken")
	ErrInvalidWidth       = errors.New("huffman: symbol width must be 1, 2, 4 or 8 bytes")
	ErrTableCorrupt       = errors.New("huffman: code table is malformed")
	ErrUnknownTableFormat = errors.New("huffman: unrecognised code table format")
)
