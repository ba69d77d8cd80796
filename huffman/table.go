package huffman

import (
	"bufio"
	"fmt"
	"io"
)

// Frame is the metadata needed to decode a stream without ambiguity.
type Frame struct {
	Width          Width
	OriginalLength uint64 // bytes before compression
	EncodedBits    uint64 // meaningful bits in the encoded stream
}

// EncodedBytes returns the length of the encoded stream in bytes.
func (f Frame) EncodedBytes() uint64 { return (f.EncodedBits + 7) / 8 }

// Table is everything persisted next to an encoded stream.
type Table struct {
	Frame
	Codes CodeTable
}

// DecodeTable validates and inverts the code table.
func (t *Table) DecodeTable() (*DecodeTable, error) {
	return NewDecodeTable(t.Codes)
}

func (t *Table) validateSymbols() error {
	limit := t.Width.Max()
	for s := range t.Codes {
		if s > limit {
			return fmt.Errorf("%w: symbol %X does not fit in %d bytes", ErrTableCorrupt, uint64(s), int(t.Width))
		}
	}
	return nil
}

// TableFormat selects how a Table is serialized.
type TableFormat int

const (
	// TableText is the line based layout: a "<W> <originalLength> <encodedBits>"
	// header followed by "<hexSymbol> <codeword>" lines.
	TableText TableFormat = iota
	// TableProto is a compact protobuf wire encoding.
	TableProto
	// TableCBOR is a CBOR map with integer keys.
	TableCBOR
)

func (f TableFormat) String() string {
	switch f {
	case TableText:
		return "text"
	case TableProto:
		return "proto"
	case TableCBOR:
		return "cbor"
	}
	return fmt.Sprintf("TableFormat(%d)", int(f))
}

// ParseTableFormat parses the names returned by TableFormat.String.
func ParseTableFormat(name string) (TableFormat, error) {
	for _, f := range []TableFormat{TableText, TableProto, TableCBOR} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTableFormat, name)
}

// WriteTable serializes t to w in the given format.
func WriteTable(w io.Writer, t *Table, format TableFormat) error {
	if err := checkWidth(t.Width); err != nil {
		return err
	}
	switch format {
	case TableText:
		return writeTextTable(w, t)
	case TableProto:
		return writeProtoTable(w, t)
	case TableCBOR:
		return writeCBORTable(w, t)
	}
	return fmt.Errorf("%w: %v", ErrUnknownTableFormat, format)
}

// ReadTable parses a table in any supported format, detected from its first
// byte, and checks that it was written for symbols of the expected width.
func ReadTable(r io.Reader, expected Width) (*Table, error) {
	if err := checkWidth(expected); err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	format, err := sniffTableFormat(br)
	if err != nil {
		return nil, err
	}

	var t *Table
	switch format {
	case TableText:
		t, err = readTextTable(br)
	case TableProto:
		t, err = readProtoTable(br)
	case TableCBOR:
		t, err = readCBORTable(br)
	}
	if err != nil {
		return nil, err
	}

	if !t.Width.Valid() {
		return nil, fmt.Errorf("%w: symbol width %d", ErrTableCorrupt, int(t.Width))
	}
	if t.Width != expected {
		return nil, fmt.Errorf("%w: table has %d-byte symbols, expected %d", ErrWidthMismatch, int(t.Width), int(expected))
	}
	if err := t.validateSymbols(); err != nil {
		return nil, err
	}
	if err := t.Codes.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func sniffTableFormat(br *bufio.Reader) (TableFormat, error) {
	head, err := br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return 0, fmt.Errorf("%w: empty table", ErrTableCorrupt)
		}
		return 0, err
	}

	switch b := head[0]; {
	case b >= '0' && b <= '9', b == ' ', b == '\t', b == '\r', b == '\n':
		return TableText, nil
	case b == protoFrameTag:
		return TableProto, nil
	case b>>5 == cborMajorMap:
		return TableCBOR, nil
	}
	return 0, fmt.Errorf("%w: leading byte %#02x", ErrUnknownTableFormat, head[0])
}
