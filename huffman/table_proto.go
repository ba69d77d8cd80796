package huffman

import (
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the protobuf table encoding.
//
//	message Table {
//	  uint32 width = 1;
//	  uint64 original_length = 2;
//	  uint64 encoded_bits = 3;
//	  repeated Entry entries = 4;
//	}
//	message Entry {
//	  uint64 symbol = 1;
//	  uint32 length = 2;
//	  bytes bits = 3; // MSB first, zero padded
//	}
const (
	protoWidth          protowire.Number = 1
	protoOriginalLength protowire.Number = 2
	protoEncodedBits    protowire.Number = 3
	protoEntry          protowire.Number = 4

	protoEntrySymbol protowire.Number = 1
	protoEntryLength protowire.Number = 2
	protoEntryBits   protowire.Number = 3
)

// protoFrameTag is the first byte of every protobuf table: the tag of the
// width field, which is always written.
const protoFrameTag = byte(protoWidth<<3) | byte(protowire.VarintType)

func writeProtoTable(w io.Writer, t *Table) error {
	var b []byte
	b = protowire.AppendTag(b, protoWidth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.Width))
	b = protowire.AppendTag(b, protoOriginalLength, protowire.VarintType)
	b = protowire.AppendVarint(b, t.OriginalLength)
	b = protowire.AppendTag(b, protoEncodedBits, protowire.VarintType)
	b = protowire.AppendVarint(b, t.EncodedBits)

	var entry []byte
	for s, code := range t.Codes {
		entry = entry[:0]
		entry = protowire.AppendTag(entry, protoEntrySymbol, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(s))
		entry = protowire.AppendTag(entry, protoEntryLength, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(len(code)))
		entry = protowire.AppendTag(entry, protoEntryBits, protowire.BytesType)
		entry = protowire.AppendBytes(entry, packBits(code))

		b = protowire.AppendTag(b, protoEntry, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}

	_, err := w.Write(b)
	return err
}

func readProtoTable(r io.Reader) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	t := &Table{Codes: make(CodeTable)}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protoError(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == protoWidth && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			t.Width = Width(v)
		case num == protoOriginalLength && typ == protowire.VarintType:
			t.OriginalLength, n = protowire.ConsumeVarint(b)
		case num == protoEncodedBits && typ == protowire.VarintType:
			t.EncodedBits, n = protowire.ConsumeVarint(b)
		case num == protoEntry && typ == protowire.BytesType:
			var entry []byte
			entry, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				if err := readProtoEntry(entry, t.Codes); err != nil {
					return nil, err
				}
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, protoError(protowire.ParseError(n))
		}
		b = b[n:]
	}
	return t, nil
}

func readProtoEntry(b []byte, codes CodeTable) error {
	var (
		symbol uint64
		length uint64
		bits   []byte
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protoError(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == protoEntrySymbol && typ == protowire.VarintType:
			symbol, n = protowire.ConsumeVarint(b)
		case num == protoEntryLength && typ == protowire.VarintType:
			length, n = protowire.ConsumeVarint(b)
		case num == protoEntryBits && typ == protowire.BytesType:
			bits, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protoError(protowire.ParseError(n))
		}
		b = b[n:]
	}

	if length > uint64(len(bits))*8 {
		return fmt.Errorf("%w: symbol %X declares %d bits but carries %d", ErrTableCorrupt, symbol, length, len(bits)*8)
	}
	if _, dup := codes[Symbol(symbol)]; dup {
		return fmt.Errorf("%w: symbol %X listed twice", ErrTableCorrupt, symbol)
	}
	codes[Symbol(symbol)] = unpackBits(bits, int(length))
	return nil
}

func protoError(err error) error {
	return fmt.Errorf("%w: %w", ErrTableCorrupt, err)
}

// packBits packs a '0'/'1' string MSB first.
func packBits(code string) []byte {
	out := make([]byte, (len(code)+7)/8)
	for i := 0; i < len(code); i++ {
		if code[i] == '1' {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

func unpackBits(b []byte, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		if b[i/8]&(0x80>>uint(i%8)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
