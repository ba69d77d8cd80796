package huffman

import (
	"fmt"
	"io"
)

// DefaultChunkSize is the size of the bit-stream buffers in bytes.
const DefaultChunkSize = 1 << 20

// Encoder writes codewords for a sequence of symbols as a packed bit stream.
type Encoder struct {
	output *bitWriter
	codes  map[Symbol]packedCode
}

// packedCode holds a codeword as 64-bit groups; the last group keeps the
// remaining tail bits in its low end.
type packedCode struct {
	groups []uint64
	length int
}

// NewEncoder creates an encoder that writes to w using codes.
func NewEncoder(w io.Writer, codes CodeTable) *Encoder {
	return newEncoder(w, codes, DefaultChunkSize, nil)
}

func newEncoder(w io.Writer, codes CodeTable, chunkSize int, onFlush func(uint64)) *Encoder {
	packed := make(map[Symbol]packedCode, len(codes))
	for s, code := range codes {
		packed[s] = packCode(code)
	}

	bw := newBitWriter(w, chunkSize)
	bw.onFlush = onFlush
	return &Encoder{output: bw, codes: packed}
}

func packCode(code string) packedCode {
	p := packedCode{
		groups: make([]uint64, 0, (len(code)+63)/64),
		length: len(code),
	}
	for start := 0; start < len(code); start += 64 {
		end := min(start+64, len(code))
		var g uint64
		for _, c := range code[start:end] {
			g = g<<1 | uint64(c-'0')
		}
		p.groups = append(p.groups, g)
	}
	return p
}

// Encode appends the codeword of every symbol in symbols.
func (e *Encoder) Encode(symbols []Symbol) error {
	for i, s := range symbols {
		code, ok := e.codes[s]
		if !ok {
			return fmt.Errorf("huffman: symbol %X at position %d has no codeword", uint64(s), i)
		}

		rest := code.length
		for _, g := range code.groups {
			n := min(rest, 64)
			if err := e.output.WriteBits(g, n); err != nil {
				return err
			}
			rest -= n
		}
	}
	return nil
}

// Close pads the final partial byte with zeros and flushes the stream.
func (e *Encoder) Close() error {
	return e.output.Flush()
}

// Bits returns the number of meaningful bits written so far.
func (e *Encoder) Bits() uint64 { return e.output.written }
