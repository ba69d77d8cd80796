package huffman

import (
	"encoding/binary"
	"fmt"
)

// Symbol is one fixed-width unsigned integer of the input alphabet.
type Symbol uint64

// Width is the number of bytes per Symbol.
type Width int

const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
	Width64 Width = 8
)

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Bits returns the width in bits.
func (w Width) Bits() int { return int(w) * 8 }

// Max returns the largest Symbol representable with w bytes.
func (w Width) Max() Symbol {
	return Symbol(uint64(1)<<uint(w.Bits()) - 1)
}

func (w Width) String() string { return fmt.Sprintf("%d-bit", w.Bits()) }

func checkWidth(w Width) error {
	if !w.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, int(w))
	}
	return nil
}

// SymbolCount returns how many Symbols of width w cover n bytes.
func SymbolCount(n int, w Width) int {
	return (n + int(w) - 1) / int(w)
}

// Symbols reinterprets data as a sequence of little-endian Symbols of width w.
// A trailing partial Symbol is zero-padded.
func Symbols(data []byte, w Width) []Symbol {
	out := make([]Symbol, SymbolCount(len(data), w))

	full := len(data) / int(w)
	for i := 0; i < full; i++ {
		out[i] = loadSymbol(data[i*int(w):], w)
	}

	if rest := data[full*int(w):]; len(rest) > 0 {
		var tail [8]byte
		copy(tail[:], rest)
		out[full] = loadSymbol(tail[:], w)
	}
	return out
}

// PutSymbol writes s into dst in little-endian order. When dst is shorter
// than w the high bytes are dropped, which truncates the final Symbol of an
// input whose length was not a multiple of w.
func PutSymbol(dst []byte, s Symbol, w Width) int {
	n := min(len(dst), int(w))
	for i := 0; i < n; i++ {
		dst[i] = byte(s >> (8 * i))
	}
	return n
}

func loadSymbol(b []byte, w Width) Symbol {
	switch w {
	case Width8:
		return Symbol(b[0])
	case Width16:
		return Symbol(binary.LittleEndian.Uint16(b))
	case Width32:
		return Symbol(binary.LittleEndian.Uint32(b))
	default:
		return Symbol(binary.LittleEndian.Uint64(b))
	}
}
