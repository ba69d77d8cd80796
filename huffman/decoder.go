package huffman

import (
	"bufio"
	"fmt"
	"io"
)

// DecodeTable maps codewords back to symbols.
type DecodeTable struct {
	symbols map[string]Symbol
	maxLen  int
}

// NewDecodeTable inverts codes. It fails with ErrTableCorrupt when the
// codewords are not a valid prefix-free code.
func NewDecodeTable(codes CodeTable) (*DecodeTable, error) {
	if err := codes.Validate(); err != nil {
		return nil, err
	}

	dt := &DecodeTable{symbols: make(map[string]Symbol, len(codes))}
	for s, code := range codes {
		dt.symbols[code] = s
		dt.maxLen = max(dt.maxLen, len(code))
	}
	return dt, nil
}

// Lookup returns the symbol for code.
func (dt *DecodeTable) Lookup(code string) (Symbol, bool) {
	s, ok := dt.symbols[code]
	return s, ok
}

// Len returns the number of codewords.
func (dt *DecodeTable) Len() int { return len(dt.symbols) }

// MaxLength returns the length of the longest codeword.
func (dt *DecodeTable) MaxLength() int { return dt.maxLen }

// Decoder reconstructs the original bytes from a packed bit stream.
type Decoder struct {
	input     *bitReader
	table     *DecodeTable
	frame     Frame
	chunkSize int
	progress  func(uint64)
}

// NewDecoder creates a decoder reading the encoded stream from r.
func NewDecoder(r io.Reader, table *DecodeTable, frame Frame) *Decoder {
	return newDecoder(r, table, frame, DefaultChunkSize, nil)
}

func newDecoder(r io.Reader, table *DecodeTable, frame Frame, chunkSize int, progress func(uint64)) *Decoder {
	return &Decoder{
		input:     newBitReader(bufio.NewReaderSize(r, chunkSize)),
		table:     table,
		frame:     frame,
		chunkSize: chunkSize,
		progress:  progress,
	}
}

// WriteTo decodes the whole stream into w.
//
// Decoding stops once the original byte length has been produced or the
// declared number of encoded bits has been consumed. Both must be reached
// together, otherwise the stream or table is inconsistent and
// ErrStreamCorrupt is returned. Output written before the error must not
// be trusted.
func (d *Decoder) WriteTo(w io.Writer) (int64, error) {
	out := bufio.NewWriterSize(w, d.chunkSize)
	width := int(d.frame.Width)

	var (
		consumed  uint64
		produced  uint64
		reported  uint64
		symbol    [8]byte
		candidate = make([]byte, 0, d.table.MaxLength())
	)

	for produced < d.frame.OriginalLength && consumed < d.frame.EncodedBits {
		bit, err := d.input.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return int64(produced), err
		}

		candidate = append(candidate, '0'+bit)
		if consumed+uint64(len(candidate)) > d.frame.EncodedBits {
			return int64(produced), fmt.Errorf("%w: codeword runs past the declared %d bits", ErrStreamCorrupt, d.frame.EncodedBits)
		}

		s, ok := d.table.symbols[string(candidate)]
		if !ok {
			if len(candidate) >= d.table.maxLen {
				return int64(produced), fmt.Errorf("%w: no codeword matches at bit %d", ErrStreamCorrupt, consumed)
			}
			continue
		}

		n := min(uint64(width), d.frame.OriginalLength-produced)
		PutSymbol(symbol[:n], s, d.frame.Width)
		if _, err := out.Write(symbol[:n]); err != nil {
			return int64(produced), err
		}

		produced += n
		consumed += uint64(len(candidate))
		candidate = candidate[:0]

		if d.progress != nil && produced-reported >= uint64(d.chunkSize) {
			reported = produced
			d.progress(produced)
		}
	}

	if err := out.Flush(); err != nil {
		return int64(produced), err
	}

	if consumed != d.frame.EncodedBits {
		return int64(produced), fmt.Errorf("%w: consumed %d of %d encoded bits", ErrStreamCorrupt, consumed, d.frame.EncodedBits)
	}
	if produced != d.frame.OriginalLength {
		return int64(produced), fmt.Errorf("%w: produced %d of %d bytes", ErrStreamCorrupt, produced, d.frame.OriginalLength)
	}
	if d.progress != nil && produced != reported {
		d.progress(produced)
	}
	return int64(produced), nil
}
