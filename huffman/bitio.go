package huffman

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// bitWriter packs bits MSB first into a chunk buffer, which is handed to
// the output when it fills up. Full 64-bit groups therefore land in
// big-endian byte order.
type bitWriter struct {
	output    io.Writer
	bits      *bitio.Writer
	chunk     *bytes.Buffer
	chunkSize int

	written uint64 // meaningful bits, excluding padding
	flushed uint64 // bytes handed to output
	onFlush func(bytes uint64)
}

func newBitWriter(w io.Writer, chunkSize int) *bitWriter {
	chunkSize = max(8, chunkSize&^7)
	chunk := bytes.NewBuffer(make([]byte, 0, chunkSize+8))
	return &bitWriter{
		output:    w,
		bits:      bitio.NewWriter(chunk),
		chunk:     chunk,
		chunkSize: chunkSize,
	}
}

// WriteBits writes the low n bits of v, most significant first. n must be
// in [0, 64].
func (bw *bitWriter) WriteBits(v uint64, n int) error {
	if n == 0 {
		return nil
	}
	if err := bw.bits.WriteBits(v&lowMask(n), uint8(n)); err != nil {
		return err
	}
	bw.written += uint64(n)

	if bw.chunk.Len() >= bw.chunkSize {
		return bw.flushChunk()
	}
	return nil
}

func (bw *bitWriter) flushChunk() error {
	if bw.chunk.Len() == 0 {
		return nil
	}
	n, err := bw.chunk.WriteTo(bw.output)
	if err != nil {
		return err
	}
	bw.flushed += uint64(n)
	if bw.onFlush != nil {
		bw.onFlush(bw.flushed)
	}
	return nil
}

// Flush pads the pending bits with zeros to the next byte boundary and
// writes everything out.
func (bw *bitWriter) Flush() error {
	if _, err := bw.bits.Align(); err != nil {
		return err
	}
	return bw.flushChunk()
}

// bitReader yields the bits of a byte stream MSB first.
type bitReader struct {
	bits *bitio.Reader
}

func newBitReader(r io.Reader) *bitReader {
	return &bitReader{bits: bitio.NewReader(r)}
}

// ReadBit returns the next bit, or io.EOF once the input is exhausted.
func (br *bitReader) ReadBit() (byte, error) {
	v, err := br.bits.ReadBits(1)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func lowMask(n int) uint64 { return uint64(1)<<uint(n) - 1 }
