// Package huffman implements Huffman coding over fixed-width symbols.
//
// The input is read as a sequence of unsigned integers of 1, 2, 4 or 8
// bytes. Compression builds an optimal prefix code from the symbol
// frequencies, writes the packed bit stream, and persists the code table
// together with the frame metadata needed to undo it. Decompression uses
// only the persisted table and the encoded stream.
//
// For an input file P, Compress writes P.hc (the bit stream) and P.hct (the
// table); Decompress reads both and writes P_decoded.
package huffman

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// File name suffixes of the artifacts produced for an input path.
const (
	EncodedSuffix = ".hc"
	TableSuffix   = ".hct"
	DecodedSuffix = "_decoded"
)

// Encode compresses data into dst and returns the table needed to decode it.
func Encode(dst io.Writer, data []byte, opts ...Option) (*Table, Stats, error) {
	o := newOptions(opts...)
	if err := checkWidth(o.Width); err != nil {
		return nil, Stats{}, err
	}

	o.Log.Debugw("building table", "width", o.Width, "bytes", len(data))
	symbols := Symbols(data, o.Width)
	freq, codes := BuildCodes(symbols)

	if o.PMF != nil {
		o.Log.Debugw("writing pmf history", "interval", o.PMFInterval)
		if err := RecordPMF(symbols, o.Width, o.PMFInterval).WriteCSV(o.PMF); err != nil {
			return nil, Stats{}, err
		}
	}

	o.Log.Debugw("encoding", "symbols", len(symbols), "distinct", freq.Len())
	enc := newEncoder(dst, codes, o.ChunkSize, o.report(PhaseEncode, 0))
	if err := enc.Encode(symbols); err != nil {
		return nil, Stats{}, err
	}
	if err := enc.Close(); err != nil {
		return nil, Stats{}, err
	}

	t := &Table{
		Frame: Frame{
			Width:          o.Width,
			OriginalLength: uint64(len(data)),
			EncodedBits:    enc.Bits(),
		},
		Codes: codes,
	}
	return t, newStats(freq, codes, t.OriginalLength, t.EncodedBits), nil
}

// Decode reverses Encode, reading the bit stream from src and writing the
// original bytes to dst.
func Decode(dst io.Writer, src io.Reader, t *Table, opts ...Option) error {
	o := newOptions(opts...)
	if err := checkWidth(t.Width); err != nil {
		return err
	}

	dt, err := t.DecodeTable()
	if err != nil {
		return err
	}

	o.Log.Debugw("decoding", "bits", t.EncodedBits, "bytes", t.OriginalLength, "maxCodeLength", dt.MaxLength())
	dec := newDecoder(src, dt, t.Frame, o.ChunkSize, o.report(PhaseDecode, t.OriginalLength))
	_, err = dec.WriteTo(dst)
	return err
}

// Compress reads the file at path and writes path.hc and path.hct.
//
// On error the artifacts may have been partially written and must not be
// used.
func Compress(path string, opts ...Option) (Stats, error) {
	o := newOptions(opts...)

	o.Log.Debugw("loading source", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	var stats Stats
	var table *Table
	err = writeFile(path+EncodedSuffix, func(w io.Writer) error {
		table, stats, err = Encode(w, data, opts...)
		return err
	})
	if err != nil {
		return Stats{}, err
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, table, o.TableFormat); err != nil {
		return Stats{}, err
	}
	stats.TableBytes = uint64(buf.Len())
	err = writeFile(path+TableSuffix, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
	if err != nil {
		return Stats{}, err
	}

	logStats(o, stats)
	return stats, nil
}

// Decompress reads path.hc and path.hct and writes path_decoded.
//
// The table must have been written for the configured symbol width. On
// error path_decoded may have been partially written and must not be used.
func Decompress(path string, opts ...Option) error {
	o := newOptions(opts...)

	o.Log.Debugw("loading table", "path", path+TableSuffix)
	table, err := readTableFile(path+TableSuffix, o.Width)
	if err != nil {
		return err
	}

	src, err := os.Open(path + EncodedSuffix)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer src.Close()

	return writeFile(path+DecodedSuffix, func(w io.Writer) error {
		return Decode(w, src, table, opts...)
	})
}

func readTableFile(path string, w Width) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer f.Close()

	t, err := ReadTable(f, w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func logStats(o Options, s Stats) {
	o.Log.Infof("entropy of the source is %.2f bits", s.Entropy)
	o.Log.Infof("expected length of codewords: %.2f", s.ExpectedLength)
	o.Log.Infof("size of the table is %d bytes", s.TableBytes)
	o.Log.Infof("original size: %d bytes", s.OriginalBytes)
	o.Log.Infof("compressed size: %d bytes", s.CompressedBytes)
	o.Log.Infof("compression rate: %.2f%%", s.Ratio()*100)
}
