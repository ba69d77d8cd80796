package huffman

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// DefaultPMFInterval is the spacing of PMF checkpoints in source bytes.
const DefaultPMFInterval = 40 << 20

// PMFHistory holds cumulative symbol counts sampled while the source is
// scanned. Offsets[k] is the source byte offset of checkpoint k and
// Counts[s][k] is the number of times s occurred before that offset.
type PMFHistory struct {
	Offsets []uint64
	Counts  map[Symbol][]uint64
}

// RecordPMF counts symbols and takes a checkpoint whenever the byte offset
// of the next symbol is a multiple of interval, plus a final one at the end
// of the symbol stream. A symbol first seen after some checkpoints has zero
// counts for them.
func RecordPMF(symbols []Symbol, w Width, interval int) *PMFHistory {
	if interval <= 0 {
		interval = DefaultPMFInterval
	}

	h := &PMFHistory{Counts: map[Symbol][]uint64{}}
	freq := NewFrequencies()
	for i, s := range symbols {
		if offset := uint64(i) * uint64(w); offset%uint64(interval) == 0 {
			h.checkpoint(offset, freq)
		}
		freq.Add(s, 1)
	}
	h.checkpoint(uint64(len(symbols))*uint64(w), freq)
	return h
}

func (h *PMFHistory) checkpoint(offset uint64, freq *Frequencies) {
	h.Offsets = append(h.Offsets, offset)
	for _, s := range freq.Symbols() {
		counts := h.Counts[s]
		if counts == nil {
			counts = make([]uint64, len(h.Offsets)-1, len(h.Offsets))
		}
		h.Counts[s] = append(counts, freq.Count(s))
	}
}

// Symbols returns the recorded symbols in ascending order.
func (h *PMFHistory) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(h.Counts))
	for s := range h.Counts {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}

// WriteCSV writes the history as a table with one column per checkpoint.
// The header row lists the offsets, every other row starts with the symbol
// in uppercase hex. Each field, including the last one, is followed by a
// comma.
func (h *PMFHistory) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)

	row := make([]string, 0, len(h.Offsets)+2)
	row = append(row, "_")
	for _, offset := range h.Offsets {
		row = append(row, strconv.FormatUint(offset, 10))
	}
	if err := out.Write(append(row, "")); err != nil {
		return err
	}

	for _, s := range h.Symbols() {
		row = append(row[:0], fmt.Sprintf("_%X", uint64(s)))
		for _, n := range h.Counts[s] {
			row = append(row, strconv.FormatUint(n, 10))
		}
		if err := out.Write(append(row, "")); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}
