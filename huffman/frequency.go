package huffman

import "math"

// Frequencies maps each Symbol seen in the input to its occurrence count.
//
// Symbols are remembered in first-occurrence order. That order is the
// insertion index the tree builder uses to break ties between equal weights.
type Frequencies struct {
	order  []Symbol
	counts map[Symbol]uint64
	total  uint64
}

// NewFrequencies returns an empty mapping.
func NewFrequencies() *Frequencies {
	return &Frequencies{counts: make(map[Symbol]uint64)}
}

// CountFrequencies scans symbols once and returns their frequencies.
func CountFrequencies(symbols []Symbol) *Frequencies {
	f := NewFrequencies()
	for _, s := range symbols {
		f.Add(s, 1)
	}
	return f
}

// Add increases the count of s by n.
func (f *Frequencies) Add(s Symbol, n uint64) {
	if n == 0 {
		return
	}
	if _, ok := f.counts[s]; !ok {
		f.order = append(f.order, s)
	}
	f.counts[s] += n
	f.total += n
}

// Count returns the number of times s was seen.
func (f *Frequencies) Count(s Symbol) uint64 { return f.counts[s] }

// Len returns the number of distinct symbols.
func (f *Frequencies) Len() int { return len(f.order) }

// Total returns the sum of all counts.
func (f *Frequencies) Total() uint64 { return f.total }

// Symbols returns the distinct symbols in insertion order.
func (f *Frequencies) Symbols() []Symbol { return f.order }

// Entropy returns the Shannon entropy in bits per symbol.
func (f *Frequencies) Entropy() float64 {
	if f.total == 0 {
		return 0
	}
	total := float64(f.total)

	var h float64
	for _, s := range f.order {
		p := float64(f.counts[s]) / total
		h -= p * math.Log2(p)
	}
	return h
}

// ExpectedLength returns the average codeword length in bits per symbol
// when coding with codes.
func (f *Frequencies) ExpectedLength(codes CodeTable) float64 {
	if f.total == 0 {
		return 0
	}
	total := float64(f.total)

	var l float64
	for _, s := range f.order {
		l += float64(len(codes[s])) * float64(f.counts[s]) / total
	}
	return l
}
