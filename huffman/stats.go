package huffman

// Stats summarizes a compression run. None of it is needed to decompress.
type Stats struct {
	Symbols         uint64  // symbols in the input, including a padded tail
	Distinct        int     // size of the alphabet
	Entropy         float64 // bits per symbol
	ExpectedLength  float64 // average codeword length in bits per symbol
	MaxCodeLength   int
	OriginalBytes   uint64
	EncodedBits     uint64
	CompressedBytes uint64
	TableBytes      uint64
}

// Ratio returns compressed size over original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalBytes == 0 {
		return 0
	}
	return float64(s.CompressedBytes) / float64(s.OriginalBytes)
}

func newStats(freq *Frequencies, codes CodeTable, originalBytes, encodedBits uint64) Stats {
	return Stats{
		Symbols:         freq.Total(),
		Distinct:        freq.Len(),
		Entropy:         freq.Entropy(),
		ExpectedLength:  freq.ExpectedLength(codes),
		MaxCodeLength:   codes.MaxLength(),
		OriginalBytes:   originalBytes,
		EncodedBits:     encodedBits,
		CompressedBytes: (encodedBits + 7) / 8,
	}
}
