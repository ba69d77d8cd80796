package huffman

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// cborMajorMap is the CBOR major type of a map, which every CBOR table
// starts with.
const cborMajorMap = 5

type cborTable struct {
	Width          uint8       `cbor:"1,keyasint"`
	OriginalLength uint64      `cbor:"2,keyasint"`
	EncodedBits    uint64      `cbor:"3,keyasint"`
	Entries        []cborEntry `cbor:"4,keyasint"`
}

type cborEntry struct {
	_      struct{} `cbor:",toarray"`
	Symbol uint64
	Code   string
}

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error
	cborEncMode, err = cbor.EncOptions{Sort: cbor.SortCoreDeterministic}.EncMode()
	if err != nil {
		panic(err)
	}
	cborDecMode, err = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
}

func writeCBORTable(w io.Writer, t *Table) error {
	ct := cborTable{
		Width:          uint8(t.Width),
		OriginalLength: t.OriginalLength,
		EncodedBits:    t.EncodedBits,
		Entries:        make([]cborEntry, 0, len(t.Codes)),
	}
	for s, code := range t.Codes {
		ct.Entries = append(ct.Entries, cborEntry{Symbol: uint64(s), Code: code})
	}
	return cborEncMode.NewEncoder(w).Encode(&ct)
}

func readCBORTable(r io.Reader) (*Table, error) {
	var ct cborTable
	if err := cborDecMode.NewDecoder(r).Decode(&ct); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTableCorrupt, err)
	}

	t := &Table{
		Frame: Frame{
			Width:          Width(ct.Width),
			OriginalLength: ct.OriginalLength,
			EncodedBits:    ct.EncodedBits,
		},
		Codes: make(CodeTable, len(ct.Entries)),
	}
	for _, e := range ct.Entries {
		if _, dup := t.Codes[Symbol(e.Symbol)]; dup {
			return nil, fmt.Errorf("%w: symbol %X listed twice", ErrTableCorrupt, e.Symbol)
		}
		t.Codes[Symbol(e.Symbol)] = e.Code
	}
	return t, nil
}
