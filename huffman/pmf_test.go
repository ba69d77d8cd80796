package huffman

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPMF(t *testing.T) {
	h := RecordPMF(Symbols([]byte("CCBCA"), Width8), Width8, 2)

	assert.Equal(t, []uint64{0, 2, 4, 5}, h.Offsets)
	assert.Equal(t, map[Symbol][]uint64{
		'A': {0, 0, 0, 1},
		'B': {0, 0, 1, 1},
		'C': {0, 2, 3, 3},
	}, h.Counts)
	assert.Equal(t, []Symbol{'A', 'B', 'C'}, h.Symbols())
}

func TestRecordPMFUnalignedInterval(t *testing.T) {
	data := []byte{1, 0, 1, 0, 2, 0, 1, 0}
	h := RecordPMF(Symbols(data, Width16), Width16, 3)

	// checkpoints fall only where a symbol starts on a multiple of 3
	assert.Equal(t, []uint64{0, 6, 8}, h.Offsets)
	assert.Equal(t, []uint64{0, 2, 3}, h.Counts[1])
	assert.Equal(t, []uint64{0, 1, 1}, h.Counts[2])
}

func TestPMFWriteCSV(t *testing.T) {
	h := RecordPMF(Symbols([]byte("CCBCA"), Width8), Width8, 2)

	var buf bytes.Buffer
	require.NoError(t, h.WriteCSV(&buf))
	assert.Equal(t, ""+
		"_,0,2,4,5,\n"+
		"_41,0,0,0,1,\n"+
		"_42,0,0,1,1,\n"+
		"_43,0,2,3,3,\n", buf.String())
}

func TestPMFWriteCSVUppercaseHex(t *testing.T) {
	h := RecordPMF([]Symbol{0xBEEF, 0xBEEF}, Width16, 0)

	var buf bytes.Buffer
	require.NoError(t, h.WriteCSV(&buf))
	assert.Equal(t, "_,0,4,\n_BEEF,0,2,\n", buf.String())
}

func TestPMFEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RecordPMF(nil, Width32, 0).WriteCSV(&buf))
	assert.Equal(t, "_,0,\n", buf.String())
}

func TestEncodeWithPMF(t *testing.T) {
	data := bytes.Repeat([]byte{1, 0, 0, 0, 2, 0, 0, 0}, 4)

	var encoded, pmf bytes.Buffer
	_, _, err := Encode(&encoded, data, WithWidth(Width32), WithPMF(&pmf, 16))
	require.NoError(t, err)
	assert.Equal(t, ""+
		"_,0,16,32,\n"+
		"_1,0,2,4,\n"+
		"_2,0,2,4,\n", pmf.String())

	// the history does not change the encoded stream
	var plain bytes.Buffer
	_, _, err = Encode(&plain, data, WithWidth(Width32))
	require.NoError(t, err)
	assert.Equal(t, plain.Bytes(), encoded.Bytes())
}
