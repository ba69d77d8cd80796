package huffman

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tableFormats = []TableFormat{TableText, TableProto, TableCBOR}

func TestWriteTextTable(t *testing.T) {
	table := &Table{
		Frame: Frame{Width: Width8, OriginalLength: 4, EncodedBits: 4},
		Codes: CodeTable{0x41: "0"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table, TableText))
	assert.Equal(t, "1 4 4\n41 0\n", buf.String())
}

func TestTableRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 3001)
	for i := range data {
		data[i] = byte(rng.Intn(16) + rng.Intn(16))
	}

	for _, w := range []Width{Width8, Width16, Width32, Width64} {
		_, codes := BuildCodes(Symbols(data, w))
		table := &Table{
			Frame: Frame{Width: w, OriginalLength: uint64(len(data)), EncodedBits: 12345},
			Codes: codes,
		}

		for _, format := range tableFormats {
			t.Run(w.String()+"/"+format.String(), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, WriteTable(&buf, table, format))

				got, err := ReadTable(&buf, w)
				require.NoError(t, err)
				assert.Equal(t, table.Frame, got.Frame)
				assert.Equal(t, table.Codes, got.Codes)

				want, err := table.DecodeTable()
				require.NoError(t, err)
				have, err := got.DecodeTable()
				require.NoError(t, err)
				assert.Equal(t, want, have)
			})
		}
	}
}

func TestTableRoundtripEmpty(t *testing.T) {
	table := &Table{Frame: Frame{Width: Width32}, Codes: CodeTable{}}

	for _, format := range tableFormats {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteTable(&buf, table, format))

			got, err := ReadTable(&buf, Width32)
			require.NoError(t, err)
			assert.Equal(t, table.Frame, got.Frame)
			assert.Empty(t, got.Codes)
		})
	}
}

func TestTableFormatDetection(t *testing.T) {
	table := &Table{
		Frame: Frame{Width: Width16, OriginalLength: 2, EncodedBits: 1},
		Codes: CodeTable{0xBEEF: "0"},
	}

	leading := map[TableFormat]byte{
		TableText:  '2',
		TableProto: 0x08,
		TableCBOR:  0xA4,
	}
	for format, first := range leading {
		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, table, format))
		assert.Equal(t, first, buf.Bytes()[0], format.String())
	}
}

func TestReadTableWidthMismatch(t *testing.T) {
	table := &Table{Frame: Frame{Width: Width16}, Codes: CodeTable{1: "0"}}

	for _, format := range tableFormats {
		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, table, format))

		_, err := ReadTable(&buf, Width32)
		assert.ErrorIs(t, err, ErrWidthMismatch, format.String())
	}
}

func TestReadTableMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"empty", "", ErrTableCorrupt},
		{"blank", "\n\n", ErrTableCorrupt},
		{"short header", "4 1\n", ErrTableCorrupt},
		{"bad header", "4 x 1\n", ErrTableCorrupt},
		{"invalid width", "3 1 1\n1 0\n", ErrTableCorrupt},
		{"bad symbol", "1 1 1\nZZ 0\n", ErrTableCorrupt},
		{"missing codeword", "1 1 1\n41\n", ErrTableCorrupt},
		{"symbol too wide", "1 1 1\n1FF 0\n", ErrTableCorrupt},
		{"duplicate symbol", "1 2 2\n41 0\n41 1\n", ErrTableCorrupt},
		{"non binary", "1 1 2\n41 02\n", ErrTableCorrupt},
		{"not prefix free", "1 2 3\n41 0\n42 01\n", ErrTableCorrupt},
		{"unknown format", "\xff\x00", ErrUnknownTableFormat},
		{"broken proto", "\x08", ErrTableCorrupt},
		{"broken cbor", "\xa4\x01", ErrTableCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.input), Width8)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReadTableIgnoresBlankLines(t *testing.T) {
	got, err := ReadTable(strings.NewReader("\n1 3 3\n\n41 0\n  42   1  \n"), Width8)
	require.NoError(t, err)
	assert.Equal(t, Frame{Width: Width8, OriginalLength: 3, EncodedBits: 3}, got.Frame)
	assert.Equal(t, CodeTable{0x41: "0", 0x42: "1"}, got.Codes)
}

func TestParseTableFormat(t *testing.T) {
	for _, format := range tableFormats {
		got, err := ParseTableFormat(format.String())
		require.NoError(t, err)
		assert.Equal(t, format, got)
	}

	_, err := ParseTableFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownTableFormat)
}

func TestPackBits(t *testing.T) {
	for _, code := range []string{"0", "1", "10110", "01010101", "111111111", strings.Repeat("10", 77)} {
		packed := packBits(code)
		assert.Len(t, packed, (len(code)+7)/8)
		assert.Equal(t, code, unpackBits(packed, len(code)))
	}
}
