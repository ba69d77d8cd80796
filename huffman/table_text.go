package huffman

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func writeTextTable(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", int(t.Width), t.OriginalLength, t.EncodedBits)
	for s, code := range t.Codes {
		fmt.Fprintf(bw, "%X %s\n", uint64(s), code)
	}
	return bw.Flush()
}

func readTextTable(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	// codewords can be as long as the alphabet is large
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)

	t := &Table{Codes: make(CodeTable)}

	header, line, err := nextFields(sc, 0)
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrTableCorrupt)
	}
	if err != nil {
		return nil, err
	}
	if len(header) != 3 {
		return nil, fmt.Errorf("%w: line %d: header needs 3 fields, got %d", ErrTableCorrupt, line, len(header))
	}

	var values [3]uint64
	for i, field := range header {
		values[i], err = strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrTableCorrupt, line, err)
		}
	}
	t.Width = Width(values[0])
	t.OriginalLength = values[1]
	t.EncodedBits = values[2]

	for {
		fields, next, err := nextFields(sc, line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line = next

		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: entry needs 2 fields, got %d", ErrTableCorrupt, line, len(fields))
		}
		v, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrTableCorrupt, line, err)
		}
		s := Symbol(v)
		if _, dup := t.Codes[s]; dup {
			return nil, fmt.Errorf("%w: line %d: symbol %X listed twice", ErrTableCorrupt, line, v)
		}
		t.Codes[s] = fields[1]
	}
	return t, nil
}

// nextFields returns the fields of the next non-blank line after line.
func nextFields(sc *bufio.Scanner, line int) ([]string, int, error) {
	for sc.Scan() {
		line++
		if fields := strings.Fields(sc.Text()); len(fields) > 0 {
			return fields, line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, line, err
	}
	return nil, line, io.EOF
}
