package huffman

import (
	"fmt"
	"sort"
	"strings"
)

// CodeTable maps each Symbol to its codeword, written as a string of '0'
// and '1' characters.
type CodeTable map[Symbol]string

// Codes derives the code table by walking t depth first, appending '0'
// for a left edge and '1' for a right edge.
//
// An alphabet with a single symbol gets the codeword "0", since an empty
// codeword cannot be located in a bit stream.
func (t *Tree) Codes() CodeTable {
	codes := make(CodeTable, t.Leaves())
	if t.Root < 0 {
		return codes
	}
	if root := &t.Nodes[t.Root]; root.IsLeaf() {
		codes[root.Symbol] = "0"
		return codes
	}

	type frame struct {
		index int
		path  string
	}
	stack := []frame{{index: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[f.index]
		if n.IsLeaf() {
			codes[n.Symbol] = f.path
			continue
		}
		stack = append(stack,
			frame{index: n.Right, path: f.path + "1"},
			frame{index: n.Left, path: f.path + "0"},
		)
	}
	return codes
}

// BuildCodes counts, builds the tree and derives the code table in one step.
func BuildCodes(symbols []Symbol) (*Frequencies, CodeTable) {
	freq := CountFrequencies(symbols)
	return freq, BuildTree(freq).Codes()
}

// MaxLength returns the length of the longest codeword.
func (c CodeTable) MaxLength() int {
	longest := 0
	for _, code := range c {
		longest = max(longest, len(code))
	}
	return longest
}

// Validate checks that every codeword is a non-empty binary string and that
// no codeword is a prefix of another.
func (c CodeTable) Validate() error {
	sorted := make([]string, 0, len(c))
	for s, code := range c {
		if code == "" {
			return fmt.Errorf("%w: symbol %X has an empty codeword", ErrTableCorrupt, uint64(s))
		}
		if strings.Trim(code, "01") != "" {
			return fmt.Errorf("%w: symbol %X has non-binary codeword %q", ErrTableCorrupt, uint64(s), code)
		}
		sorted = append(sorted, code)
	}

	// after sorting, a prefix always sorts directly before some word it prefixes
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if strings.HasPrefix(sorted[i], sorted[i-1]) {
			return fmt.Errorf("%w: codeword %q is a prefix of %q", ErrTableCorrupt, sorted[i-1], sorted[i])
		}
	}
	return nil
}
