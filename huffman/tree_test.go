package huffman

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountFrequencies(t *testing.T) {
	freq := CountFrequencies([]Symbol{7, 3, 7, 7, 1, 3})

	assert.Equal(t, []Symbol{7, 3, 1}, freq.Symbols())
	assert.Equal(t, uint64(3), freq.Count(7))
	assert.Equal(t, uint64(2), freq.Count(3))
	assert.Equal(t, uint64(1), freq.Count(1))
	assert.Equal(t, uint64(0), freq.Count(42))
	assert.Equal(t, 3, freq.Len())
	assert.Equal(t, uint64(6), freq.Total())
}

func TestFrequencyConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 4099)
	rng.Read(data)

	for _, w := range []Width{Width8, Width16, Width32, Width64} {
		symbols := Symbols(data, w)
		freq := CountFrequencies(symbols)

		var sum uint64
		for _, s := range freq.Symbols() {
			sum += freq.Count(s)
		}
		assert.Equal(t, uint64(len(symbols)), sum, "width %d", w)
		assert.Equal(t, uint64(len(symbols)), freq.Total(), "width %d", w)
	}
}

func TestEntropy(t *testing.T) {
	assert.Zero(t, NewFrequencies().Entropy())
	assert.Zero(t, CountFrequencies([]Symbol{1, 1, 1}).Entropy())
	assert.InDelta(t, 1.0, CountFrequencies([]Symbol{1, 2, 1, 2}).Entropy(), 1e-12)
	assert.InDelta(t, 2.0, CountFrequencies([]Symbol{1, 2, 3, 4}).Entropy(), 1e-12)
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(NewFrequencies())
	assert.Equal(t, -1, tree.Root)
	assert.Empty(t, tree.Nodes)
	assert.Empty(t, tree.Codes())

	var buf bytes.Buffer
	require.NoError(t, tree.Format(&buf))
	assert.Equal(t, "(empty)\n", buf.String())
}

func TestBuildTreeSingleLeaf(t *testing.T) {
	tree := BuildTree(CountFrequencies([]Symbol{0x41, 0x41, 0x41, 0x41}))
	require.Len(t, tree.Nodes, 1)
	assert.Equal(t, 0, tree.Root)
	assert.True(t, tree.Nodes[0].IsLeaf())
	assert.Equal(t, CodeTable{0x41: "0"}, tree.Codes())
}

func TestBuildTreeTieBreak(t *testing.T) {
	// frequencies {0:2, 1:2, 2:3}; 0 and 1 tie and merge first
	tree := BuildTree(CountFrequencies([]Symbol{0, 0, 1, 1, 2, 2, 2}))

	require.Len(t, tree.Nodes, 5)
	assert.Equal(t, Node{Weight: 4, Left: 0, Right: 1}, tree.Nodes[3])
	assert.Equal(t, Node{Weight: 7, Left: 2, Right: 3}, tree.Nodes[4])
	assert.Equal(t, 4, tree.Root)
	assert.Equal(t, 3, tree.Leaves())

	assert.Equal(t, CodeTable{2: "0", 0: "10", 1: "11"}, tree.Codes())
}

func TestBuildTreeInsertionOrder(t *testing.T) {
	_, first := BuildCodes([]Symbol{5, 5, 7, 7, 9, 9, 9})
	_, again := BuildCodes([]Symbol{5, 5, 7, 7, 9, 9, 9})
	_, swapped := BuildCodes([]Symbol{7, 7, 5, 5, 9, 9, 9})

	assert.Equal(t, first, again)
	assert.Equal(t, CodeTable{9: "0", 5: "10", 7: "11"}, first)
	assert.Equal(t, CodeTable{9: "0", 7: "10", 5: "11"}, swapped)
}

func TestChildrenPrecedeParents(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	symbols := make([]Symbol, 5000)
	for i := range symbols {
		symbols[i] = Symbol(rng.Intn(300))
	}

	tree := BuildTree(CountFrequencies(symbols))
	for i, n := range tree.Nodes {
		if n.IsLeaf() {
			assert.Equal(t, -1, n.Right)
			continue
		}
		assert.Less(t, n.Left, i)
		assert.Less(t, n.Right, i)
		assert.Equal(t, tree.Nodes[n.Left].Weight+tree.Nodes[n.Right].Weight, n.Weight)
	}
	assert.Equal(t, len(tree.Nodes)-1, tree.Root)
	assert.Equal(t, uint64(len(symbols)), tree.Nodes[tree.Root].Weight)
}

func TestTreeFormat(t *testing.T) {
	tree := BuildTree(CountFrequencies([]Symbol{0, 0, 1, 1, 2, 2, 2}))

	var buf bytes.Buffer
	require.NoError(t, tree.Format(&buf))

	expected := strings.Join([]string{
		"* (7)",
		"    0-2 (3)",
		"    1-* (4)",
		"        0-0 (2)",
		"        1-1 (2)",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}
