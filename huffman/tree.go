package huffman

import (
	"container/heap"
	"fmt"
	"io"
	"strings"
)

// Node is one entry of the tree arena.
//
// Leaves have Left == Right == -1. Children of an internal node always have
// smaller indices than the node itself.
type Node struct {
	Symbol Symbol
	Weight uint64
	Left   int
	Right  int
}

// IsLeaf reports whether n holds a symbol.
func (n *Node) IsLeaf() bool { return n.Left < 0 }

// Tree is a Huffman merge tree stored in an append-only arena.
type Tree struct {
	Nodes []Node
	// Root is the index of the root node, or -1 for an empty alphabet.
	Root int
}

// BuildTree runs the Huffman merge over freq.
//
// Ties between equal weights go to the entry with the smaller arena index,
// so leaves are preferred in first-occurrence order and older merges win
// over newer ones.
func BuildTree(freq *Frequencies) *Tree {
	t := &Tree{
		Nodes: make([]Node, 0, 2*freq.Len()),
		Root:  -1,
	}
	if freq.Len() == 0 {
		return t
	}

	q := make(mergeQueue, 0, freq.Len())
	for _, s := range freq.Symbols() {
		q = append(q, mergeItem{weight: freq.Count(s), index: len(t.Nodes)})
		t.Nodes = append(t.Nodes, Node{Symbol: s, Weight: freq.Count(s), Left: -1, Right: -1})
	}
	heap.Init(&q)

	for q.Len() > 1 {
		a := heap.Pop(&q).(mergeItem)
		b := heap.Pop(&q).(mergeItem)

		merged := mergeItem{weight: a.weight + b.weight, index: len(t.Nodes)}
		t.Nodes = append(t.Nodes, Node{Weight: merged.weight, Left: a.index, Right: b.index})
		heap.Push(&q, merged)
	}

	t.Root = q[0].index
	return t
}

// Leaves returns the number of leaf nodes.
func (t *Tree) Leaves() int {
	// every merge consumes two entries and adds one
	return (len(t.Nodes) + 1) / 2
}

// Format writes an indented dump of the tree, left branch first.
func (t *Tree) Format(w io.Writer) error {
	if t.Root < 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}

	type frame struct {
		index int
		depth int
		edge  string
	}
	stack := []frame{{index: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[f.index]
		indent := strings.Repeat("    ", f.depth)
		var err error
		if n.IsLeaf() {
			_, err = fmt.Fprintf(w, "%s%s%X (%d)\n", indent, f.edge, uint64(n.Symbol), n.Weight)
		} else {
			_, err = fmt.Fprintf(w, "%s%s* (%d)\n", indent, f.edge, n.Weight)
			stack = append(stack,
				frame{index: n.Right, depth: f.depth + 1, edge: "1-"},
				frame{index: n.Left, depth: f.depth + 1, edge: "0-"},
			)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type mergeItem struct {
	weight uint64
	index  int
}

// mergeQueue is a min-heap ordered by (weight, index).
type mergeQueue []mergeItem

func (q mergeQueue) Len() int { return len(q) }
func (q mergeQueue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].index < q[j].index
}
func (q mergeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *mergeQueue) Push(x any) { *q = append(*q, x.(mergeItem)) }

func (q *mergeQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
