package huffman

import (
	"io"
	"sort"
)

// Entry is the code assigned to one symbol.
type Entry struct {
	Symbol byte
	Freq   uint64
	Code   string
}

// Table maps symbols to codes.
type Table struct {
	entries []Entry
	index   [256]int // position in entries plus one, 0 when absent
}

// BuildTable walks the tree from root and records the path to every leaf,
// '0' for a left branch and '1' for a right one. A tree made of a single leaf
// gets the code "0".
func BuildTable(root *Node) *Table {
	t := &Table{}
	if root.IsLeaf() {
		t.add(Entry{Symbol: root.Symbol, Freq: root.Freq, Code: "0"})
		return t
	}
	t.walk(root, "")
	return t
}

func (t *Table) walk(n *Node, path string) {
	if n.IsLeaf() {
		t.add(Entry{Symbol: n.Symbol, Freq: n.Freq, Code: path})
		return
	}
	t.walk(n.Left, path+"0")
	t.walk(n.Right, path+"1")
}

func (t *Table) add(e Entry) {
	t.entries = append(t.entries, e)
	t.index[e.Symbol] = len(t.entries)
}

// NewTable counts the symbols of r and derives their code table.
func NewTable(r io.Reader) (*Table, error) {
	leaves, err := CountFrequencies(r)
	if err != nil {
		return nil, err
	}
	root, err := BuildTree(leaves)
	if err != nil {
		return nil, err
	}
	return BuildTable(root), nil
}

// Len returns the number of symbols in t.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in tree order, leftmost leaf first.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Lookup returns the entry for sym.
func (t *Table) Lookup(sym byte) (Entry, bool) {
	i := t.index[sym]
	if i == 0 {
		return Entry{}, false
	}
	return t.entries[i-1], true
}

// ByFrequency returns the entries most frequent first. Entries of equal
// frequency come out in reverse tree order.
func (t *Table) ByFrequency() []Entry {
	entries := t.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Freq < entries[j].Freq
	})
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// Tree rebuilds the Huffman tree the codes of t were read from. Leaves carry
// the entry frequencies and internal nodes the sums below them. A table with
// a single entry yields a bare leaf, the shape BuildTree gives such input.
func (t *Table) Tree() (*Node, error) {
	switch len(t.entries) {
	case 0:
		return nil, ErrEmptyInput
	case 1:
		e := t.entries[0]
		return NewLeaf(e.Symbol, e.Freq), nil
	}

	root := &Node{}
	leaves := make(map[*Node]bool, len(t.entries))
	for _, e := range t.entries {
		n := root
		for i := 0; i < len(e.Code); i++ {
			if leaves[n] {
				return nil, ErrNotPrefixFree
			}
			p, err := bitValue(e.Code[i])
			if err != nil {
				return nil, err
			}
			next := &n.Left
			if p == 1 {
				next = &n.Right
			}
			if *next == nil {
				*next = &Node{}
			}
			n = *next
		}
		if n == root || leaves[n] || !n.IsLeaf() {
			return nil, ErrNotPrefixFree
		}
		n.Symbol = e.Symbol
		n.Freq = e.Freq
		leaves[n] = true
	}

	if err := sumFreqs(root, leaves); err != nil {
		return nil, err
	}
	return root, nil
}

func sumFreqs(n *Node, leaves map[*Node]bool) error {
	if leaves[n] {
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return ErrIncompleteCode
	}
	if err := sumFreqs(n.Left, leaves); err != nil {
		return err
	}
	if err := sumFreqs(n.Right, leaves); err != nil {
		return err
	}
	n.Freq = n.Left.Freq + n.Right.Freq
	return nil
}
