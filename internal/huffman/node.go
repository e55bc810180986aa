package huffman

// Node is an element of a Huffman tree. A leaf carries a symbol; an internal
// node carries exactly two children and the sum of their frequencies.
type Node struct {
	Freq   uint64
	Symbol byte
	Left   *Node
	Right  *Node

	rank int // merge order, see BuildTree
}

// NewLeaf returns a leaf for sym occurring freq times.
func NewLeaf(sym byte, freq uint64) *Node {
	return &Node{Symbol: sym, Freq: freq}
}

func combine(left, right *Node, rank int) *Node {
	return &Node{
		Freq:  left.Freq + right.Freq,
		Left:  left,
		Right: right,
		rank:  rank,
	}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the number of leaves below n, n included.
func (n *Node) Leaves() int {
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}
