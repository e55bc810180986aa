package huffman

import "container/heap"

// nodeQueue is a min-heap ordered by frequency, then by rank.
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].Freq != q[j].Freq {
		return q[i].Freq < q[j].Freq
	}
	return q[i].rank < q[j].rank
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) {
	*q = append(*q, x.(*Node))
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// BuildTree merges the two least frequent nodes until a single root is left.
// leaves must be sorted as returned by CountFrequencies; their order breaks
// ties between leaves of equal frequency.
//
// A merged node is ranked ahead of every node already in the queue, so among
// equal frequencies the most recent merge is taken first, then older merges,
// then leaves. The first node taken becomes the left child.
//
// With a single leaf no merge happens and the leaf itself is the root.
func BuildTree(leaves []*Node) (*Node, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}

	q := make(nodeQueue, len(leaves))
	for i, leaf := range leaves {
		leaf.rank = i
		q[i] = leaf
	}
	heap.Init(&q)

	for merges := 1; q.Len() > 1; merges++ {
		left := heap.Pop(&q).(*Node)
		right := heap.Pop(&q).(*Node)
		heap.Push(&q, combine(left, right, -merges))
	}

	return q[0], nil
}
