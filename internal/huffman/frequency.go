package huffman

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Frequencies counts occurrences of every byte value.
type Frequencies [256]uint64

// Add counts every byte of p.
func (f *Frequencies) Add(p []byte) {
	for _, ch := range p {
		f[ch]++
	}
}

// Merge adds the counts of other. Counts from separate shards of one input
// can be merged in any order.
func (f *Frequencies) Merge(other *Frequencies) {
	for i, n := range other {
		f[i] += n
	}
}

// Total returns the number of counted bytes.
func (f *Frequencies) Total() uint64 {
	var total uint64
	for _, n := range f {
		total += n
	}
	return total
}

// Leaves returns one leaf per byte value that was seen, ascending by
// frequency. Equal frequencies keep ascending symbol order.
func (f *Frequencies) Leaves() []*Node {
	var leaves []*Node
	for sym, n := range f {
		if n > 0 {
			leaves = append(leaves, NewLeaf(byte(sym), n))
		}
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].Freq < leaves[j].Freq
	})
	return leaves
}

// CountBytes returns the leaves for an in-memory buffer.
func CountBytes(p []byte) []*Node {
	var f Frequencies
	f.Add(p)
	return f.Leaves()
}

// CountFrequencies reads r to the end and returns its leaves, sorted the way
// BuildTree expects them. An empty stream yields ErrEmptyInput.
func CountFrequencies(r io.Reader) ([]*Node, error) {
	var f Frequencies
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		f.Add(buf[:n])
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("counting frequencies: %w", err)
		}
	}

	if f.Total() == 0 {
		return nil, ErrEmptyInput
	}
	return f.Leaves(), nil
}
