package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// trie is a decoding tree. A branch is either nil, a leaf or a subtree.
type trie struct {
	next   [2]*trie
	isLeaf bool
	char   byte
}

func newTrie(t *Table) (*trie, error) {
	root := &trie{}
	for _, e := range t.entries {
		if err := root.insert(e.Code, e.Symbol); err != nil {
			return nil, fmt.Errorf("code %q for %q: %w", e.Code, e.Symbol, err)
		}
	}
	return root, nil
}

func (n *trie) insert(code string, sym byte) error {
	if code == "" {
		return ErrNotPrefixFree
	}
	for i := 0; i < len(code); i++ {
		if n.isLeaf {
			return ErrNotPrefixFree
		}
		p, err := bitValue(code[i])
		if err != nil {
			return err
		}
		if n.next[p] == nil {
			n.next[p] = &trie{}
		}
		n = n.next[p]
	}
	if n.isLeaf || n.next[0] != nil || n.next[1] != nil {
		return ErrNotPrefixFree
	}
	n.isLeaf = true
	n.char = sym
	return nil
}

func bitValue(c byte) (int, error) {
	switch c {
	case '0':
		return 0, nil
	case '1':
		return 1, nil
	}
	return 0, ErrInvalidBit
}

// Decoder turns code bits back into symbols by matching the shortest code
// that prefixes the remaining bits.
type Decoder struct {
	root *trie
	node *trie
}

// NewDecoder returns a Decoder for the codes of t. It fails with
// ErrNotPrefixFree if the codes are ambiguous.
func NewDecoder(t *Table) (*Decoder, error) {
	root, err := newTrie(t)
	if err != nil {
		return nil, err
	}
	return &Decoder{root: root, node: root}, nil
}

// step follows one bit and reports the symbol when a code is complete.
func (d *Decoder) step(p int) (byte, bool, error) {
	next := d.node.next[p]
	if next == nil {
		return 0, false, ErrUnknownCode
	}
	if next.isLeaf {
		d.node = d.root
		return next.char, true, nil
	}
	d.node = next
	return 0, false, nil
}

// Decode reads '0' and '1' characters from r and writes the decoded symbols
// to w. The stream must end on a code boundary.
func (d *Decoder) Decode(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	d.node = d.root

	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading encoded input: %w", err)
		}
		p, err := bitValue(c)
		if err != nil {
			return err
		}
		sym, ok, err := d.step(p)
		if err != nil {
			return err
		}
		if ok {
			if err := bw.WriteByte(sym); err != nil {
				return err
			}
		}
	}

	if d.node != d.root {
		return ErrTruncated
	}
	return bw.Flush()
}
