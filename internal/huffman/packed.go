package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Packed stream layout, all fields MSB first:
//
//	magic  "HUF1"
//	count  64 bits, number of encoded symbols
//	tree   pre-order: 1 and 8 symbol bits for a leaf, 0 for an internal
//	       node followed by its left and right subtrees
//	data   code bits, zero padded to a byte
var packedMagic = [4]byte{'H', 'U', 'F', '1'}

// maxTreeDepth is the deepest leaf a tree over 256 symbols can have.
const maxTreeDepth = 255

// PackedWriter writes a self-describing stream with eight code bits per
// byte. Unlike Encoder, the output can be decoded without the source of the
// table.
type PackedWriter struct {
	table *Table
	w     io.Writer
	stats Stats
}

// NewPackedWriter returns a PackedWriter writing to w with the codes of t.
func NewPackedWriter(t *Table, w io.Writer) *PackedWriter {
	return &PackedWriter{table: t, w: w}
}

// Stats returns the totals of the last Encode call. Bits counts code bits
// only, without header or padding.
func (p *PackedWriter) Stats() Stats {
	return p.stats
}

// Encode writes one packed stream holding every symbol of r. The header
// carries the symbol count, so r is read fully before anything is written.
func (p *PackedWriter) Encode(r io.Reader) error {
	root, err := p.table.Tree()
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading encoding input: %w", err)
	}

	p.stats = Stats{}
	bw := bitio.NewWriter(p.w)
	if _, err := bw.Write(packedMagic[:]); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(len(data)), 64); err != nil {
		return err
	}
	if err := writeTree(bw, root); err != nil {
		return err
	}

	err = encodeStream(p.table, bytes.NewReader(data), &p.stats, func(code string) error {
		for i := 0; i < len(code); i++ {
			if err := bw.WriteBool(code[i] == '1'); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return bw.Close()
}

func writeTree(bw *bitio.Writer, head *Node) error {
	if head.IsLeaf() {
		if err := bw.WriteBool(true); err != nil {
			return err
		}
		return bw.WriteBits(uint64(head.Symbol), 8)
	}

	if err := bw.WriteBool(false); err != nil {
		return err
	}
	if err := writeTree(bw, head.Left); err != nil {
		return err
	}
	return writeTree(bw, head.Right)
}

func readTree(br *bitio.Reader, depth int, seen *[256]bool) (*Node, error) {
	isLeaf, err := br.ReadBool()
	if err != nil {
		return nil, truncated(err)
	}

	if isLeaf {
		sym, err := br.ReadBits(8)
		if err != nil {
			return nil, truncated(err)
		}
		if seen[sym] {
			return nil, fmt.Errorf("symbol %q listed twice: %w", byte(sym), ErrCorruptTree)
		}
		seen[sym] = true
		return NewLeaf(byte(sym), 0), nil
	}

	if depth >= maxTreeDepth {
		return nil, ErrCorruptTree
	}
	left, err := readTree(br, depth+1, seen)
	if err != nil {
		return nil, err
	}
	right, err := readTree(br, depth+1, seen)
	if err != nil {
		return nil, err
	}
	return &Node{Left: left, Right: right}, nil
}

// PackedReader decodes a stream written by PackedWriter.
type PackedReader struct {
	br    *bitio.Reader
	root  *Node
	count uint64
	dec   *Decoder
}

// NewPackedReader reads the header and tree of a packed stream.
func NewPackedReader(r io.Reader) (*PackedReader, error) {
	br := bitio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, truncated(err)
	}
	if magic != packedMagic {
		return nil, ErrBadMagic
	}
	count, err := br.ReadBits(64)
	if err != nil {
		return nil, truncated(err)
	}

	var seen [256]bool
	root, err := readTree(br, 0, &seen)
	if err != nil {
		return nil, err
	}
	dec, err := NewDecoder(BuildTable(root))
	if err != nil {
		return nil, err
	}
	return &PackedReader{br: br, root: root, count: count, dec: dec}, nil
}

// Tree returns the stored tree. Frequencies are not stored and read as 0.
func (p *PackedReader) Tree() *Node {
	return p.root
}

// Len returns the number of symbols in the stream.
func (p *PackedReader) Len() uint64 {
	return p.count
}

// Decode writes the symbols of the stream to w.
func (p *PackedReader) Decode(w io.Writer) error {
	buf := make([]byte, 0, 4096)
	for decoded := uint64(0); decoded < p.count; {
		bit, err := p.br.ReadBool()
		if err != nil {
			return truncated(err)
		}
		b := 0
		if bit {
			b = 1
		}
		sym, ok, err := p.dec.step(b)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		decoded++
		buf = append(buf, sym)
		if len(buf) == cap(buf) {
			if _, err := w.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	_, err := w.Write(buf)
	return err
}

// ReadPacked decodes a stream written by PackedWriter into w.
func ReadPacked(r io.Reader, w io.Writer) error {
	p, err := NewPackedReader(r)
	if err != nil {
		return err
	}
	return p.Decode(w)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
