package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Stats counts what an encoding pass consumed and produced.
type Stats struct {
	Symbols uint64 // input bytes read
	Bits    uint64 // code bits written
}

// Savings returns the percentage of bits saved against 8 bits per symbol.
// It is negative when the codes are longer than a byte on average and 0 for
// an empty input.
func (s Stats) Savings() float64 {
	if s.Symbols == 0 {
		return 0
	}
	raw := float64(s.Symbols * 8)
	return (raw - float64(s.Bits)) / raw * 100
}

// Encoder writes the code of every input symbol as the characters '0' and
// '1'.
type Encoder struct {
	table *Table
	w     *bufio.Writer
	stats Stats
}

// NewEncoder returns an Encoder writing to w with the codes of t.
func NewEncoder(t *Table, w io.Writer) *Encoder {
	return &Encoder{table: t, w: bufio.NewWriter(w)}
}

// Encode reads r to the end and writes the code of each symbol. It stops at
// the first symbol without a code and returns an *UnencodableSymbolError;
// whatever was written before that is incomplete.
func (e *Encoder) Encode(r io.Reader) error {
	err := encodeStream(e.table, r, &e.stats, func(code string) error {
		_, err := e.w.WriteString(code)
		return err
	})
	if err != nil {
		return err
	}
	return e.w.Flush()
}

// Stats returns the totals of every Encode call so far.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// encodeStream looks up each symbol of r in t and hands its code to emit.
func encodeStream(t *Table, r io.Reader, stats *Stats, emit func(code string) error) error {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var offset uint64
	for ; ; offset++ {
		ch, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading encoding input: %w", err)
		}

		entry, ok := t.Lookup(ch)
		if !ok {
			return &UnencodableSymbolError{Symbol: ch, Offset: offset}
		}
		if err := emit(entry.Code); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		stats.Symbols++
		stats.Bits += uint64(len(entry.Code))
	}
}
