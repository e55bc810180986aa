package huffman

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, in string) *Table {
	t.Helper()
	table, err := NewTable(strings.NewReader(in))
	require.NoError(t, err)
	return table
}

func codeOf(t *testing.T, table *Table, sym byte) string {
	t.Helper()
	e, ok := table.Lookup(sym)
	require.True(t, ok, "no code for %q", sym)
	return e.Code
}

func requirePrefixFree(t *testing.T, table *Table) {
	t.Helper()
	entries := table.Entries()
	for i, a := range entries {
		require.NotEmpty(t, a.Code)
		for j, b := range entries {
			if i == j {
				continue
			}
			require.False(t, strings.HasPrefix(b.Code, a.Code),
				"code %q of %q prefixes %q of %q", a.Code, a.Symbol, b.Code, b.Symbol)
		}
	}
}

func TestBuildTableScenario(t *testing.T) {
	table := mustTable(t, "aaabbc")

	require.Equal(t, []Entry{
		{Symbol: 'c', Freq: 1, Code: "00"},
		{Symbol: 'b', Freq: 2, Code: "01"},
		{Symbol: 'a', Freq: 3, Code: "1"},
	}, table.Entries())
	require.LessOrEqual(t, len(codeOf(t, table, 'a')), len(codeOf(t, table, 'c')))
	requirePrefixFree(t, table)
}

func TestBuildTableSingleSymbol(t *testing.T) {
	table := mustTable(t, "zzzz")
	require.Equal(t, []Entry{{Symbol: 'z', Freq: 4, Code: "0"}}, table.Entries())
}

func TestNewTableEmpty(t *testing.T) {
	table, err := NewTable(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, table)
}

func TestTableLookupMissing(t *testing.T) {
	table := mustTable(t, "aaabbc")
	_, ok := table.Lookup('x')
	require.False(t, ok)
	_, ok = table.Lookup(0)
	require.False(t, ok)
}

func TestTableByFrequency(t *testing.T) {
	table := mustTable(t, "aaabbc")
	var syms []byte
	for _, e := range table.ByFrequency() {
		syms = append(syms, e.Symbol)
	}
	require.Equal(t, "abc", string(syms))

	// Equal frequencies come out in reverse tree order.
	table = mustTable(t, "abcd")
	syms = syms[:0]
	for _, e := range table.ByFrequency() {
		syms = append(syms, e.Symbol)
	}
	require.Equal(t, "badc", string(syms))
}

func TestTableProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		data := make([]byte, 1+rng.Intn(5000))
		alphabet := 1 + rng.Intn(256)
		for j := range data {
			// skewed so that code lengths differ
			data[j] = byte(rng.Intn(1+rng.Intn(alphabet)))
		}
		table := mustTable(t, string(data))

		var seen Frequencies
		seen.Add(data)
		var total uint64
		for sym, n := range seen {
			e, ok := table.Lookup(byte(sym))
			require.Equal(t, n > 0, ok)
			if ok {
				require.Equal(t, n, e.Freq)
				total += e.Freq
			}
		}
		require.Equal(t, uint64(len(data)), total)
		requirePrefixFree(t, table)

		for _, a := range table.Entries() {
			for _, b := range table.Entries() {
				if a.Freq > b.Freq {
					require.LessOrEqual(t, len(a.Code), len(b.Code))
				}
			}
		}
	}
}

func TestTableDeterministic(t *testing.T) {
	in := strings.Repeat("mississippi river banks ", 20)
	require.Equal(t, mustTable(t, in).Entries(), mustTable(t, in).Entries())
}

func TestTableTreeMatchesBuildTree(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	inputs := []string{"aaabbc", "abcd", "zzzz"}
	for i := 0; i < 20; i++ {
		data := make([]byte, 1+rng.Intn(2000))
		for j := range data {
			data[j] = byte(rng.Intn(1 + rng.Intn(256)))
		}
		inputs = append(inputs, string(data))
	}

	for _, in := range inputs {
		want, err := BuildTree(CountBytes([]byte(in)))
		require.NoError(t, err)

		got, err := BuildTable(want).Tree()
		require.NoError(t, err)
		requireSameShape(t, want, got)
		require.Equal(t, uint64(len(in)), got.Freq)
	}
}

func requireSameShape(t *testing.T, want, got *Node) {
	t.Helper()
	require.Equal(t, want.IsLeaf(), got.IsLeaf())
	require.Equal(t, want.Freq, got.Freq)
	if want.IsLeaf() {
		require.Equal(t, want.Symbol, got.Symbol)
		return
	}
	requireSameShape(t, want.Left, got.Left)
	requireSameShape(t, want.Right, got.Right)
}

func TestTableTreeErrors(t *testing.T) {
	tests := []struct {
		entries []Entry
		want    error
	}{
		{nil, ErrEmptyInput},
		{[]Entry{{Symbol: 'a', Code: "0"}, {Symbol: 'b', Code: "01"}}, ErrNotPrefixFree},
		{[]Entry{{Symbol: 'a', Code: "01"}, {Symbol: 'b', Code: "0"}}, ErrNotPrefixFree},
		{[]Entry{{Symbol: 'a', Code: "1"}, {Symbol: 'b', Code: "1"}}, ErrNotPrefixFree},
		{[]Entry{{Symbol: 'a', Code: ""}, {Symbol: 'b', Code: "1"}}, ErrNotPrefixFree},
		{[]Entry{{Symbol: 'a', Code: "0"}, {Symbol: 'b', Code: "12"}}, ErrInvalidBit},
		{[]Entry{{Symbol: 'a', Code: "0"}, {Symbol: 'b', Code: "10"}}, ErrIncompleteCode},
	}
	for _, tt := range tests {
		table := &Table{}
		for _, e := range tt.entries {
			table.add(e)
		}
		_, err := table.Tree()
		require.ErrorIs(t, err, tt.want, "%v", tt.entries)
	}
}
