package main

import (
	"fmt"
	"io"

	"github.com/atiedebee/huffman-table/internal/huffman"
)

func padd(w io.Writer, depth int) {
	const padding string = "    "
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, padding)
	}
}

// printTree draws the tree sideways, left branch on top.
func printTree(w io.Writer, head *huffman.Node, depth int, isabove int) {
	if head.IsLeaf() {
		padd(w, depth)
		fmt.Fprintf(w, "---%q\n", head.Symbol)
		return
	}

	if !head.Left.IsLeaf() {
		printTree(w, head.Left, depth+1, 1)
	} else {
		padd(w, depth)
		fmt.Fprintf(w, "/--%q\n", head.Left.Symbol)
	}

	padd(w, depth-1)
	switch isabove {
	case 1:
		fmt.Fprintf(w, "/--<\n")
	case 0:
		fmt.Fprintf(w, "---<\n")
	default:
		fmt.Fprintf(w, "\\--<\n")
	}

	if !head.Right.IsLeaf() {
		printTree(w, head.Right, depth+1, -1)
	} else {
		padd(w, depth)
		fmt.Fprintf(w, "\\--%q\n", head.Right.Symbol)
	}
}

func printTable(w io.Writer, t *huffman.Table) {
	for _, e := range t.ByFrequency() {
		fmt.Fprintf(w, "%q: %d: %s\n", e.Symbol, e.Freq, e.Code)
	}
}
