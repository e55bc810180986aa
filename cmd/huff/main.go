package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atiedebee/huffman-table/internal/huffman"
)

type Mode uint8

const (
	EncodeMode Mode = iota
	DecodeMode
)

const usage = `usage: huff [-e] [-v] [-p] [-b] <source> <input> <output>
       huff -d [-v] [-p] <input> <output>
       huff -d -t [-v] [-p] <source> <input> <output>`

type options struct {
	mode      Mode
	verbose   bool
	doPrint   bool
	packed    bool
	textTable bool
	files     []string
}

func parseArgs(args []string) (options, error) {
	var opts options
	for _, arg := range args {
		switch arg {
		case "-e":
			opts.mode = EncodeMode
		case "-d":
			opts.mode = DecodeMode
		case "-v":
			opts.verbose = true
		case "-p":
			opts.doPrint = true
		case "-b":
			opts.packed = true
		case "-t":
			opts.textTable = true
		default:
			opts.files = append(opts.files, arg)
		}
	}

	want := 3
	if opts.mode == DecodeMode && !opts.textTable {
		want = 2
	}
	if len(opts.files) != want {
		return opts, errors.New(usage)
	}
	return opts, nil
}

// trackingReader remembers the first read error so it can be told apart from
// encoding failures.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}

type runner struct {
	opts   options
	logger *log.Logger
	stdout io.Writer
	diag   io.Writer
}

// buildTable reads the source stream and derives its code table.
func (r *runner) buildTable(path string) (*huffman.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &StreamError{Kind: SourceUnavailable, Path: path, Err: err}
	}
	defer f.Close()

	r.logger.Printf("counting symbols in %s", path)
	leaves, err := huffman.CountFrequencies(f)
	if err != nil {
		if errors.Is(err, huffman.ErrEmptyInput) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, &StreamError{Kind: SourceUnavailable, Path: path, Err: err}
	}

	r.logger.Printf("building tree from %d symbols", len(leaves))
	root, err := huffman.BuildTree(leaves)
	if err != nil {
		return nil, err
	}
	if r.opts.doPrint {
		printTree(r.diag, root, 1, 0)
	}

	table := huffman.BuildTable(root)
	r.logger.Printf("code table has %d entries", table.Len())
	return table, nil
}

// withOutput runs fn on the output stream. A file output is removed when fn
// fails so no partial result is left behind.
func (r *runner) withOutput(path string, fn func(w io.Writer) error) error {
	if path == "-" {
		return fn(r.stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return &StreamError{Kind: OutputUnavailable, Path: path, Err: err}
	}
	w := bufio.NewWriter(f)
	err = fn(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = &StreamError{Kind: OutputUnavailable, Path: path, Err: cerr}
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func (r *runner) withInput(path string, fn func(in io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &StreamError{Kind: EncodingInputUnavailable, Path: path, Err: err}
	}
	defer f.Close()

	in := &trackingReader{r: f}
	err = fn(in)
	if in.err != nil {
		return &StreamError{Kind: EncodingInputUnavailable, Path: path, Err: in.err}
	}
	return err
}

func (r *runner) encode() error {
	source, input, output := r.opts.files[0], r.opts.files[1], r.opts.files[2]

	table, err := r.buildTable(source)
	if err != nil {
		return err
	}
	printTable(r.diag, table)

	var stats huffman.Stats
	err = r.withInput(input, func(in io.Reader) error {
		return r.withOutput(output, func(w io.Writer) error {
			r.logger.Printf("encoding %s", input)
			if r.opts.packed {
				pw := huffman.NewPackedWriter(table, w)
				err := pw.Encode(in)
				stats = pw.Stats()
				return err
			}
			enc := huffman.NewEncoder(table, w)
			err := enc.Encode(in)
			stats = enc.Stats()
			return err
		})
	})
	if err != nil {
		return err
	}

	r.logger.Printf("%d symbols in, %d bits out", stats.Symbols, stats.Bits)
	fmt.Fprintf(r.diag, "Completed: Saved %.2f%%!\n", stats.Savings())
	return nil
}

func (r *runner) decode() error {
	if !r.opts.textTable {
		input, output := r.opts.files[0], r.opts.files[1]
		return r.withInput(input, func(in io.Reader) error {
			pr, err := huffman.NewPackedReader(bufio.NewReader(in))
			if err != nil {
				return err
			}
			r.logger.Printf("%s holds %d symbols, %d codes", input, pr.Len(), pr.Tree().Leaves())
			if r.opts.doPrint {
				printTree(r.diag, pr.Tree(), 1, 0)
			}
			return r.withOutput(output, pr.Decode)
		})
	}

	source, input, output := r.opts.files[0], r.opts.files[1], r.opts.files[2]
	table, err := r.buildTable(source)
	if err != nil {
		return err
	}
	dec, err := huffman.NewDecoder(table)
	if err != nil {
		return err
	}
	return r.withInput(input, func(in io.Reader) error {
		return r.withOutput(output, func(w io.Writer) error {
			return dec.Decode(in, w)
		})
	})
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	r := &runner{
		opts:   opts,
		logger: log.New(io.Discard, "huff: ", 0),
		stdout: stdout,
		diag:   stdout,
	}
	if opts.verbose {
		r.logger.SetOutput(stderr)
	}
	// Keep the table and report out of an encoded stdout stream.
	if opts.files[len(opts.files)-1] == "-" {
		r.diag = stderr
	}

	switch opts.mode {
	case DecodeMode:
		return r.decode()
	default:
		return r.encode()
	}
}

func main() {
	stdout := bufio.NewWriter(os.Stdout)
	err := run(os.Args[1:], stdout, os.Stderr)
	stdout.Flush()
	if err != nil {
		log.Fatal(err)
	}
}
