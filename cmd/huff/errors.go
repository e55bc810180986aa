package main

import "fmt"

// StreamKind names the stream an I/O failure happened on.
type StreamKind uint8

const (
	SourceUnavailable StreamKind = iota
	EncodingInputUnavailable
	OutputUnavailable
)

func (k StreamKind) String() string {
	switch k {
	case SourceUnavailable:
		return "cannot read source"
	case EncodingInputUnavailable:
		return "cannot read input"
	case OutputUnavailable:
		return "cannot write output"
	}
	return "stream error"
}

// StreamError is an open or read failure on one of the named streams.
type StreamError struct {
	Kind StreamKind
	Path string
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
