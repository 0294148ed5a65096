package photoviewer

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed decode.
type ErrorKind int

const (
	// UnreadableFile means the path could not be opened or read.
	UnreadableFile ErrorKind = iota + 1
	// UnsupportedFormat means the generic decoder did not recognize the bytes.
	UnsupportedFormat
	// UnsupportedColorType means a known format carried a pixel layout the
	// pipeline does not handle, such as grayscale PNG.
	UnsupportedColorType
	// Decoding means a format specific decoder rejected the bytes.
	Decoding
	// MalformedBuffer means the decoded byte count does not match the
	// declared geometry.
	MalformedBuffer
)

func (k ErrorKind) String() string {
	switch k {
	case UnreadableFile:
		return "unreadable file"
	case UnsupportedFormat:
		return "unsupported format"
	case UnsupportedColorType:
		return "unsupported color type"
	case Decoding:
		return "decoding"
	case MalformedBuffer:
		return "malformed buffer"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError is the only error type returned by the pipeline. Errors from
// the underlying codec libraries are kept in Err.
type DecodeError struct {
	Kind ErrorKind
	// Ext is the file extension the decode was dispatched on, without the dot.
	Ext  string
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}
	if e.Err == nil {
		return fmt.Sprintf("decode %s: %s", ext, e.Kind)
	}
	return fmt.Sprintf("decode %s: %s: %v", ext, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is matches any *DecodeError of the same kind, so the Err* sentinels work
// with errors.Is.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnreadableFile       = &DecodeError{Kind: UnreadableFile}
	ErrUnsupportedFormat    = &DecodeError{Kind: UnsupportedFormat}
	ErrUnsupportedColorType = &DecodeError{Kind: UnsupportedColorType}
	ErrDecoding             = &DecodeError{Kind: Decoding}
	ErrMalformedBuffer      = &DecodeError{Kind: MalformedBuffer}
)

// KindOf returns the kind of the first *DecodeError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func newError(kind ErrorKind, ext string, err error) *DecodeError {
	return &DecodeError{Kind: kind, Ext: ext, Err: err}
}
