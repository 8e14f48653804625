// Package input resolves command-line specifiers into readable sources.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/verte-zerg/gowc/internal/model"
)

// Failure kinds reported for a specifier.
var (
	ErrNotFound   = errors.New("no such file or directory")
	ErrNotRegular = errors.New("not a regular file")
	ErrRead       = errors.New("could not be read")
)

// Error ties a failure kind to the specifier that caused it.
type Error struct {
	Spec string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Spec, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Spec, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewReadError wraps a mid-stream read failure for spec.
func NewReadError(spec string, err error) *Error {
	return &Error{Spec: spec, Kind: ErrRead, Err: err}
}

// Source is an opened input. Close must be called on every path.
type Source struct {
	Label   string
	Reader  io.Reader
	Size    int64
	HasSize bool
	closer  io.Closer
}

// Close releases the underlying file. Standard input is never closed.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Resolver opens specifiers. Stdin is substituted for "-".
type Resolver struct {
	Stdin io.Reader
}

// NewResolver returns a resolver reading "-" from stdin.
func NewResolver(stdin io.Reader) *Resolver {
	return &Resolver{Stdin: stdin}
}

// Open validates spec and opens it for reading.
func (r *Resolver) Open(spec string) (*Source, error) {
	if spec == model.StdinSpec {
		return r.OpenStdin(spec), nil
	}
	info, err := os.Stat(spec)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Spec: spec, Kind: ErrNotFound}
		}
		return nil, &Error{Spec: spec, Kind: ErrRead, Err: unwrapPath(err)}
	}
	if !info.Mode().IsRegular() {
		return nil, &Error{Spec: spec, Kind: ErrNotRegular}
	}
	file, err := os.Open(spec)
	if err != nil {
		return nil, &Error{Spec: spec, Kind: ErrRead, Err: unwrapPath(err)}
	}
	return &Source{
		Label:   spec,
		Reader:  file,
		Size:    info.Size(),
		HasSize: true,
		closer:  file,
	}, nil
}

// OpenStdin wraps standard input under the given label.
func (r *Resolver) OpenStdin(label string) *Source {
	stdin := r.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Source{Label: label, Reader: stdin}
}

func unwrapPath(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
