// Package counter derives line, word, character and byte counts from a stream.
package counter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/verte-zerg/gowc/internal/model"
)

const readBufferSize = 64 * 1024

// Options describes what is known about a stream before it is read.
type Options struct {
	// Size is the byte length from filesystem metadata. It is only used
	// when HasSize is set.
	Size    int64
	HasSize bool
	// Encoding decodes the raw stream before classification. Nil means UTF-8.
	Encoding encoding.Encoding
}

// Scan reads r to the end in a single pass. On a read error the partial
// counts are discarded and the error is returned.
func Scan(r io.Reader, opts Options) (model.Counts, error) {
	raw := &byteCounter{r: r}
	var src io.Reader = raw
	if opts.Encoding != nil {
		src = opts.Encoding.NewDecoder().Reader(raw)
	}
	br := bufio.NewReaderSize(src, readBufferSize)

	var (
		counts  model.Counts
		inWord  bool
		lineLen uint64
	)
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return model.Counts{}, err
		}
		counts.Chars++
		switch {
		case c == '\n':
			if inWord {
				counts.Words++
				inWord = false
			}
			counts.Lines++
			if lineLen > counts.MaxLineLength {
				counts.MaxLineLength = lineLen
			}
			lineLen = 0
		case unicode.IsSpace(c):
			if inWord {
				counts.Words++
				inWord = false
			}
			lineLen++
		default:
			inWord = true
			lineLen++
		}
	}
	if inWord {
		counts.Words++
	}

	if opts.HasSize && opts.Size >= 0 {
		counts.Bytes = uint64(opts.Size)
	} else {
		counts.Bytes = raw.n
	}
	return counts, nil
}

// ScanString is a convenience wrapper over Scan for in-memory UTF-8 text.
func ScanString(s string) model.Counts {
	// strings.Reader never fails.
	counts, _ := Scan(strings.NewReader(s), Options{})
	return counts
}

// LookupEncoding resolves an encoding by its WHATWG or IANA name. An empty
// name returns nil, meaning the input is read as UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc, nil
}

type byteCounter struct {
	r io.Reader
	n uint64
}

func (b *byteCounter) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	b.n += uint64(n)
	return n, err
}
