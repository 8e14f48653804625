package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/verte-zerg/gowc/internal/model"
)

// maxSpecifierLen bounds a single name in a specifier list.
const maxSpecifierLen = 64 * 1024

// ReadSpecifiers reads NUL-terminated specifiers from r. A zero-length name
// is an error, as is a list that names "-" (stdin would be read twice).
func ReadSpecifiers(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxSpecifierLen)
	scanner.Split(scanNUL)

	var specs []string
	for scanner.Scan() {
		name := scanner.Text()
		if name == "" {
			return nil, fmt.Errorf("invalid zero-length file name at entry %d", len(specs)+1)
		}
		if name == model.StdinSpec {
			return nil, fmt.Errorf("when reading file names from a list, file name %q is not allowed", name)
		}
		specs = append(specs, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return specs, nil
}

// LoadSpecifierFile reads a specifier list from path, or from stdin when
// path is "-".
func (r *Resolver) LoadSpecifierFile(path string) ([]string, error) {
	if path == model.StdinSpec {
		return ReadSpecifiers(r.OpenStdin(path).Reader)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only list.
			_ = cerr
		}
	}()
	return ReadSpecifiers(file)
}

func scanNUL(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
