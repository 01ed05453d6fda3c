// Package datasource turns text input into ordered, 1-indexed lines.
//
// Loaders in the decomp, lexicon and frequency packages consume []Line so
// that diagnostics can always name the source line they came from.
package datasource

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/zhong/internal/errors"
)

// maxLineSize bounds a single line. CC-CEDICT glosses can run long.
const maxLineSize = 1 << 20

// Line is one line of input with its 1-indexed position.
type Line struct {
	Number int
	Text   string
}

// Read splits r into lines. Trailing carriage returns are removed and a
// leading UTF-8 byte order mark on the first line is dropped.
func Read(r io.Reader) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []Line
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if n == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}
		lines = append(lines, Line{Number: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read line %d", n+1)
	}
	return lines, nil
}

// ReadFile reads path from fs. A missing file is reported as a NotFoundError.
func ReadFile(fs afero.Fs, path string) ([]Line, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("data file", path).WithCause(err)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	lines, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return lines, nil
}

// FromStrings numbers texts starting at 1.
func FromStrings(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Number: i + 1, Text: text}
	}
	return lines
}
