// Package frequency holds per-character usage frequencies.
//
// Input lines are a single character and a non-negative number separated by
// white space:
//
//	的 4.09
//	一 1.86
package frequency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Iron-Ham/zhong/internal/datasource"
	"github.com/Iron-Ham/zhong/internal/errors"
)

// Table maps characters to frequencies. It is safe for concurrent readers
// once loading is finished.
type Table struct {
	values map[string]float64
}

// New returns an empty Table.
func New() *Table {
	return &Table{values: make(map[string]float64)}
}

// Load parses frequency lines into a new Table. Blank lines and # comments
// are skipped. A later line for the same character overrides an earlier one.
func Load(lines []datasource.Line) (*Table, error) {
	t := New()
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ch, value, err := parseLine(text)
		if err != nil {
			return nil, err.WithLine(line.Number).WithText(line.Text)
		}
		t.values[ch] = value
	}
	return t, nil
}

func parseLine(text string) (string, float64, *errors.MalformedRecordError) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", 0, errors.NewMalformedRecordError(fmt.Sprintf("expected 2 fields, got %d", len(fields)), nil)
	}
	ch := fields[0]
	if utf8.RuneCountInString(ch) != 1 {
		return "", 0, errors.NewMalformedRecordError(fmt.Sprintf("key %q is not a single character", ch), nil)
	}
	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, errors.NewMalformedRecordError("invalid frequency", err)
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return "", 0, errors.NewMalformedRecordError(fmt.Sprintf("frequency %v out of range", value), nil)
	}
	return ch, value, nil
}

// Set records the frequency of ch.
func (t *Table) Set(ch string, value float64) {
	t.values[ch] = value
}

// Get returns the frequency of ch, or a NotFoundError.
func (t *Table) Get(ch string) (float64, error) {
	v, ok := t.values[ch]
	if !ok {
		return 0, errors.NewNotFoundError("frequency entry", ch)
	}
	return v, nil
}

// Len returns the number of characters in the table.
func (t *Table) Len() int {
	return len(t.values)
}
