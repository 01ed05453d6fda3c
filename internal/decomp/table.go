// Package decomp loads character decomposition data and resolves it into
// component trees.
//
// Each line of input has the form id:type:relation:referent. The type is z
// (character) or g (group), the relation is c (composed of) or v (variant
// of), and the referent is empty, a comma-separated component list, or the
// single primary of a variant:
//
//	好:z:c:女,子
//	女:z:c:
//	髙:z:v:高
//	37045:g:c:亠,口
//
// Groups are anonymous structural units. They can be referenced like
// characters but never appear in flattened output.
package decomp

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/Iron-Ham/zhong/internal/datasource"
	"github.com/Iron-Ham/zhong/internal/errors"
	"github.com/Iron-Ham/zhong/internal/logging"
)

// Table maps identifiers to their decomposition records. It is read-only
// after Load and safe for concurrent use.
type Table struct {
	records map[string]Record
	dropped []int
}

type loadOptions struct {
	logger *logging.Logger
	source string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithLogger reports dropped lines through logger.
func WithLogger(logger *logging.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSource names the input in errors and log entries.
func WithSource(name string) LoadOption {
	return func(o *loadOptions) {
		o.source = name
	}
}

// Load builds a Table from decomposition lines. Blank lines are skipped.
// Lines that ParseLine drops are skipped and logged at WARN. Any malformed
// line or duplicated id fails the whole load.
func Load(lines []datasource.Line, opts ...LoadOption) (*Table, error) {
	o := loadOptions{logger: logging.NopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.WithComponent("decomp")
	if o.source != "" {
		logger = logger.WithSource(o.source)
	}

	t := &Table{records: make(map[string]Record, len(lines))}

	for _, line := range lines {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}

		rec, err := ParseLine(line.Text)
		if errors.Is(err, ErrDroppedLine) {
			logger.Warn("dropped decomposition line", "line", line.Number, "reason", err.Error())
			t.dropped = append(t.dropped, line.Number)
			continue
		}
		var malformedErr *errors.MalformedRecordError
		if errors.As(err, &malformedErr) {
			return nil, malformedErr.WithLine(line.Number).WithSource(o.source)
		}
		if err != nil {
			return nil, err
		}

		rec.Line = line.Number
		if prev, exists := t.records[rec.ID]; exists {
			return nil, errors.NewMalformedRecordError(
				fmt.Sprintf("id %q already defined on line %d", rec.ID, prev.Line),
				errors.NewAlreadyExistsError("decomposition record", rec.ID),
			).WithLine(line.Number).WithText(line.Text).WithSource(o.source)
		}
		t.records[rec.ID] = rec
	}

	logger.Debug("loaded decomposition table", "records", len(t.records), "dropped", len(t.dropped))
	return t, nil
}

// FromRecords builds a Table directly from records, applying the same
// duplicate check as Load.
func FromRecords(records ...Record) (*Table, error) {
	t := &Table{records: make(map[string]Record, len(records))}
	for _, rec := range records {
		if _, exists := t.records[rec.ID]; exists {
			return nil, errors.NewAlreadyExistsError("decomposition record", rec.ID)
		}
		if rec.Relation == nil {
			rec.Relation = Leaf{}
		}
		t.records[rec.ID] = rec
	}
	return t, nil
}

// Get returns the record for id.
func (t *Table) Get(id string) (Record, error) {
	rec, ok := t.records[id]
	if !ok {
		return Record{}, errors.NewNotFoundError("decomposition record", id)
	}
	return rec, nil
}

// Contains reports whether id has a record.
func (t *Table) Contains(id string) bool {
	_, ok := t.records[id]
	return ok
}

// Keys iterates over every id in unspecified order.
func (t *Table) Keys() iter.Seq[string] {
	return maps.Keys(t.records)
}

// SortedKeys returns every id in lexical order.
func (t *Table) SortedKeys() []string {
	return slices.Sorted(maps.Keys(t.records))
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Dropped returns the line numbers Load skipped.
func (t *Table) Dropped() []int {
	return slices.Clone(t.dropped)
}
