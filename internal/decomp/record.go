package decomp

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Iron-Ham/zhong/internal/errors"
)

// NodeKind distinguishes real characters from anonymous structural groups.
type NodeKind uint8

const (
	Character NodeKind = iota + 1
	Group
)

func (k NodeKind) String() string {
	switch k {
	case Character:
		return "character"
	case Group:
		return "group"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RelationKind is the relation a record declares with its referent.
type RelationKind uint8

const (
	ComposedOf RelationKind = iota + 1
	VariantOf
)

func (k RelationKind) String() string {
	switch k {
	case ComposedOf:
		return "composed_of"
	case VariantOf:
		return "variant_of"
	default:
		return fmt.Sprintf("RelationKind(%d)", uint8(k))
	}
}

// MarshalText renders the relation by name in JSON and YAML output.
func (k RelationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Relation is the referent side of a record: exactly one of Leaf,
// Composition or Variant.
type Relation interface {
	relation()
}

// Leaf is an irreducible record with no referent.
type Leaf struct{}

// Composition lists a record's components in order.
type Composition struct {
	Components []string
}

// Variant names the primary form of a variant character.
type Variant struct {
	Primary string
}

func (Leaf) relation()        {}
func (Composition) relation() {}
func (Variant) relation()     {}

// Record is one parsed line of decomposition data.
type Record struct {
	ID       string
	Kind     NodeKind
	Relation Relation
	Line     int // 1-indexed source line, 0 when built in memory
}

// RelationKind reports the relation tag the record was declared with.
// Leaves were declared as compositions without components.
func (r Record) RelationKind() RelationKind {
	if _, ok := r.Relation.(Variant); ok {
		return VariantOf
	}
	return ComposedOf
}

// Referents returns the ids this record points at, in declaration order.
func (r Record) Referents() []string {
	switch rel := r.Relation.(type) {
	case Composition:
		return rel.Components
	case Variant:
		return []string{rel.Primary}
	default:
		return nil
	}
}

// ErrDroppedLine marks a line that is skipped rather than rejected: a
// character id, or a variant's primary, that is not exactly one code point.
var ErrDroppedLine = errors.New("line dropped")

var (
	kindCodes = map[string]NodeKind{
		"z": Character, // zi
		"g": Group,
	}
	relationCodes = map[string]RelationKind{
		"c": ComposedOf,
		"v": VariantOf,
	}
)

// ParseLine parses one id:type:relation:referent line.
//
// Structural problems are returned as *errors.MalformedRecordError with the
// text set but no line number. Lines that violate the single code point rule
// return an error wrapping ErrDroppedLine.
func ParseLine(text string) (Record, error) {
	text = strings.TrimSpace(text)
	fields := strings.Split(text, ":")
	if len(fields) != 4 {
		return Record{}, malformed(text, fmt.Sprintf("expected 4 colon-separated fields, got %d", len(fields)))
	}
	id, kindCode, relationCode, referent := fields[0], fields[1], fields[2], fields[3]

	if id == "" {
		return Record{}, malformed(text, "empty id")
	}
	kind, ok := kindCodes[kindCode]
	if !ok {
		return Record{}, malformed(text, fmt.Sprintf("unknown node type %q", kindCode))
	}
	relation, ok := relationCodes[relationCode]
	if !ok {
		return Record{}, malformed(text, fmt.Sprintf("unknown relation %q", relationCode))
	}

	if kind == Character && utf8.RuneCountInString(id) != 1 {
		return Record{}, errors.Wrapf(ErrDroppedLine, "character id %q is not a single code point", id)
	}

	rec := Record{ID: id, Kind: kind}

	switch relation {
	case VariantOf:
		if kind == Group {
			return Record{}, malformed(text, "a group cannot be a variant")
		}
		if utf8.RuneCountInString(referent) != 1 {
			return Record{}, errors.Wrapf(ErrDroppedLine, "variant primary %q is not a single code point", referent)
		}
		rec.Relation = Variant{Primary: referent}
	default:
		if referent == "" {
			rec.Relation = Leaf{}
			break
		}
		components := strings.Split(referent, ",")
		for i, c := range components {
			if c == "" {
				return Record{}, malformed(text, fmt.Sprintf("empty component at position %d", i+1))
			}
		}
		rec.Relation = Composition{Components: components}
	}

	return rec, nil
}

func malformed(text, msg string) *errors.MalformedRecordError {
	return errors.NewMalformedRecordError(msg, nil).WithText(text)
}
