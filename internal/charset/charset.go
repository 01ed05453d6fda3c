// Package charset defines the character sets a word or lookup can be
// restricted to.
package charset

import (
	"fmt"
	"strings"
)

// CharacterSet is a bit set over the Chinese writing systems.
type CharacterSet uint8

const (
	Traditional CharacterSet = 1 << iota
	Simplified

	Both = Traditional | Simplified
)

// Has reports whether every set in other is also in cs.
func (cs CharacterSet) Has(other CharacterSet) bool {
	return other != 0 && cs&other == other
}

// Overlaps reports whether cs and other share at least one set.
func (cs CharacterSet) Overlaps(other CharacterSet) bool {
	return cs&other != 0
}

// Valid reports whether cs is a non-empty combination of known sets.
func (cs CharacterSet) Valid() bool {
	return cs != 0 && cs&^Both == 0
}

func (cs CharacterSet) String() string {
	switch cs {
	case Traditional:
		return "traditional"
	case Simplified:
		return "simplified"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("CharacterSet(%d)", uint8(cs))
	}
}

// Parse converts a user-supplied name into a CharacterSet. Accepted names
// are "traditional", "simplified" and "both", plus the short forms "trad",
// "simp", "t" and "s", in any case.
func Parse(name string) (CharacterSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "traditional", "trad", "t":
		return Traditional, nil
	case "simplified", "simp", "s":
		return Simplified, nil
	case "both", "all":
		return Both, nil
	default:
		return 0, fmt.Errorf("unknown character set %q (want one of: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names returns the canonical character set names.
func Names() []string {
	return []string{"traditional", "simplified", "both"}
}
