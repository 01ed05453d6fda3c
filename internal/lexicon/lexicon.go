// Package lexicon is an in-memory dictionary built from CC-CEDICT lines.
//
// A CC-CEDICT line looks like:
//
//	門口 门口 [men2 kou3] /doorway/gate/CL:個|个[ge4]/
//
// Lines starting with # are comments.
package lexicon

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Iron-Ham/zhong/internal/charset"
	"github.com/Iron-Ham/zhong/internal/datasource"
	"github.com/Iron-Ham/zhong/internal/errors"
)

// Entry is one dictionary definition.
type Entry struct {
	Traditional             string   `json:"traditional" yaml:"traditional"`
	Simplified              string   `json:"simplified" yaml:"simplified"`
	Pinyin                  string   `json:"pinyin" yaml:"pinyin"`
	English                 []string `json:"english" yaml:"english"`
	TraditionalMeasureWords []string `json:"traditional_measure_words,omitempty" yaml:"traditional_measure_words,omitempty"`
	SimplifiedMeasureWords  []string `json:"simplified_measure_words,omitempty" yaml:"simplified_measure_words,omitempty"`
}

// Dictionary answers word membership and definition lookups per character
// set. It is safe for concurrent readers once loading is finished.
type Dictionary struct {
	entries     []Entry
	traditional map[string][]int
	simplified  map[string][]int
	maxLen      int
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		traditional: make(map[string][]int),
		simplified:  make(map[string][]int),
	}
}

// Add registers bare words, without definitions, in the given sets.
func (d *Dictionary) Add(cs charset.CharacterSet, words ...string) {
	for _, w := range words {
		if w == "" {
			continue
		}
		if cs.Has(charset.Traditional) {
			if _, ok := d.traditional[w]; !ok {
				d.traditional[w] = nil
			}
		}
		if cs.Has(charset.Simplified) {
			if _, ok := d.simplified[w]; !ok {
				d.simplified[w] = nil
			}
		}
		d.maxLen = max(d.maxLen, utf8.RuneCountInString(w))
	}
}

var (
	lineRe    = regexp.MustCompile(`^(\S+) (\S+) \[([^\]]*)\] /(.*)/$`)
	measureRe = regexp.MustCompile(`^([^|\[]+)(?:\|([^\[]+))?\[[^\]]*\]$`)
)

// Load parses CC-CEDICT lines into d. Blank lines and # comments are
// skipped. A line that does not match the format fails the load with its
// line number.
func (d *Dictionary) Load(lines []datasource.Line) error {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		entry, err := parseEntry(text)
		if err != nil {
			return err.WithLine(line.Number).WithText(line.Text)
		}
		d.addEntry(entry)
	}
	return nil
}

func parseEntry(text string) (Entry, *errors.MalformedRecordError) {
	m := lineRe.FindStringSubmatch(text)
	if m == nil {
		return Entry{}, errors.NewMalformedRecordError("expected \"traditional simplified [pinyin] /gloss/\"", nil)
	}

	entry := Entry{
		Traditional: m[1],
		Simplified:  m[2],
		Pinyin:      m[3],
		English:     []string{},
	}

	for _, gloss := range strings.Split(m[4], "/") {
		if gloss == "" {
			continue
		}
		if classifiers, ok := strings.CutPrefix(gloss, "CL:"); ok {
			for _, item := range strings.Split(classifiers, ",") {
				mm := measureRe.FindStringSubmatch(item)
				if mm == nil {
					return Entry{}, errors.NewMalformedRecordError(fmt.Sprintf("bad measure word %q", item), nil)
				}
				trad, simp := mm[1], mm[2]
				if simp == "" {
					simp = trad
				}
				entry.TraditionalMeasureWords = append(entry.TraditionalMeasureWords, trad)
				entry.SimplifiedMeasureWords = append(entry.SimplifiedMeasureWords, simp)
			}
			continue
		}
		entry.English = append(entry.English, gloss)
	}

	return entry, nil
}

func (d *Dictionary) addEntry(e Entry) {
	idx := len(d.entries)
	d.entries = append(d.entries, e)
	d.traditional[e.Traditional] = append(d.traditional[e.Traditional], idx)
	d.simplified[e.Simplified] = append(d.simplified[e.Simplified], idx)
	d.maxLen = max(d.maxLen, utf8.RuneCountInString(e.Traditional), utf8.RuneCountInString(e.Simplified))
}

// HasWord reports whether text is a word in any of the sets in cs.
func (d *Dictionary) HasWord(cs charset.CharacterSet, text string) bool {
	if cs.Has(charset.Traditional) {
		if _, ok := d.traditional[text]; ok {
			return true
		}
	}
	if cs.Has(charset.Simplified) {
		if _, ok := d.simplified[text]; ok {
			return true
		}
	}
	return false
}

// Find returns the definitions whose headword in cs equals text, in load
// order.
func (d *Dictionary) Find(text string, cs charset.CharacterSet) []Entry {
	var idx []int
	if cs.Has(charset.Traditional) {
		idx = append(idx, d.traditional[text]...)
	}
	if cs.Has(charset.Simplified) {
		idx = append(idx, d.simplified[text]...)
	}
	slices.Sort(idx)
	idx = slices.Compact(idx)

	out := make([]Entry, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.entries[i])
	}
	return out
}

// FindEnglish returns the definitions with a gloss containing term as a
// whole word, ignoring case. Entries with fewer glosses come first; ties
// keep load order.
func (d *Dictionary) FindEnglish(term string) []Entry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var out []Entry
	for _, e := range d.entries {
		if slices.ContainsFunc(e.English, func(g string) bool { return glossHasWord(g, term) }) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(len(a.English), len(b.English))
	})
	return out
}

func glossHasWord(gloss, term string) bool {
	gloss = strings.ToLower(gloss)
	if gloss == term {
		return true
	}
	words := strings.FieldsFunc(gloss, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	})
	return slices.Contains(words, term)
}

// MaxWordLength returns the length in runes of the longest headword.
func (d *Dictionary) MaxWordLength() int {
	return d.maxLen
}

// Len returns the number of definitions loaded.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
