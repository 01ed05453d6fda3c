// Package decompose is the entry point that picks between structural
// decomposition and word segmentation based on input length.
package decompose

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/Iron-Ham/zhong/internal/charset"
	"github.com/Iron-Ham/zhong/internal/cjk"
	"github.com/Iron-Ham/zhong/internal/decomp"
	"github.com/Iron-Ham/zhong/internal/logging"
	"github.com/Iron-Ham/zhong/internal/segment"
)

// Decomposer combines a decomposition table with a segmenter.
type Decomposer struct {
	table      *decomp.Table
	segmenter  *segment.Segmenter
	classifier segment.Classifier
	maxDepth   int
	normalize  bool
	logger     *logging.Logger
}

// Option configures a Decomposer.
type Option func(*Decomposer)

// WithMaxDepth sets the resolution depth guard. Values below 1 keep
// decomp.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(d *Decomposer) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// WithNormalization applies NFC normalization to input text.
func WithNormalization(enabled bool) Option {
	return func(d *Decomposer) {
		d.normalize = enabled
	}
}

// WithClassifier sets the classifier used to split a single word into its
// characters.
func WithClassifier(c segment.Classifier) Option {
	return func(d *Decomposer) {
		if c != nil {
			d.classifier = c
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(d *Decomposer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Decomposer. Either table or seg may be nil when only the
// other path is used; calling into a missing one panics.
func New(table *decomp.Table, seg *segment.Segmenter, opts ...Option) *Decomposer {
	d := &Decomposer{
		table:      table,
		segmenter:  seg,
		classifier: cjk.Default,
		maxDepth:   decomp.DefaultMaxDepth,
		logger:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithComponent("decompose")
	return d
}

// Decompose returns the direct structural components of a single
// character, or the words of longer text. When longer text is a single
// dictionary word, its CJK characters are returned one by one instead;
// those characters are not decomposed further.
func (d *Decomposer) Decompose(text string, cs charset.CharacterSet) ([]string, error) {
	if d.normalize {
		text = norm.NFC.String(text)
	}

	if utf8.RuneCountInString(text) == 1 {
		d.logger.Debug("resolving character", "id", text)
		tree, err := d.Resolve(text)
		if err != nil {
			return nil, err
		}
		return decomp.Flatten(tree), nil
	}

	words, err := d.segmenter.Segment(text, cs)
	if err != nil {
		return nil, err
	}
	if len(words) == 1 && words[0] == strings.TrimSpace(text) {
		d.logger.Debug("single word input", "word", words[0])
		return d.characters(words[0]), nil
	}
	return words, nil
}

// Resolve builds the decomposition tree of id under the configured depth
// guard.
func (d *Decomposer) Resolve(id string) (*decomp.Tree, error) {
	if d.normalize {
		id = norm.NFC.String(id)
	}
	return decomp.Resolve(d.table, id, decomp.WithMaxDepth(d.maxDepth))
}

func (d *Decomposer) characters(word string) []string {
	out := []string{}
	for _, r := range word {
		if d.classifier.IsCJK(r) {
			out = append(out, string(r))
		}
	}
	return out
}
