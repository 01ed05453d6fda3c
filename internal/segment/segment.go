// Package segment splits Chinese text into dictionary words.
//
// Each contiguous CJK run is segmented left to right. At every position the
// segmenter enumerates the chunks of up to three consecutive dictionary
// words that start there and keeps the first word of the best chunk. Ties
// are broken, in order, by the longest total chunk length, the fewest
// words, and the highest morphic freedom (the sum of log frequencies of
// the chunk's single-character words).
package segment

import (
	"math"
	"slices"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/Iron-Ham/zhong/internal/charset"
	"github.com/Iron-Ham/zhong/internal/cjk"
	"github.com/Iron-Ham/zhong/internal/errors"
	"github.com/Iron-Ham/zhong/internal/logging"
)

// Lexicon answers whether a string is a word in a character set.
type Lexicon interface {
	HasWord(cs charset.CharacterSet, text string) bool
}

// FrequencyTable returns the usage frequency of a single character.
type FrequencyTable interface {
	Get(ch string) (float64, error)
}

// Classifier decides which runes belong to CJK runs.
type Classifier interface {
	IsCJK(r rune) bool
	IsPunctuationOrWhitespace(r rune) bool
}

const (
	DefaultMaxWordLength = 9
	DefaultChunkLength   = 3
)

// Segmenter holds the lexicon, frequency tables and limits used for
// segmentation. It is immutable after New and safe for concurrent use.
type Segmenter struct {
	lexicon       Lexicon
	frequencies   map[charset.CharacterSet]FrequencyTable
	classifier    Classifier
	maxWordLength int
	chunkLength   int
	parallelism   int
	logger        *logging.Logger
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithMaxWordLength bounds dictionary words to n characters. Values below 1
// keep the default.
func WithMaxWordLength(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.maxWordLength = n
		}
	}
}

// WithChunkLength sets how many words each look-ahead chunk may hold.
// Values below 1 keep the default.
func WithChunkLength(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.chunkLength = n
		}
	}
}

// WithFrequencyTable installs the frequency table used for the sets in cs.
func WithFrequencyTable(cs charset.CharacterSet, table FrequencyTable) Option {
	return func(s *Segmenter) {
		if cs.Has(charset.Traditional) {
			s.frequencies[charset.Traditional] = table
		}
		if cs.Has(charset.Simplified) {
			s.frequencies[charset.Simplified] = table
		}
	}
}

// WithClassifier replaces cjk.Default.
func WithClassifier(c Classifier) Option {
	return func(s *Segmenter) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithParallelism segments up to n runs at once. Values of 1 or less run
// sequentially.
func WithParallelism(n int) Option {
	return func(s *Segmenter) {
		s.parallelism = n
	}
}

// WithLogger enables DEBUG logging of tie-break decisions.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Segmenter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Segmenter over lex.
func New(lex Lexicon, opts ...Option) *Segmenter {
	s := &Segmenter{
		lexicon:       lex,
		frequencies:   make(map[charset.CharacterSet]FrequencyTable),
		classifier:    cjk.Default,
		maxWordLength: DefaultMaxWordLength,
		chunkLength:   DefaultChunkLength,
		parallelism:   1,
		logger:        logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("segment")
	return s
}

// MaxWordLength returns the configured word length bound.
func (s *Segmenter) MaxWordLength() int { return s.maxWordLength }

// frequencyTable returns the table for cs, preferring traditional when cs
// holds both sets. It returns nil when none is configured.
func (s *Segmenter) frequencyTable(cs charset.CharacterSet) FrequencyTable {
	if cs.Has(charset.Traditional) {
		if t := s.frequencies[charset.Traditional]; t != nil {
			return t
		}
	}
	if cs.Has(charset.Simplified) {
		if t := s.frequencies[charset.Simplified]; t != nil {
			return t
		}
	}
	return nil
}

// SplitIntoContiguousRuns returns the maximal CJK runs of text in order.
// Everything else, including punctuation and white space, only separates
// runs and is discarded.
func SplitIntoContiguousRuns(text string, c Classifier) []string {
	runs := []string{}
	start := -1
	for i, r := range text {
		inRun := c.IsCJK(r) && !c.IsPunctuationOrWhitespace(r)
		switch {
		case inRun && start < 0:
			start = i
		case !inRun && start >= 0:
			runs = append(runs, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, text[start:])
	}
	return runs
}

// EnumerateChunks lists every sequence of up to chunkLength dictionary
// words starting at pos. A chunk stops early only at the end of runes.
//
// It returns [[]] when chunkLength is 0 or pos is at the end, and an empty
// slice when no word starts at pos.
func (s *Segmenter) EnumerateChunks(runes []rune, pos int, cs charset.CharacterSet, chunkLength int) [][]string {
	if chunkLength <= 0 || pos >= len(runes) {
		return [][]string{{}}
	}

	chunks := [][]string{}
	limit := min(s.maxWordLength, len(runes)-pos)
	for k := 1; k <= limit; k++ {
		word := string(runes[pos : pos+k])
		if !s.lexicon.HasWord(cs, word) {
			continue
		}
		for _, tail := range s.EnumerateChunks(runes, pos+k, cs, chunkLength-1) {
			chunk := make([]string, 0, len(tail)+1)
			chunk = append(chunk, word)
			chunk = append(chunk, tail...)
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// ChunkLength returns the total number of characters in chunk.
func ChunkLength(chunk []string) int {
	n := 0
	for _, w := range chunk {
		n += utf8.RuneCountInString(w)
	}
	return n
}

// MorphicFreedom sums the natural log of the frequency of every
// single-character word in chunk. A zero frequency contributes -Inf.
// A missing entry, or a nil table when one is needed, is a FrequencyError.
func MorphicFreedom(chunk []string, table FrequencyTable) (float64, error) {
	var logs []float64
	for _, w := range chunk {
		if utf8.RuneCountInString(w) != 1 {
			continue
		}
		if table == nil {
			return 0, errors.NewFrequencyError(w)
		}
		v, err := table.Get(w)
		if err != nil {
			return 0, errors.NewFrequencyError(w).WithCause(err)
		}
		logs = append(logs, math.Log(v))
	}

	// Fixed summation order: equal multisets give bit-identical scores.
	slices.Sort(logs)
	total := 0.0
	for _, l := range logs {
		total += l
	}
	return total, nil
}

// Status is the outcome of NextWord.
type Status int

const (
	NoMatch Status = iota
	Found
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no match"
	}
}

// Match is the result of NextWord. Candidates holds the chunks left after
// tie-breaking: one when Found, several when Ambiguous, none on NoMatch.
type Match struct {
	Status     Status
	Word       string
	Candidates [][]string
}

// NextWord chooses the word that starts at pos. The error return is used
// only when frequencies are needed and missing.
func (s *Segmenter) NextWord(runes []rune, pos int, cs charset.CharacterSet) (Match, error) {
	if pos >= len(runes) {
		return Match{Status: NoMatch}, nil
	}

	candidates := s.EnumerateChunks(runes, pos, cs, s.chunkLength)
	if len(candidates) == 0 {
		return Match{Status: NoMatch}, nil
	}
	if len(candidates) == 1 {
		return found(candidates), nil
	}

	survivors := keepBest(candidates, func(c []string) float64 { return float64(ChunkLength(c)) })
	if len(survivors) == 1 {
		s.logger.Debug("tie-break", "pos", pos, "rule", "chunk_length", "candidates", len(candidates))
		return found(survivors), nil
	}

	survivors = keepBest(survivors, func(c []string) float64 { return -float64(len(c)) })
	if len(survivors) == 1 {
		s.logger.Debug("tie-break", "pos", pos, "rule", "word_count", "candidates", len(candidates))
		return found(survivors), nil
	}

	table := s.frequencyTable(cs)
	scores := make([]float64, len(survivors))
	best := math.Inf(-1)
	for i, c := range survivors {
		score, err := MorphicFreedom(c, table)
		if err != nil {
			return Match{}, err
		}
		scores[i] = score
		best = max(best, score)
	}
	var top [][]string
	for i, c := range survivors {
		if scores[i] == best {
			top = append(top, c)
		}
	}
	if len(top) == 1 {
		s.logger.Debug("tie-break", "pos", pos, "rule", "morphic_freedom", "candidates", len(candidates))
		return found(top), nil
	}

	s.logger.Debug("ambiguous position", "pos", pos, "survivors", len(top))
	return Match{Status: Ambiguous, Candidates: top}, nil
}

func found(chunks [][]string) Match {
	return Match{Status: Found, Word: chunks[0][0], Candidates: chunks}
}

// keepBest returns the chunks with the highest score.
func keepBest(chunks [][]string, score func([]string) float64) [][]string {
	best := math.Inf(-1)
	for _, c := range chunks {
		best = max(best, score(c))
	}
	var out [][]string
	for _, c := range chunks {
		if score(c) == best {
			out = append(out, c)
		}
	}
	return out
}

// SegmentRun segments one contiguous CJK run. Failure at any offset is a
// SegmentationError naming the whole run.
func (s *Segmenter) SegmentRun(run string, cs charset.CharacterSet) ([]string, error) {
	runes := []rune(run)
	words := []string{}

	for pos := 0; pos < len(runes); {
		m, err := s.NextWord(runes, pos, cs)
		if err != nil {
			return nil, err
		}
		switch m.Status {
		case NoMatch:
			return nil, errors.NewSegmentationError(run, errors.ErrNoMatch).WithOffset(pos)
		case Ambiguous:
			return nil, errors.NewSegmentationError(run, errors.ErrAmbiguous).WithOffset(pos)
		}
		words = append(words, m.Word)
		pos += utf8.RuneCountInString(m.Word)
	}
	return words, nil
}

// Segment splits text into CJK runs and segments each. Output order follows
// the input. When several runs fail, the error of the first one is
// returned.
func (s *Segmenter) Segment(text string, cs charset.CharacterSet) ([]string, error) {
	runs := SplitIntoContiguousRuns(text, s.classifier)

	results := make([][]string, len(runs))
	if s.parallelism <= 1 || len(runs) < 2 {
		for i, run := range runs {
			words, err := s.SegmentRun(run, cs)
			if err != nil {
				return nil, err
			}
			results[i] = words
		}
		return concat(results), nil
	}

	errs := make([]error, len(runs))
	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for i, run := range runs {
		g.Go(func() error {
			results[i], errs[i] = s.SegmentRun(run, cs)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return concat(results), nil
}

func concat(parts [][]string) []string {
	out := slices.Concat(parts...)
	if out == nil {
		return []string{}
	}
	return out
}
