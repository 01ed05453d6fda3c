package cmd

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"golang.org/x/text/unicode/norm"

	"github.com/Iron-Ham/zhong/internal/charset"
	"github.com/Iron-Ham/zhong/internal/config"
	"github.com/Iron-Ham/zhong/internal/datasource"
	"github.com/Iron-Ham/zhong/internal/decomp"
	"github.com/Iron-Ham/zhong/internal/decompose"
	"github.com/Iron-Ham/zhong/internal/errors"
	"github.com/Iron-Ham/zhong/internal/frequency"
	"github.com/Iron-Ham/zhong/internal/lexicon"
	"github.com/Iron-Ham/zhong/internal/logging"
	"github.com/Iron-Ham/zhong/internal/segment"
)

// appFs is the filesystem data files are read from.
var appFs = afero.NewOsFs()

// runtime holds the validated configuration and the loaders shared by the
// subcommands.
type runtime struct {
	cfg     *config.Config
	data    config.DataConfig
	charset charset.CharacterSet
	fs      afero.Fs
	logger  *logging.Logger
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cs, err := charset.Parse(cfg.Segment.CharacterSet)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Logging.File, logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}

	baseDir := ""
	if used := viper.ConfigFileUsed(); used != "" {
		baseDir = filepath.Dir(used)
	}

	return &runtime{
		cfg:     cfg,
		data:    cfg.ResolvedData(baseDir),
		charset: cs,
		fs:      appFs,
		logger:  logger,
	}, nil
}

func (r *runtime) Close() error {
	return r.logger.Close()
}

func (r *runtime) readLines(field, path string) ([]datasource.Line, error) {
	if path == "" {
		return nil, errors.NewValidationError("no data file configured").WithField(field)
	}
	lines, err := datasource.ReadFile(r.fs, path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("read data file", "field", field, "path", path, "lines", len(lines))
	return lines, nil
}

// loadTable loads the decomposition table from path, or from the configured
// file when path is empty.
func (r *runtime) loadTable(path string) (*decomp.Table, error) {
	if path == "" {
		path = r.data.DecompositionFile
	}
	lines, err := r.readLines("data.decomposition_file", path)
	if err != nil {
		return nil, err
	}
	return decomp.Load(lines,
		decomp.WithLogger(r.logger.WithSource(path)),
		decomp.WithSource(filepath.Base(path)))
}

func (r *runtime) loadDictionary() (*lexicon.Dictionary, error) {
	lines, err := r.readLines("data.dictionary_file", r.data.DictionaryFile)
	if err != nil {
		return nil, err
	}
	dict := lexicon.New()
	if err := dict.Load(lines); err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", r.data.DictionaryFile)
	}
	r.logger.Debug("loaded dictionary", "entries", dict.Len(), "max_word_length", dict.MaxWordLength())
	return dict, nil
}

func (r *runtime) loadFrequencies(field, path string) (*frequency.Table, error) {
	lines, err := r.readLines(field, path)
	if err != nil {
		return nil, err
	}
	table, err := frequency.Load(lines)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return table, nil
}

// newSegmenter builds a segmenter from the dictionary and whichever
// frequency tables are configured.
func (r *runtime) newSegmenter() (*segment.Segmenter, error) {
	dict, err := r.loadDictionary()
	if err != nil {
		return nil, err
	}

	opts := []segment.Option{
		segment.WithMaxWordLength(r.cfg.Segment.MaxWordLength),
		segment.WithChunkLength(r.cfg.Segment.ChunkLength),
		segment.WithParallelism(r.cfg.Segment.Parallelism),
		segment.WithLogger(r.logger.WithCharacterSet(r.charset.String())),
	}

	tables := []struct {
		field string
		path  string
		cs    charset.CharacterSet
	}{
		{"data.traditional_frequency_file", r.data.TraditionalFrequencyFile, charset.Traditional},
		{"data.simplified_frequency_file", r.data.SimplifiedFrequencyFile, charset.Simplified},
	}
	for _, t := range tables {
		if t.path == "" {
			continue
		}
		table, err := r.loadFrequencies(t.field, t.path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, segment.WithFrequencyTable(t.cs, table))
	}

	return segment.New(dict, opts...), nil
}

// newDecomposer loads the table, plus the segmenter when text is longer
// than one character.
func (r *runtime) newDecomposer(text string) (*decompose.Decomposer, error) {
	table, err := r.loadTable("")
	if err != nil {
		return nil, err
	}

	if r.cfg.Segment.NormalizeInput {
		text = norm.NFC.String(text)
	}
	var seg *segment.Segmenter
	if utf8.RuneCountInString(text) != 1 {
		if seg, err = r.newSegmenter(); err != nil {
			return nil, err
		}
	}

	return decompose.New(table, seg,
		decompose.WithMaxDepth(r.cfg.Resolve.MaxDepth),
		decompose.WithNormalization(r.cfg.Segment.NormalizeInput),
		decompose.WithLogger(r.logger),
	), nil
}
