package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/zhong/internal/charset"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "segment.max_word_length")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidOutputFormats returns the list of valid output formats
func ValidOutputFormats() []string {
	return []string{"text", "json", "yaml"}
}

// maxWordLengthLimit caps the look-ahead window; chunk enumeration is
// exponential in it.
const maxWordLengthLimit = 32

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateData()...)
	errors = append(errors, c.validateSegment()...)
	errors = append(errors, c.validateResolve()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateOutput()...)

	return errors
}

func (c *Config) validateData() []ValidationError {
	var errors []ValidationError

	paths := []struct {
		field string
		value string
	}{
		{"data.decomposition_file", c.Data.DecompositionFile},
		{"data.dictionary_file", c.Data.DictionaryFile},
		{"data.traditional_frequency_file", c.Data.TraditionalFrequencyFile},
		{"data.simplified_frequency_file", c.Data.SimplifiedFrequencyFile},
	}

	for _, p := range paths {
		if strings.ContainsRune(p.value, '\x00') {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "path contains invalid null character",
			})
		}
	}

	return errors
}

// validateSegment validates the SegmentConfig
func (c *Config) validateSegment() []ValidationError {
	var errors []ValidationError

	if _, err := charset.Parse(c.Segment.CharacterSet); err != nil {
		errors = append(errors, ValidationError{
			Field:   "segment.character_set",
			Value:   c.Segment.CharacterSet,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(charset.Names(), ", ")),
		})
	}

	if c.Segment.MaxWordLength < 1 {
		errors = append(errors, ValidationError{
			Field:   "segment.max_word_length",
			Value:   c.Segment.MaxWordLength,
			Message: "must be at least 1",
		})
	} else if c.Segment.MaxWordLength > maxWordLengthLimit {
		errors = append(errors, ValidationError{
			Field:   "segment.max_word_length",
			Value:   c.Segment.MaxWordLength,
			Message: fmt.Sprintf("exceeds maximum of %d", maxWordLengthLimit),
		})
	}

	if c.Segment.ChunkLength < 1 {
		errors = append(errors, ValidationError{
			Field:   "segment.chunk_length",
			Value:   c.Segment.ChunkLength,
			Message: "must be at least 1",
		})
	}

	if c.Segment.Parallelism < 0 {
		errors = append(errors, ValidationError{
			Field:   "segment.parallelism",
			Value:   c.Segment.Parallelism,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateResolve() []ValidationError {
	var errors []ValidationError

	if c.Resolve.MaxDepth < 1 {
		errors = append(errors, ValidationError{
			Field:   "resolve.max_depth",
			Value:   c.Resolve.MaxDepth,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if c.Output.Format != "" && !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
		})
	}

	return errors
}
