// Package errors provides centralized error definitions and error handling utilities
// for zhong. It defines the error taxonomy shared by the decomposition table,
// the resolver, the cycle detector and the segmenter, plus classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures of a specific subsystem:
//   - MalformedRecordError: a source line (decomposition data, dictionary,
//     frequency table) could not be parsed or collides with an earlier line
//   - CycleError: a reference cycle was found while resolving or ordering
//   - SegmentationError: a contiguous CJK run could not be segmented
//   - FrequencyError: a single-character word has no frequency entry
//
// Semantic errors represent common error conditions:
//   - NotFoundError: identifier, character or file not found
//   - AlreadyExistsError: identifier defined twice
//   - ValidationError: invalid input or configuration
//
// # Usage
//
//	err := errors.NewNotFoundError("decomposition record", "好")
//	if errors.Is(err, errors.ErrNotFound) { ... }
//
//	var segErr *errors.SegmentationError
//	if errors.As(err, &segErr) {
//	    fmt.Println(segErr.Run)
//	}
//
// None of these errors is retryable: every operation that produces them is a
// deterministic function of its input.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Lookup and data sentinel errors
var (
	// ErrNotFound indicates that an identifier, character or file is absent.
	ErrNotFound = New("not found")
	// ErrMalformedRecord indicates that a source line failed structural parsing.
	ErrMalformedRecord = New("malformed record")
	// ErrDuplicateID indicates that an identifier is defined more than once.
	ErrDuplicateID = New("duplicate identifier")
)

// Graph sentinel errors
var (
	// ErrCycleDetected indicates a reference cycle in the decomposition graph.
	ErrCycleDetected = New("cycle detected")
)

// Segmentation sentinel errors
var (
	// ErrNoMatch indicates that no dictionary word starts at a position.
	ErrNoMatch = New("no dictionary word matches")
	// ErrAmbiguous indicates that more than one chunk survived every tie-break rule.
	ErrAmbiguous = New("ambiguous segmentation")
	// ErrMissingFrequencyData indicates a character without a frequency entry.
	ErrMissingFrequencyData = New("missing frequency data")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ZhongError is the base interface for all zhong errors.
type ZhongError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// MalformedRecordError reports a source line that could not be accepted.
//
// Example:
//
//	err := errors.NewMalformedRecordError("expected 4 fields, got 3", nil).
//	    WithLine(12).WithText("好:z:c")
//	fmt.Println(err) // "malformed record [line=12]: expected 4 fields, got 3"
type MalformedRecordError struct {
	baseError
	Source string // data source name (file path), if known
	Line   int    // 1-indexed source line, 0 when unknown
	Text   string // raw line text
}

// NewMalformedRecordError creates a new MalformedRecordError.
func NewMalformedRecordError(message string, cause error) *MalformedRecordError {
	return &MalformedRecordError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithLine adds the source line number to the error context.
func (e *MalformedRecordError) WithLine(line int) *MalformedRecordError {
	e.Line = line
	return e
}

// WithText adds the raw line text to the error context.
func (e *MalformedRecordError) WithText(text string) *MalformedRecordError {
	e.Text = text
	return e
}

// WithSource adds the data source name to the error context.
func (e *MalformedRecordError) WithSource(source string) *MalformedRecordError {
	e.Source = source
	return e
}

// Error returns the formatted error message.
func (e *MalformedRecordError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}

	prefix := "malformed record"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("malformed record [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *MalformedRecordError) Is(target error) bool {
	if _, ok := target.(*MalformedRecordError); ok {
		return true
	}
	if target == ErrMalformedRecord {
		return true
	}
	return e.baseError.Is(target)
}

// CycleError reports a reference cycle. Path lists the identifiers on the
// resolution path, ending with the identifier that closed the cycle (or the
// identifier at which the depth bound was exceeded).
//
// Example:
//
//	err := errors.NewCycleError("u").WithPath([]string{"u", "v", "u"})
//	fmt.Println(err) // "cycle detected [id=u]: u -> v -> u"
type CycleError struct {
	baseError
	ID       string
	Path     []string
	MaxDepth int // non-zero when the depth bound, not a revisit, stopped resolution
}

// NewCycleError creates a new CycleError for the given identifier.
func NewCycleError(id string) *CycleError {
	return &CycleError{
		baseError: baseError{
			message:    "cycle detected",
			severity:   SeverityError,
			userFacing: true,
		},
		ID: id,
	}
}

// WithPath adds the resolution path to the error context.
func (e *CycleError) WithPath(path []string) *CycleError {
	e.Path = append([]string(nil), path...)
	return e
}

// WithMaxDepth records that the depth bound was exceeded.
func (e *CycleError) WithMaxDepth(depth int) *CycleError {
	e.MaxDepth = depth
	return e
}

// WithMessage replaces the default message.
func (e *CycleError) WithMessage(message string) *CycleError {
	e.message = message
	return e
}

// Error returns the formatted error message.
func (e *CycleError) Error() string {
	prefix := e.message
	if e.ID != "" {
		prefix = fmt.Sprintf("%s [id=%s]", e.message, e.ID)
	}
	if e.MaxDepth > 0 {
		prefix = fmt.Sprintf("%s: depth limit %d exceeded", prefix, e.MaxDepth)
	}
	if len(e.Path) > 0 {
		return fmt.Sprintf("%s: %s", prefix, strings.Join(e.Path, " -> "))
	}
	return prefix
}

// Is checks if this error matches the target.
func (e *CycleError) Is(target error) bool {
	if _, ok := target.(*CycleError); ok {
		return true
	}
	if target == ErrCycleDetected {
		return true
	}
	return e.baseError.Is(target)
}

// SegmentationError reports a contiguous run that could not be covered by
// dictionary words. Run is always the entire run, never the unmatched suffix.
//
// Example:
//
//	err := errors.NewSegmentationError("ABABXX", errors.ErrNoMatch).WithOffset(4)
//	fmt.Println(err) // `segmentation error [offset=4]: cannot segment "ABABXX": no dictionary word matches`
type SegmentationError struct {
	baseError
	Run    string
	Offset int // rune offset within Run where segmentation stopped
}

// NewSegmentationError creates a new SegmentationError. The reason is
// normally ErrNoMatch or ErrAmbiguous.
func NewSegmentationError(run string, reason error) *SegmentationError {
	return &SegmentationError{
		baseError: baseError{
			message:    fmt.Sprintf("cannot segment %q", run),
			cause:      reason,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Run:    run,
		Offset: -1,
	}
}

// WithOffset adds the failing rune offset to the error context.
func (e *SegmentationError) WithOffset(offset int) *SegmentationError {
	e.Offset = offset
	return e
}

// Error returns the formatted error message.
func (e *SegmentationError) Error() string {
	prefix := "segmentation error"
	if e.Offset >= 0 {
		prefix = fmt.Sprintf("segmentation error [offset=%d]", e.Offset)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *SegmentationError) Is(target error) bool {
	if _, ok := target.(*SegmentationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// FrequencyError reports a character that has no frequency entry when one is
// required for tie-breaking.
type FrequencyError struct {
	baseError
	Character string
}

// NewFrequencyError creates a new FrequencyError for the given character.
func NewFrequencyError(character string) *FrequencyError {
	return &FrequencyError{
		baseError: baseError{
			message:    fmt.Sprintf("no frequency entry for %q", character),
			severity:   SeverityError,
			userFacing: true,
		},
		Character: character,
	}
}

// WithCause adds a cause to the error.
func (e *FrequencyError) WithCause(cause error) *FrequencyError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *FrequencyError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("frequency error: %s: %v", e.message, e.cause)
	}
	return fmt.Sprintf("frequency error: %s", e.message)
}

// Is checks if this error matches the target.
func (e *FrequencyError) Is(target error) bool {
	if _, ok := target.(*FrequencyError); ok {
		return true
	}
	if target == ErrMissingFrequencyData {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("decomposition record", "好")
//	fmt.Println(err) // "decomposition record '好' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if target == ErrNotFound {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("decomposition record", "好")
//	fmt.Println(err) // "decomposition record '好' already exists"
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity:   SeverityError,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	if target == ErrDuplicateID {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("unknown character set").
//	    WithField("segment.character_set").WithValue("latin")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var zhongErr ZhongError
	if As(err, &zhongErr) {
		return zhongErr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement ZhongError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var zhongErr ZhongError
	if As(err, &zhongErr) {
		return zhongErr.Severity()
	}

	return SeverityError
}

// IsDomainError returns true if the error is a domain-specific error
// (MalformedRecordError, CycleError, SegmentationError or FrequencyError).
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}

	var malformed *MalformedRecordError
	var cycle *CycleError
	var segmentation *SegmentationError
	var frequency *FrequencyError

	return As(err, &malformed) || As(err, &cycle) ||
		As(err, &segmentation) || As(err, &frequency)
}

// IsSemanticError returns true if the error is a semantic error
// (NotFoundError, AlreadyExistsError or ValidationError).
func IsSemanticError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError

	return As(err, &notFound) || As(err, &alreadyExists) || As(err, &validation)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load decomposition data")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to load %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
