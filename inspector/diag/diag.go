package diag

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrorCode represents stable codes for the failure and informational kinds of a run
type ErrorCode string

const (
	// ConfigParse indicates malformed alias or analyzer configuration; the run falls back to defaults
	ConfigParse ErrorCode = "CONFIG_PARSE"
	// FileRead indicates a source file could not be read; the file is excluded
	FileRead ErrorCode = "FILE_READ"
	// DirList indicates a directory could not be listed during discovery; the subtree is skipped
	DirList ErrorCode = "DIR_LIST"
	// FileTooLarge indicates a source file above the configured size cap; the file is excluded
	FileTooLarge ErrorCode = "FILE_TOO_LARGE"
	// UnsupportedExtension indicates a configured extension with no grammar
	UnsupportedExtension ErrorCode = "UNSUPPORTED_EXTENSION"
	// UnresolvedImport is informational: a local specifier matched no file
	UnresolvedImport ErrorCode = "UNRESOLVED_IMPORT"
	// EmptyProject is fatal: no root directories or no files discovered
	EmptyProject ErrorCode = "EMPTY_PROJECT"
)

// Severity of a recorded diagnostic
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Error is a coded error carrying the path it relates to
type Error struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
	Path    string    `json:"path,omitempty" yaml:"path,omitempty"`
	cause   error
}

// New creates a coded error
func New(code ErrorCode, path, message string, cause error) *Error {
	return &Error{Code: code, Path: path, Message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// IsCode reports whether err, or any error it wraps, is an *Error with the given code
func IsCode(err error, code ErrorCode) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// Diagnostic is a recovered problem recorded during a run
type Diagnostic struct {
	Code     ErrorCode `json:"code" yaml:"code"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Path     string    `json:"path,omitempty" yaml:"path,omitempty"`
	Message  string    `json:"message" yaml:"message"`
}

func severityOf(code ErrorCode) Severity {
	switch code {
	case UnresolvedImport:
		return SeverityInfo
	case EmptyProject:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// Diagnostics collects diagnostics from concurrent workers
type Diagnostics struct {
	mux   sync.Mutex
	items []Diagnostic
}

// Add records a diagnostic
func (d *Diagnostics) Add(code ErrorCode, path, message string) {
	d.mux.Lock()
	d.items = append(d.items, Diagnostic{Code: code, Severity: severityOf(code), Path: path, Message: message})
	d.mux.Unlock()
}

// AddError records err; coded errors keep their code, others are recorded with fallback
func (d *Diagnostics) AddError(fallback ErrorCode, path string, err error) {
	if err == nil {
		return
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Path != "" {
			path = coded.Path
		}
		d.Add(coded.Code, path, err.Error())
		return
	}
	d.Add(fallback, path, err.Error())
}

// Items returns diagnostics ordered by path, then code, then message
func (d *Diagnostics) Items() []Diagnostic {
	d.mux.Lock()
	result := append([]Diagnostic(nil), d.items...)
	d.mux.Unlock()
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		if result[i].Code != result[j].Code {
			return result[i].Code < result[j].Code
		}
		return result[i].Message < result[j].Message
	})
	return result
}

// Count returns the number of diagnostics with the given code
func (d *Diagnostics) Count(code ErrorCode) int {
	d.mux.Lock()
	defer d.mux.Unlock()
	count := 0
	for _, item := range d.items {
		if item.Code == code {
			count++
		}
	}
	return count
}

// Len returns the number of recorded diagnostics
func (d *Diagnostics) Len() int {
	d.mux.Lock()
	defer d.mux.Unlock()
	return len(d.items)
}
