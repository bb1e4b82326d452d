package models

import (
	"fmt"
	"sync"
)

// FileStatus summarizes the outcome of processing one source file.
type FileStatus int

const (
	StatusWritten FileStatus = iota
	StatusNoDocs             // no documentation blocks, silently skipped
	StatusError              // structural or I/O error, skipped with report
)

// StructuralError marks a file as malformed: unterminated documentation
// block, unbalanced conditional directives, or an I/O failure on that
// file. It isolates the failure to the file; the run continues.
type StructuralError struct {
	Path   string
	Line   int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Warning is a non-fatal finding (callout mismatch, unknown language tag).
type Warning struct {
	Path    string
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", w.Path, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// FileReport is the per-file outcome collected into the run report.
type FileReport struct {
	RelativePath string
	Status       FileStatus
	Err          *StructuralError
	Warnings     []Warning
	OutputPath   string
	Digest       uint64 // xxh3 of the written document, 0 if none
}

// RunReport aggregates per-file outcomes for one batch run. Safe for
// concurrent use by the worker pool.
type RunReport struct {
	mu    sync.Mutex
	files []FileReport
}

func (r *RunReport) Add(fr FileReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, fr)
}

// Files returns a copy of the collected per-file reports.
func (r *RunReport) Files() []FileReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FileReport, len(r.files))
	copy(out, r.files)
	return out
}

func (r *RunReport) count(s FileStatus) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.files {
		if f.Status == s {
			n++
		}
	}
	return n
}

func (r *RunReport) Written() int { return r.count(StatusWritten) }
func (r *RunReport) NoDocs() int  { return r.count(StatusNoDocs) }
func (r *RunReport) Errors() int  { return r.count(StatusError) }

func (r *RunReport) WarningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.files {
		n += len(f.Warnings)
	}
	return n
}
