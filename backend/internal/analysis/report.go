// Package analysis runs the extraction pipeline over an export archive and
// assembles the per-file collections and relationship breakdown.
package analysis

import (
	"fmt"
	"strings"
	"time"

	"ghostcheck/backend/internal/classify"
	"ghostcheck/backend/internal/compare"
	"ghostcheck/backend/internal/extract"
)

// Level grades a diagnostic line
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Diagnostic is one line of the human-readable extraction log
type Diagnostic struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Level   Level  `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("[%s] %s", d.Level, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Level, d.File, d.Message)
}

// Status says whether a relationship breakdown could be computed
type Status string

const (
	StatusReady            Status = "ready"
	StatusInsufficientData Status = "insufficient_data"
)

// Comparison is the relationship section of a report
type Comparison struct {
	Status        Status                 `json:"status" yaml:"status"`
	Following     []string               `json:"following_sources,omitempty" yaml:"following_sources,omitempty"`
	Followers     []string               `json:"followers_sources,omitempty" yaml:"followers_sources,omitempty"`
	Relationships *compare.Relationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Guidance      string                 `json:"guidance,omitempty" yaml:"guidance,omitempty"`
}

// Ready reports whether ghosts, fans and mutuals are available
func (c Comparison) Ready() bool {
	return c.Status == StatusReady && c.Relationships != nil
}

// FileSummary describes one JSON entry that was processed
type FileSummary struct {
	Name    string        `json:"name" yaml:"name"`
	Path    string        `json:"path" yaml:"path"`
	Role    classify.Role `json:"role" yaml:"role"`
	Records int           `json:"records" yaml:"records"`
	Failed  bool          `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Report is the immutable result of analysing one archive
type Report struct {
	ID          string                    `json:"id" yaml:"id"`
	Source      string                    `json:"source" yaml:"source"`
	CreatedAt   time.Time                 `json:"created_at" yaml:"created_at"`
	Files       []FileSummary             `json:"files" yaml:"files"`
	Collections []extract.NamedCollection `json:"collections" yaml:"collections"`
	Comparison  Comparison                `json:"comparison" yaml:"comparison"`
	Diagnostics []Diagnostic              `json:"diagnostics" yaml:"diagnostics"`
}

// Collection finds a collection by name. File collections match exactly and
// take precedence; the relationship partitions are then addressable as
// "ghosts", "fans" and "mutuals" (any case) once a comparison is ready.
func (r *Report) Collection(name string) (extract.NamedCollection, bool) {
	for _, c := range r.Collections {
		if c.Name == name {
			return c, true
		}
	}
	if r.Comparison.Ready() {
		for _, c := range r.Comparison.Relationships.Collections() {
			if strings.EqualFold(c.Name, name) {
				return c, true
			}
		}
	}
	return extract.NamedCollection{}, false
}

// Names lists every addressable collection in display order
func (r *Report) Names() []string {
	var names []string
	if r.Comparison.Ready() {
		for _, c := range r.Comparison.Relationships.Collections() {
			names = append(names, c.Name)
		}
	}
	for _, c := range r.Collections {
		names = append(names, c.Name)
	}
	return names
}

// TotalRecords counts records across per-file collections
func (r *Report) TotalRecords() int {
	total := 0
	for _, c := range r.Collections {
		total += c.Len()
	}
	return total
}

// BatchError carries the diagnostics gathered before a batch-level failure
// so callers can explain why nothing was found.
type BatchError struct {
	Err         error
	Diagnostics []Diagnostic
}

func (e *BatchError) Error() string {
	return e.Err.Error()
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
