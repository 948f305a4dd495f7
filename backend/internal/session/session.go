// Package session keeps the most recent report in memory. A new upload
// replaces the previous report wholesale; nothing is written to disk.
package session

import (
	"sync"

	"ghostcheck/backend/internal/analysis"
)

// Store holds at most one report
type Store struct {
	mu     sync.RWMutex
	report *analysis.Report
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new report and returns the one it displaced
func (s *Store) Replace(r *analysis.Report) *analysis.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.report
	s.report = r
	return prev
}

// Current returns the latest report, if any
func (s *Store) Current() (*analysis.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report, s.report != nil
}

// Clear forgets the current report
func (s *Store) Clear() {
	s.mu.Lock()
	s.report = nil
	s.mu.Unlock()
}
