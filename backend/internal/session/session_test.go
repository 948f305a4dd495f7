package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"ghostcheck/backend/internal/analysis"
)

func TestStore_ReplaceAndClear(t *testing.T) {
	s := NewStore()

	_, ok := s.Current()
	assert.False(t, ok)

	first := &analysis.Report{ID: "one"}
	second := &analysis.Report{ID: "two"}

	assert.Nil(t, s.Replace(first))
	assert.Same(t, first, s.Replace(second))

	got, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "two", got.ID)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Replace(&analysis.Report{ID: "r"})
		}()
		go func() {
			defer wg.Done()
			s.Current()
		}()
	}
	wg.Wait()

	got, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "r", got.ID)
}
