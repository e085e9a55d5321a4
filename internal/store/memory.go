package store

import (
	"sync"

	"github.com/akozlov/weather-archive/internal/archive"
)

// SeriesStore holds the currently loaded archive series. The series itself
// is immutable; the only mutation is swapping in a freshly loaded one, so
// readers always see a consistent snapshot.
type SeriesStore struct {
	mu     sync.RWMutex
	series *archive.Series
}

// NewSeriesStore creates a store around an initial series.
func NewSeriesStore(series *archive.Series) *SeriesStore {
	return &SeriesStore{series: series}
}

// Current returns the loaded series.
func (s *SeriesStore) Current() *archive.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series
}

// Replace swaps in a newly loaded series. In-flight readers keep the
// snapshot they already hold.
func (s *SeriesStore) Replace(series *archive.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = series
}
