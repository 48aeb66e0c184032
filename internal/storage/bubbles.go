package storage

import (
	"sync"
	"time"

	"momentmap/backend/internal/geo"
	"momentmap/backend/internal/models"
)

// BubbleFilter narrows a bubble query. Now is mandatory (expiry
// filtering always applies); the spatial dimensions are optional and a
// nil pointer or empty key means "dimension not filtered". Range is
// only applied when Lat, Lng and Range are all present.
type BubbleFilter struct {
	Now         int64
	Lat         *float64
	Lng         *float64
	Range       *float64
	LocationKey string
}

// BubbleStorage is the interface the handlers and the sweeper depend
// on, so tests can substitute a mock.
type BubbleStorage interface {
	// Insert stamps an id and creation time onto the payload and
	// stores the resulting bubble. It always succeeds; a non-positive
	// duration yields a bubble that is already expired.
	Insert(p models.BubblePayload) models.Bubble
	// Query returns the live bubbles matching the filter, in
	// insertion order.
	Query(f BubbleFilter) []models.Bubble
	// Delete removes the bubble with the given id and reports whether
	// a removal occurred. Deleting a missing id is not an error.
	Delete(id string) bool
	// Sweep removes every bubble whose expiry is at or before now and
	// returns the number removed.
	Sweep(now int64) int
	// Len returns the number of stored bubbles, expired or not.
	Len() int
}

// BubbleStore is the in-memory owner of all live bubbles. A single
// RWMutex serializes writers; the slice keeps insertion order, which
// is the order queries return.
type BubbleStore struct {
	mu      sync.RWMutex
	bubbles []models.Bubble
}

// NewBubbleStore returns an empty store.
func NewBubbleStore() *BubbleStore {
	return &BubbleStore{}
}

func (s *BubbleStore) Insert(p models.BubblePayload) models.Bubble {
	now := time.Now()
	b := models.Bubble{
		ID:          newID("bubble", now),
		Title:       p.Title,
		Content:     p.Content,
		Lat:         p.Lat,
		Lng:         p.Lng,
		LocationKey: p.LocationKey,
		Duration:    p.Duration,
		CreatedAt:   now.UnixMilli(),
	}

	s.mu.Lock()
	s.bubbles = append(s.bubbles, b)
	s.mu.Unlock()

	return b
}

func (s *BubbleStore) Query(f BubbleFilter) []models.Bubble {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Bubble, 0, len(s.bubbles))
	for _, b := range s.bubbles {
		if !b.Live(f.Now) {
			continue
		}
		if f.LocationKey != "" && b.LocationKey != f.LocationKey {
			continue
		}
		if f.Lat != nil && f.Lng != nil && f.Range != nil {
			if geo.DistanceMeters(*f.Lat, *f.Lng, b.Lat, b.Lng) > *f.Range {
				continue
			}
		}
		result = append(result, b)
	}
	return result
}

func (s *BubbleStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bubbles {
		if b.ID == id {
			s.bubbles = append(s.bubbles[:i], s.bubbles[i+1:]...)
			return true
		}
	}
	return false
}

func (s *BubbleStore) Sweep(now int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.bubbles[:0]
	for _, b := range s.bubbles {
		if b.Live(now) {
			kept = append(kept, b)
		}
	}
	removed := len(s.bubbles) - len(kept)
	s.bubbles = kept
	return removed
}

func (s *BubbleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bubbles)
}
