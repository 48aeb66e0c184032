package models

// Bubble is an ephemeral, location-tagged message with a time-to-live.
// Bubbles are created on post and never mutated; they disappear either
// lazily (filtered out of queries once expired) or eagerly (removed by
// the periodic sweep).
type Bubble struct {
	// ID is assigned by the store, never by the caller.
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	// LocationKey is an optional coarse spatial bucket used for
	// exact-match filtering independent of radius search.
	LocationKey string `json:"locationKey,omitempty"`

	// Duration is the time-to-live in seconds.
	Duration int64 `json:"duration"`
	// CreatedAt is assigned by the store, in epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// ExpireAt returns the expiry instant in epoch milliseconds.
func (b Bubble) ExpireAt() int64 {
	return b.CreatedAt + b.Duration*1000
}

// Live reports whether the bubble is still visible at the given
// instant. The boundary is half-open: a bubble is dead at exactly
// ExpireAt.
func (b Bubble) Live(now int64) bool {
	return now < b.ExpireAt()
}

// BubblePayload is the caller-supplied part of a bubble. The store
// stamps ID and CreatedAt on insert.
type BubblePayload struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	LocationKey string  `json:"locationKey,omitempty"`
	Duration    int64   `json:"duration"`
}
