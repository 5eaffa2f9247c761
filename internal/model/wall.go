package model

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// hashLength is the number of characters in a wall's display hash.
const hashLength = 4

// Wall is a named collaborative word-collection board.
//
// The id is fixed at construction. Name and active state are shared mutable
// fields; every holder of the pointer sees the same values.
type Wall struct {
	id        string
	createdAt time.Time

	mu     sync.RWMutex
	name   string
	active bool
}

// NewWall creates an active, unnamed wall with the given id.
func NewWall(id string, createdAt time.Time) *Wall {
	return &Wall{
		id:        id,
		createdAt: createdAt,
		active:    true,
	}
}

// ID returns the wall's unique identifier.
func (w *Wall) ID() string {
	return w.id
}

// CreatedAt returns the wall's creation time.
func (w *Wall) CreatedAt() time.Time {
	return w.createdAt
}

// Name returns the wall's display label.
func (w *Wall) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// SetName replaces the wall's display label.
func (w *Wall) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}

// Active reports whether the wall accepts new word submissions.
func (w *Wall) Active() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// SetActive opens or closes the wall for new word submissions.
func (w *Wall) SetActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

// Hash returns the 4-character display token for the wall.
// It is derived from the id on every call and is not guaranteed unique.
func (w *Wall) Hash() string {
	return HashID(w.id)
}

// HashID computes the display hash for a wall id: the last four decimal
// digits of the id's 64-bit FNV-1a digest, zero padded.
func HashID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("%0*d", hashLength, h.Sum64()%10000)
}

// WallSummary is the public listing shape of a wall.
type WallSummary struct {
	ID   string `json:"id"`
	Hash string `json:"hash"`
}

// WallDetail is the full public shape of a wall.
type WallDetail struct {
	ID        string    `json:"id"`
	Hash      string    `json:"hash"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the listing shape for the wall.
func (w *Wall) Summary() WallSummary {
	return WallSummary{ID: w.id, Hash: w.Hash()}
}

// Detail returns a consistent snapshot of the wall's fields.
func (w *Wall) Detail() WallDetail {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return WallDetail{
		ID:        w.id,
		Hash:      HashID(w.id),
		Name:      w.name,
		Active:    w.active,
		CreatedAt: w.createdAt,
	}
}
