// Package wall keeps the process-wide set of word walls.
package wall

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/wordwall/backend/internal/model"
)

// Registry owns the canonical Wall instances in creation order.
// Walls are never removed; they live as long as the registry.
type Registry struct {
	clock  clockwork.Clock
	logger *slog.Logger

	mu    sync.RWMutex
	walls []*model.Wall

	onCreate func(w *model.Wall)
}

// Config holds optional dependencies for the registry.
type Config struct {
	Clock  clockwork.Clock
	Logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(config Config) *Registry {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Registry{
		clock:  config.Clock,
		logger: config.Logger,
	}
}

// SetOnCreate sets a callback invoked after each wall is stored.
func (r *Registry) SetOnCreate(callback func(w *model.Wall)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCreate = callback
}

// Create allocates a new active, unnamed wall with a fresh id and appends it.
func (r *Registry) Create() *model.Wall {
	w := model.NewWall(uuid.New().String(), r.clock.Now())

	r.mu.Lock()
	r.walls = append(r.walls, w)
	onCreate := r.onCreate
	r.mu.Unlock()

	r.logger.Debug("storing new wall", "wall_id", w.ID(), "wall_hash", w.Hash())

	if onCreate != nil {
		onCreate(w)
	}
	return w
}

// List returns every wall in insertion order.
// The returned slice is a snapshot; the walls themselves are shared.
func (r *Registry) List() []*model.Wall {
	r.mu.RLock()
	defer r.mu.RUnlock()

	walls := make([]*model.Wall, len(r.walls))
	copy(walls, r.walls)
	return walls
}

// Len returns the number of walls.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.walls)
}

// FindByID returns the wall with the given id or model.ErrWallNotFound.
func (r *Registry) FindByID(id string) (*model.Wall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.walls {
		if w.ID() == id {
			return w, nil
		}
	}
	return nil, model.ErrWallNotFound
}

// FindByHash returns the first wall, in insertion order, whose display hash
// matches, or model.ErrWallNotFound. Hashes are short and may collide.
func (r *Registry) FindByHash(hash string) (*model.Wall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.walls {
		if w.Hash() == hash {
			return w, nil
		}
	}
	return nil, model.ErrWallNotFound
}
