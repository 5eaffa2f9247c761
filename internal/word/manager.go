// Package word implements word submission to walls.
package word

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/wordwall/backend/internal/metrics"
	"github.com/wordwall/backend/internal/model"
)

// Walls resolves walls by id or display hash.
type Walls interface {
	FindByID(id string) (*model.Wall, error)
	FindByHash(hash string) (*model.Wall, error)
}

// Store persists words.
type Store interface {
	Create(ctx context.Context, word *model.Word) error
	GetByID(ctx context.Context, id string) (*model.Word, error)
	UpdateText(ctx context.Context, id, playerID, text string, updatedAt time.Time) error
	ListByPlayer(ctx context.Context, wallID, playerID string) ([]*model.Word, error)
	ListByWall(ctx context.Context, wallID string) ([]*model.Word, error)
	CountByWall(ctx context.Context, wallID string) (int, error)
}

// Broadcaster pushes a payload to every live-update connection.
type Broadcaster interface {
	Broadcast(payload any) (int, error)
}

// Manager coordinates walls, word storage and live updates.
type Manager struct {
	walls       Walls
	store       Store
	broadcaster Broadcaster
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *metrics.WallMetrics
}

// Config holds optional dependencies for the manager.
type Config struct {
	Clock   clockwork.Clock
	Logger  *slog.Logger
	Metrics *metrics.WallMetrics
}

// NewManager creates a new word manager.
func NewManager(walls Walls, store Store, broadcaster Broadcaster, config Config) *Manager {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Manager{
		walls:       walls,
		store:       store,
		broadcaster: broadcaster,
		clock:       config.Clock,
		logger:      config.Logger,
		metrics:     config.Metrics,
	}
}

// Add stores a new word from a player on the wall named by req.WallHash and
// returns all of that player's words on the wall.
func (m *Manager) Add(ctx context.Context, req *model.AddWordRequest) ([]*model.Word, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	wall, err := m.openWall(req.WallHash)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	w := &model.Word{
		ID:        uuid.New().String(),
		WallID:    wall.ID(),
		PlayerID:  req.PlayerID,
		Word:      req.Word,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to store word: %w", err)
	}

	m.publish(wall, w, "add")
	return m.store.ListByPlayer(ctx, wall.ID(), req.PlayerID)
}

// Update changes the text of one of the player's words and returns all of
// that player's words on the wall.
func (m *Manager) Update(ctx context.Context, req *model.UpdateWordRequest) ([]*model.Word, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	wall, err := m.openWall(req.WallHash)
	if err != nil {
		return nil, err
	}

	existing, err := m.store.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing.WallID != wall.ID() || existing.PlayerID != req.PlayerID {
		return nil, model.ErrWordNotFound
	}

	now := m.clock.Now()
	if err := m.store.UpdateText(ctx, req.ID, req.PlayerID, req.Word, now); err != nil {
		return nil, err
	}
	existing.Word = req.Word
	existing.UpdatedAt = now

	m.publish(wall, existing, "update")
	return m.store.ListByPlayer(ctx, wall.ID(), req.PlayerID)
}

// ListForPlayer returns a player's words on the wall with the given id.
func (m *Manager) ListForPlayer(ctx context.Context, wallID, playerID string) ([]*model.Word, error) {
	if playerID == "" {
		return nil, model.ErrPlayerRequired
	}
	if _, err := m.walls.FindByID(wallID); err != nil {
		return nil, err
	}
	return m.store.ListByPlayer(ctx, wallID, playerID)
}

// ListForWall returns every word on the wall with the given id.
func (m *Manager) ListForWall(ctx context.Context, wallID string) ([]*model.Word, error) {
	if _, err := m.walls.FindByID(wallID); err != nil {
		return nil, err
	}
	return m.store.ListByWall(ctx, wallID)
}

// CountForWall returns the number of words on the wall with the given id.
func (m *Manager) CountForWall(ctx context.Context, wallID string) (int, error) {
	if _, err := m.walls.FindByID(wallID); err != nil {
		return 0, err
	}
	return m.store.CountByWall(ctx, wallID)
}

// PublishWall broadcasts the current name and active state of a wall.
func (m *Manager) PublishWall(wall *model.Wall) {
	if _, err := m.broadcaster.Broadcast(model.NewWallEvent(wall)); err != nil {
		m.logger.Error("failed to broadcast wall update", "wall_id", wall.ID(), "error", err)
	}
}

func (m *Manager) openWall(hash string) (*model.Wall, error) {
	wall, err := m.walls.FindByHash(hash)
	if err != nil {
		return nil, err
	}
	if !wall.Active() {
		return nil, model.ErrWallInactive
	}
	return wall, nil
}

func (m *Manager) publish(wall *model.Wall, w *model.Word, operation string) {
	if m.metrics != nil {
		m.metrics.WordsSubmitted.WithLabelValues(operation).Inc()
	}

	delivered, err := m.broadcaster.Broadcast(model.NewWordEvent(wall, w))
	if err != nil {
		m.logger.Error("failed to broadcast word", "wall_id", wall.ID(), "word_id", w.ID, "error", err)
		return
	}
	m.logger.Debug("word broadcast", "wall_id", wall.ID(), "word_id", w.ID, "operation", operation, "delivered", delivered)
}
