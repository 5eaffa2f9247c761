package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wordwall/backend/internal/model"
)

// WordRepository provides data access for words.
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new WordRepository.
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// Create inserts a new word.
func (r *WordRepository) Create(ctx context.Context, word *model.Word) error {
	query := `
		INSERT INTO words (id, wall_id, player_id, word, created_at, updated_at)
		VALUES (:id, :wall_id, :player_id, :word, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, word); err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	return nil
}

// GetByID retrieves a word by its ID.
func (r *WordRepository) GetByID(ctx context.Context, id string) (*model.Word, error) {
	query := `
		SELECT id, wall_id, player_id, word, created_at, updated_at
		FROM words
		WHERE id = ?
	`

	word := &model.Word{}
	err := r.db.GetContext(ctx, word, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return word, nil
}

// UpdateText changes the text of a word owned by playerID.
func (r *WordRepository) UpdateText(ctx context.Context, id, playerID, text string, updatedAt time.Time) error {
	query := `
		UPDATE words
		SET word = ?, updated_at = ?
		WHERE id = ? AND player_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, text, updatedAt, id, playerID)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.ErrWordNotFound
	}
	return nil
}

// ListByPlayer retrieves a player's words on a wall in submission order.
func (r *WordRepository) ListByPlayer(ctx context.Context, wallID, playerID string) ([]*model.Word, error) {
	query := `
		SELECT id, wall_id, player_id, word, created_at, updated_at
		FROM words
		WHERE wall_id = ? AND player_id = ?
		ORDER BY seq
	`

	words := []*model.Word{}
	if err := r.db.SelectContext(ctx, &words, query, wallID, playerID); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

// ListByWall retrieves every word on a wall in submission order.
func (r *WordRepository) ListByWall(ctx context.Context, wallID string) ([]*model.Word, error) {
	query := `
		SELECT id, wall_id, player_id, word, created_at, updated_at
		FROM words
		WHERE wall_id = ?
		ORDER BY seq
	`

	words := []*model.Word{}
	if err := r.db.SelectContext(ctx, &words, query, wallID); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

// CountByWall returns the number of words on a wall.
func (r *WordRepository) CountByWall(ctx context.Context, wallID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM words WHERE wall_id = ?`, wallID)
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}
