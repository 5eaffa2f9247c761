package model

import (
	"time"
	"unicode/utf8"
)

// MaxWordLength is the maximum number of runes accepted for a single word.
const MaxWordLength = 64

// Word is one entry submitted by a player to a wall.
type Word struct {
	ID        string    `json:"id" db:"id"`
	WallID    string    `json:"wall_id" db:"wall_id"`
	PlayerID  string    `json:"player_id" db:"player_id"`
	Word      string    `json:"word" db:"word"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AddWordRequest represents a request to add a word to a wall.
type AddWordRequest struct {
	WallHash string `json:"wall_hash"`
	PlayerID string `json:"player_id"`
	Word     string `json:"word"`
}

// Validate validates the add word request.
func (r *AddWordRequest) Validate() error {
	return validateWord(r.WallHash, r.PlayerID, r.Word)
}

// UpdateWordRequest represents a request to change an existing word.
type UpdateWordRequest struct {
	ID       string `json:"id" binding:"required"`
	WallHash string `json:"wall_hash"`
	PlayerID string `json:"player_id"`
	Word     string `json:"word"`
}

// Validate validates the update word request.
func (r *UpdateWordRequest) Validate() error {
	return validateWord(r.WallHash, r.PlayerID, r.Word)
}

func validateWord(wallHash, playerID, word string) error {
	if wallHash == "" {
		return ErrWallHashRequired
	}
	if playerID == "" {
		return ErrPlayerRequired
	}
	if utf8.RuneCountInString(word) > MaxWordLength {
		return ErrWordTooLong
	}
	return nil
}
