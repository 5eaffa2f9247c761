package model

import "errors"

var (
	// ErrWallNotFound is returned when no wall matches the requested id or hash.
	ErrWallNotFound = errors.New("wall not found")

	// ErrWallInactive is returned when a word is submitted to a wall that no longer accepts words.
	ErrWallInactive = errors.New("wall is not accepting words")

	// ErrWordNotFound is returned when a word is not found for the player.
	ErrWordNotFound = errors.New("word not found")

	// ErrPlayerRequired is returned when a word request is missing the player id.
	ErrPlayerRequired = errors.New("player_id is required")

	// ErrWallHashRequired is returned when a word request is missing the wall hash.
	ErrWallHashRequired = errors.New("wall_hash is required")

	// ErrWordTooLong is returned when a submitted word exceeds MaxWordLength.
	ErrWordTooLong = errors.New("word is too long")
)
