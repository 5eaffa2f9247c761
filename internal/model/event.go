package model

// EventType identifies the kind of live update pushed to connected clients.
type EventType string

const (
	EventWord EventType = "word"
	EventWall EventType = "wall"
)

// StatusMessage is the first frame sent on every live-update channel.
type StatusMessage struct {
	Message string `json:"message"`
}

// StatusChannelOpen is the greeting delivered when a live-update channel opens.
var StatusChannelOpen = StatusMessage{Message: "Status Channel Open."}

// WordEvent is broadcast when a player adds or edits a word.
type WordEvent struct {
	Event    EventType `json:"event"`
	WallID   string    `json:"wall_id"`
	WallHash string    `json:"wall_hash"`
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id"`
	Word     string    `json:"word"`
}

// NewWordEvent builds the broadcast payload for a stored word.
func NewWordEvent(wall *Wall, w *Word) WordEvent {
	return WordEvent{
		Event:    EventWord,
		WallID:   wall.ID(),
		WallHash: wall.Hash(),
		ID:       w.ID,
		PlayerID: w.PlayerID,
		Word:     w.Word,
	}
}

// WallEvent is broadcast when a wall's name or active state changes.
type WallEvent struct {
	Event    EventType `json:"event"`
	WallID   string    `json:"wall_id"`
	WallHash string    `json:"wall_hash"`
	Name     string    `json:"name"`
	Active   bool      `json:"active"`
}

// NewWallEvent builds the broadcast payload for a wall's current state.
func NewWallEvent(wall *Wall) WallEvent {
	d := wall.Detail()
	return WallEvent{
		Event:    EventWall,
		WallID:   d.ID,
		WallHash: d.Hash,
		Name:     d.Name,
		Active:   d.Active,
	}
}
