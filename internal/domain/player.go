package domain

import "time"

// Player is a registered farmer
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Coins        int64     `json:"coins"`
	Level        int       `json:"level"`
	Exp          int64     `json:"exp"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LevelResult reports a player's progression after experience was applied
type LevelResult struct {
	PlayerID  string `json:"playerId"`
	OldLevel  int    `json:"oldLevel"`
	NewLevel  int    `json:"newLevel"`
	Exp       int64  `json:"exp"`
	LeveledUp bool   `json:"leveledUp"`
}

// Friend is an entry in a player's friend list
type Friend struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Level       int       `json:"level"`
	FriendSince time.Time `json:"friendSince"`
}

// SearchResult is a player found by username search
type SearchResult struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	IsFriend bool   `json:"isFriend"`
}

// Session is an authenticated login
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Player    *Player   `json:"user"`
}
