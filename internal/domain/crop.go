package domain

import "time"

// CropDefinition describes one plantable crop. Definitions are immutable once loaded.
type CropDefinition struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Icon         string        `json:"icon"`
	Price        int64         `json:"price"`
	GrowTime     time.Duration `json:"-"`
	GrowTimeMs   int64         `json:"growTime"`
	HarvestValue int64         `json:"harvest"`
	Exp          int64         `json:"exp"`
}

// GameRules holds the economy constants shared by all players
type GameRules struct {
	InitialCoins  int64   `json:"initialCoins"`
	InitialPlots  int     `json:"initialPlots"`
	MaxPlots      int     `json:"maxPlots"`
	StealFraction float64 `json:"stealFraction"`
	LevelExpBase  int64   `json:"levelExpBase"`
}
