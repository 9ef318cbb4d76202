package domain

// Farm is the full view of a player's farm
type Farm struct {
	Player  *Player          `json:"user"`
	Plots   []PlotView       `json:"plots"`
	Crops   []CropDefinition `json:"crops,omitempty"`
	IsOwner bool             `json:"isOwner"`
}

// PlantResult is returned after a successful plant
type PlantResult struct {
	PlotIndex int    `json:"plotIndex"`
	CropID    string `json:"cropType"`
	Coins     int64  `json:"coins"`
}

// HarvestResult is returned after a successful harvest
type HarvestResult struct {
	PlotIndex int    `json:"plotIndex"`
	CropID    string `json:"cropType"`
	Settlement
	Coins int64       `json:"coins"`
	Level LevelResult `json:"level"`
}

// StealResult is returned after a successful theft
type StealResult struct {
	OwnerID   string `json:"friendId"`
	PlotIndex int    `json:"plotIndex"`
	CropID    string `json:"cropType"`
	Amount    int64  `json:"stolenAmount"`
	Coins     int64  `json:"coins"`
}
