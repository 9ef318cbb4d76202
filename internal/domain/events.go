package domain

// Farm event payloads published on the event bus after a transaction commits

type CropPlantedPayload struct {
	PlayerID  string `json:"player_id"`
	PlotIndex int    `json:"plot_index"`
	CropID    string `json:"crop_id"`
	Price     int64  `json:"price"`
}

type CropHarvestedPayload struct {
	PlayerID      string `json:"player_id"`
	PlotIndex     int    `json:"plot_index"`
	CropID        string `json:"crop_id"`
	HarvestAmount int64  `json:"harvest_amount"`
	StolenAmount  int64  `json:"stolen_amount"`
	Thieves       int    `json:"thieves"`
}

type CropStolenPayload struct {
	ThiefID   string `json:"thief_id"`
	OwnerID   string `json:"owner_id"`
	PlotIndex int    `json:"plot_index"`
	CropID    string `json:"crop_id"`
	Amount    int64  `json:"amount"`
}

type PlayerLeveledUpPayload struct {
	PlayerID string `json:"player_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
}
