package domain

import "time"

// Growth stages. Stages 1-3 are growing, StageReady means harvestable.
const (
	StageEmpty    = 0
	StageSeedling = 1
	StageSprout   = 2
	StageGrowing  = 3
	StageReady    = 4

	// GrowingStages is the number of stages before a crop is ready
	GrowingStages = 3
)

// Plot is the stored state of one farm cell.
// CropID and PlantedAt are either both set or both nil.
type Plot struct {
	OwnerID   string     `json:"ownerId"`
	Index     int        `json:"plotIndex"`
	CropID    *string    `json:"cropType"`
	PlantedAt *time.Time `json:"plantedAt"`
	StolenBy  []string   `json:"stolenBy"`
}

// IsEmpty reports whether the plot has no crop
func (p *Plot) IsEmpty() bool {
	return p.CropID == nil
}

// StolenByPlayer reports whether playerID already took a share of the current crop
func (p *Plot) StolenByPlayer(playerID string) bool {
	for _, id := range p.StolenBy {
		if id == playerID {
			return true
		}
	}
	return false
}

// PlotView is a plot plus the state derived from the clock
type PlotView struct {
	Plot
	Stage    int             `json:"stage"`
	Progress int             `json:"progress"`
	Ready    bool            `json:"isReady"`
	Crop     *CropDefinition `json:"cropInfo"`
}

// Settlement is the outcome of settling a ready plot
type Settlement struct {
	HarvestAmount int64 `json:"harvestAmount"`
	StolenAmount  int64 `json:"stolenAmount"`
	ExpAmount     int64 `json:"expAmount"`
}
