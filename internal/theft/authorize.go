package theft

import (
	"fmt"
	"math"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// Authorize checks a ready plot against one thief, in order: crop present,
// ready, not already robbed by this thief. It returns the flat steal amount.
func Authorize(view domain.PlotView, thiefID string, rules domain.GameRules) (int64, error) {
	if view.Crop == nil {
		return 0, fmt.Errorf("%w: plot %d", domain.ErrNoCrop, view.Index)
	}
	if !view.Ready {
		return 0, fmt.Errorf("%w: plot %d is at %d%%", domain.ErrNotReady, view.Index, view.Progress)
	}
	if view.StolenByPlayer(thiefID) {
		return 0, fmt.Errorf("%w: plot %d", domain.ErrAlreadyStolen, view.Index)
	}
	return StealAmount(view.Crop, rules), nil
}

// StealAmount is floor(harvest value * steal fraction), independent of prior thefts
func StealAmount(crop *domain.CropDefinition, rules domain.GameRules) int64 {
	return int64(math.Floor(float64(crop.HarvestValue) * rules.StealFraction))
}
