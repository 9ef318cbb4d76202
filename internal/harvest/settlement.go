package harvest

import (
	"fmt"
	"math"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// Settle computes the payout for a ready plot.
// StolenAmount grows linearly with the number of thieves; HarvestAmount never goes below zero.
func Settle(view domain.PlotView, rules domain.GameRules) (domain.Settlement, error) {
	if view.Crop == nil {
		return domain.Settlement{}, fmt.Errorf("%w: plot %d is empty", domain.ErrNothingToHarvest, view.Index)
	}
	if !view.Ready {
		return domain.Settlement{}, fmt.Errorf("%w: plot %d is at %d%%", domain.ErrNotReady, view.Index, view.Progress)
	}

	value := view.Crop.HarvestValue
	stolen := int64(math.Floor(float64(value) * rules.StealFraction * float64(len(view.StolenBy))))

	return domain.Settlement{
		HarvestAmount: max(value-stolen, 0),
		StolenAmount:  stolen,
		ExpAmount:     view.Crop.Exp,
	}, nil
}
