package plot

import (
	"math"
	"time"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// CropLookup resolves crop ids to definitions
type CropLookup interface {
	Get(id string) (*domain.CropDefinition, bool)
}

// Engine derives growth state from stored plots (no DB dependencies)
type Engine struct {
	crops CropLookup
}

// NewEngine creates a new plot engine
func NewEngine(crops CropLookup) *Engine {
	return &Engine{crops: crops}
}

// DeriveState computes stage, progress and readiness of p at now.
// A plot whose crop id is not in the catalog is reported as empty.
func (e *Engine) DeriveState(p domain.Plot, now time.Time) domain.PlotView {
	view := domain.PlotView{Plot: p}
	view.StolenBy = append(make([]string, 0, len(p.StolenBy)), p.StolenBy...)

	if p.CropID == nil || p.PlantedAt == nil {
		return view
	}
	crop, ok := e.crops.Get(*p.CropID)
	if !ok {
		return view
	}

	raw := growthFraction(now.Sub(*p.PlantedAt), crop.GrowTime)

	view.Crop = crop
	view.Stage = stageFor(raw)
	view.Progress = int(math.Round(raw * 100))
	view.Ready = raw >= 1
	return view
}

// DeriveAll derives every plot in order
func (e *Engine) DeriveAll(plots []domain.Plot, now time.Time) []domain.PlotView {
	views := make([]domain.PlotView, 0, len(plots))
	for _, p := range plots {
		views = append(views, e.DeriveState(p, now))
	}
	return views
}

// growthFraction is elapsed/growTime clamped to [0, 1]
func growthFraction(elapsed, growTime time.Duration) float64 {
	if growTime <= 0 {
		return 1
	}
	raw := float64(elapsed) / float64(growTime)
	return math.Max(0, math.Min(raw, 1))
}

func stageFor(raw float64) int {
	stage := int(math.Floor(raw*domain.GrowingStages)) + 1
	if stage > domain.StageReady {
		return domain.StageReady
	}
	return stage
}
