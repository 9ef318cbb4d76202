package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/validation"
)

//go:embed crops.yaml
var defaultCatalog []byte

//go:embed crops.schema.json
var catalogSchema []byte

type catalogFile struct {
	Rules rulesFile  `yaml:"rules"`
	Crops []cropFile `yaml:"crops"`
}

type rulesFile struct {
	InitialCoins  int64   `yaml:"initial_coins"`
	InitialPlots  int     `yaml:"initial_plots"`
	MaxPlots      int     `yaml:"max_plots"`
	StealFraction float64 `yaml:"steal_fraction"`
	LevelExpBase  int64   `yaml:"level_exp_base"`
}

type cropFile struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Icon       string `yaml:"icon"`
	Price      int64  `yaml:"price"`
	GrowTimeMs int64  `yaml:"grow_time_ms"`
	Harvest    int64  `yaml:"harvest"`
	Exp        int64  `yaml:"exp"`
}

// Load reads the catalog at path, or the built-in catalog when path is empty
func Load(path string) (*Catalog, error) {
	raw := defaultCatalog
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgReadFailed, path, err)
		}
	}
	return Parse(raw)
}

// Parse decodes and validates catalog YAML
func Parse(raw []byte) (*Catalog, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseFailed, err)
	}

	// Round-trip through JSON so the schema sees float64 numbers and string keys
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseFailed, err)
	}
	v := validation.NewSchemaValidator()
	if err := v.AddSchema(SchemaName, catalogSchema); err != nil {
		return nil, err
	}
	if err := v.ValidateBytes(SchemaName, asJSON); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSchemaFailed, err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseFailed, err)
	}

	if f.Rules.InitialPlots > f.Rules.MaxPlots {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgPlotBounds)
	}

	seen := make(map[string]bool, len(f.Crops))
	defs := make([]domain.CropDefinition, 0, len(f.Crops))
	for _, c := range f.Crops {
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgDuplicateCrop, c.ID)
		}
		seen[c.ID] = true
		defs = append(defs, domain.CropDefinition{
			ID:           c.ID,
			Name:         c.Name,
			Icon:         c.Icon,
			Price:        c.Price,
			GrowTimeMs:   c.GrowTimeMs,
			HarvestValue: c.Harvest,
			Exp:          c.Exp,
		})
	}

	return New(defs, domain.GameRules{
		InitialCoins:  f.Rules.InitialCoins,
		InitialPlots:  f.Rules.InitialPlots,
		MaxPlots:      f.Rules.MaxPlots,
		StealFraction: f.Rules.StealFraction,
		LevelExpBase:  f.Rules.LevelExpBase,
	}), nil
}
