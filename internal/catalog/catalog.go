package catalog

import (
	"sort"
	"time"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// Catalog is the immutable set of crop definitions and game rules.
// It is built once at startup and shared read-only.
type Catalog struct {
	crops map[string]domain.CropDefinition
	order []string
	rules domain.GameRules
}

// New builds a catalog from definitions. Order of defs is preserved by List.
func New(defs []domain.CropDefinition, rules domain.GameRules) *Catalog {
	c := &Catalog{
		crops: make(map[string]domain.CropDefinition, len(defs)),
		order: make([]string, 0, len(defs)),
		rules: rules,
	}
	for _, d := range defs {
		if d.GrowTime == 0 {
			d.GrowTime = time.Duration(d.GrowTimeMs) * time.Millisecond
		}
		if d.GrowTimeMs == 0 {
			d.GrowTimeMs = d.GrowTime.Milliseconds()
		}
		if _, dup := c.crops[d.ID]; !dup {
			c.order = append(c.order, d.ID)
		}
		c.crops[d.ID] = d
	}
	return c
}

// Get looks up a crop by id
func (c *Catalog) Get(id string) (*domain.CropDefinition, bool) {
	d, ok := c.crops[id]
	if !ok {
		return nil, false
	}
	return &d, true
}

// List returns all crops in catalog order
func (c *Catalog) List() []domain.CropDefinition {
	out := make([]domain.CropDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.crops[id])
	}
	return out
}

// IDs returns crop ids sorted alphabetically
func (c *Catalog) IDs() []string {
	ids := append([]string(nil), c.order...)
	sort.Strings(ids)
	return ids
}

// Rules returns the game rules
func (c *Catalog) Rules() domain.GameRules {
	return c.rules
}
