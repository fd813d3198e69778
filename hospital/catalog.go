// Package hospital implements the IPD admission engine: the ward
// catalog, the authoritative bed registry, the per-step admission
// validator and the admission wizard state machine.
package hospital

import (
	"fmt"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// Catalog is the read-only registry of wards seeded at startup. Ward
// capacity changes are an administrative action outside this engine, so
// the catalog has no mutation operations after New.
type Catalog struct {
	wards []models.Ward
	index map[wardKey]int
}

type wardKey struct {
	Type   models.WardType
	Number string
}

// NewCatalog seeds a catalog from the configured ward plan. Declaration
// order is preserved for listing. Duplicate (type, number) pairs are
// rejected.
func NewCatalog(wards []models.Ward) (*Catalog, error) {
	c := &Catalog{index: make(map[wardKey]int, len(wards))}
	for _, w := range wards {
		k := wardKey{Type: w.Type, Number: w.Number}
		if _, ok := c.index[k]; ok {
			return nil, fmt.Errorf("duplicate ward %s-%s in seed", w.Type, w.Number)
		}
		if w.TotalBeds <= 0 {
			return nil, fmt.Errorf("ward %s-%s has non-positive bed count", w.Type, w.Number)
		}
		c.index[k] = len(c.wards)
		c.wards = append(c.wards, w)
	}
	return c, nil
}

// ListWards returns every ward in declaration order. The returned slice
// is a copy; callers cannot mutate catalog state through it.
func (c *Catalog) ListWards() []models.Ward {
	out := make([]models.Ward, len(c.wards))
	copy(out, c.wards)
	return out
}

// GetWard looks up a ward by its (type, number) identity
func (c *Catalog) GetWard(wardType models.WardType, wardNumber string) (models.Ward, bool) {
	i, ok := c.index[wardKey{Type: wardType, Number: wardNumber}]
	if !ok {
		return models.Ward{}, false
	}
	return c.wards[i], true
}
