// Package badge defines the badge catalog and decides which badges a member
// has newly qualified for.
package badge

import (
	"fmt"

	"github.com/dukerupert/taskquest/internal/stats"
)

type Type string

const (
	TypeEarnable    Type = "earnable"
	TypePurchasable Type = "purchasable"
)

// Definition is an immutable catalog entry. Earnable badges carry a
// Requirement; purchasable badges carry a Price.
type Definition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Type        Type        `json:"type"`
	Requirement Requirement `json:"-"`
	Price       int         `json:"price,omitempty"`
}

// Catalog is a read-only set of badge definitions in display order.
type Catalog struct {
	defs []Definition
	byID map[string]int
}

// NewCatalog validates defs and builds a Catalog from them.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs: make([]Definition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("badge %q: empty id", d.Name)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("badge %q: duplicate id", d.ID)
		}
		switch d.Type {
		case TypeEarnable:
			if d.Requirement == nil {
				return nil, fmt.Errorf("badge %q: earnable badge needs a requirement", d.ID)
			}
			if d.Requirement.Threshold() <= 0 {
				return nil, fmt.Errorf("badge %q: threshold must be positive", d.ID)
			}
		case TypePurchasable:
			if d.Price <= 0 {
				return nil, fmt.Errorf("badge %q: purchasable badge needs a positive price", d.ID)
			}
			if d.Requirement != nil {
				return nil, fmt.Errorf("badge %q: purchasable badge cannot carry a requirement", d.ID)
			}
		default:
			return nil, fmt.Errorf("badge %q: unknown type %q", d.ID, d.Type)
		}
		c.byID[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// Definitions returns a copy of the catalog entries.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c *Catalog) Get(id string) (Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// Evaluate returns the earnable badges s qualifies for that are not in
// earned, in catalog order. It has no side effects, so calling it again
// before the result is persisted yields the same ids and never one that is
// already earned.
func (c *Catalog) Evaluate(s stats.Snapshot, earned []string) []string {
	have := make(map[string]struct{}, len(earned))
	for _, id := range earned {
		have[id] = struct{}{}
	}

	var newly []string
	for _, d := range c.defs {
		if d.Type != TypeEarnable {
			continue
		}
		if _, ok := have[d.ID]; ok {
			continue
		}
		if Met(d.Requirement, s) {
			newly = append(newly, d.ID)
		}
	}
	return newly
}

// StreakHorizon is the largest streak threshold in the catalog, in days.
func (c *Catalog) StreakHorizon() int {
	max := 0
	for _, d := range c.defs {
		if r, ok := d.Requirement.(Streak); ok && r.Days > max {
			max = r.Days
		}
	}
	return max
}
