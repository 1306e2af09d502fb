// catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Positions is the fixed wheel order. The wheel result event carries an
// index into this slice, so the order is part of the wire contract.
var Positions = []string{"GK", "CB", "RB", "LB", "RW", "CF", "AM", "LW", "CM", "DM"}

// Player is one draftable catalog entry.
type Player struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	BasePrice int    `json:"basePrice"`
}

// Catalog is the immutable master list loaded once at startup. Rooms never
// share pool slices with it or with each other.
type Catalog struct {
	players []Player
}

// Load reads and validates the catalog file. A failure here must abort
// process startup.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var players []Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	known := make(map[string]bool, len(Positions))
	for _, pos := range Positions {
		known[pos] = true
	}
	for i, p := range players {
		if p.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if !known[p.Position] {
			return nil, fmt.Errorf("catalog entry %q has unknown position %q", p.Name, p.Position)
		}
		if p.BasePrice <= 0 {
			return nil, fmt.Errorf("catalog entry %q has non-positive base price %d", p.Name, p.BasePrice)
		}
	}

	return &Catalog{players: players}, nil
}

// Size returns the number of catalog entries.
func (c *Catalog) Size() int {
	return len(c.players)
}

// ClonePool returns a fresh position-grouped copy of the full pool. Every
// room gets its own clone so drafting in one room never affects another.
func (c *Catalog) ClonePool() map[string][]Player {
	pool := make(map[string][]Player, len(Positions))
	for _, pos := range Positions {
		pool[pos] = []Player{}
	}
	for _, p := range c.players {
		pool[p.Position] = append(pool[p.Position], p)
	}
	return pool
}
