package cart

import (
	"encoding/json"
	"fmt"

	"moms-kitchen/storefront/types"
)

// DefaultStorageKey names the slot holding the serialized cart. Bump the
// suffix when the wire format changes; old payloads are then ignored.
const DefaultStorageKey = "moms-kitchen-cart-v1"

// IDs and prices travel as decimal strings so that readers which parse JSON
// numbers as doubles cannot lose precision.
type wireMenuItem struct {
	ID          uint64 `json:"id,string"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	ImageURL    string `json:"imageUrl"`
	Price       uint64 `json:"price,string"`
}

type wireLine struct {
	MenuItem *wireMenuItem `json:"menuItem"`
	Quantity int           `json:"quantity"`
}

// Encode serializes state for the storage slot.
func Encode(state State) (string, error) {
	wire := make([]wireLine, 0, len(state.lines))
	for _, l := range state.lines {
		item := wireMenuItem(l.Item)
		wire = append(wire, wireLine{MenuItem: &item, Quantity: l.Quantity})
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(data), nil
}

// Decode parses a payload written by Encode. Payloads that do not describe a
// valid state (bad JSON, numeric IDs, missing items, non-positive quantities,
// duplicate IDs) are rejected rather than repaired.
func Decode(payload string) (State, error) {
	var wire []wireLine
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return State{}, fmt.Errorf("decode cart: %w", err)
	}

	lines := make([]Line, 0, len(wire))
	seen := make(map[uint64]bool, len(wire))
	for i, w := range wire {
		if w.MenuItem == nil {
			return State{}, fmt.Errorf("decode cart: line %d has no menu item", i)
		}
		if w.Quantity <= 0 {
			return State{}, fmt.Errorf("decode cart: line %d has quantity %d", i, w.Quantity)
		}
		if seen[w.MenuItem.ID] {
			return State{}, fmt.Errorf("decode cart: duplicate menu item %d", w.MenuItem.ID)
		}
		seen[w.MenuItem.ID] = true
		lines = append(lines, Line{Item: types.MenuItem(*w.MenuItem), Quantity: w.Quantity})
	}
	return State{lines: lines}, nil
}
