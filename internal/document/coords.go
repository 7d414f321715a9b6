// Package document fills showroom paperwork (invoices, booking
// letters, gate passes) by overlaying field values onto pre-printed
// PDF templates. Positions are expressed in PDF points measured from
// the top-left corner of the page.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Position is a point on the template page, top-left origin.
type Position struct {
	X float64
	Y float64
}

// CoordinateMap resolves field keys to page positions. Lookup order:
// the loaded JSON map, then per-field defaults, then the map-wide
// fallback, so a missing key never aborts a render.
type CoordinateMap struct {
	positions map[string]Position
	defaults  map[string]Position
	fallback  Position
}

// LoadCoordinateMap reads a JSON file shaped as {"field": [x, y]}.
// A missing file yields an empty map (defaults carry the render); a
// file that exists but does not match the shape is an error so a
// broken deployment fails fast instead of printing at (0,0).
func LoadCoordinateMap(path string, defaults map[string]Position, fallback Position) (*CoordinateMap, error) {
	cm := &CoordinateMap{
		positions: map[string]Position{},
		defaults:  defaults,
		fallback:  fallback,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cm, nil
		}
		return nil, fmt.Errorf("read coordinate map %s: %w", path, err)
	}

	var entries map[string][]float64
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse coordinate map %s: %w", path, err)
	}
	for key, xy := range entries {
		if len(xy) != 2 {
			return nil, fmt.Errorf("coordinate map %s: field %q needs exactly [x, y], got %d values", path, key, len(xy))
		}
		cm.positions[strings.ToLower(key)] = Position{X: xy[0], Y: xy[1]}
	}
	return cm, nil
}

// Resolve never fails; unmapped fields land at the fallback position.
func (cm *CoordinateMap) Resolve(key string) Position {
	if pos, ok := cm.positions[strings.ToLower(key)]; ok {
		return pos
	}
	if pos, ok := cm.defaults[key]; ok {
		return pos
	}
	return cm.fallback
}

// IsCheckboxKey reports whether a field is rendered as a ticked box
// rather than text.
func IsCheckboxKey(key string) bool {
	key = strings.ToLower(key)
	return key == "gate_pass" || key == "documents_delivered" || strings.HasSuffix(key, "_box")
}
