// Package catalog loads the pre-authored content catalog: news items,
// incoming messages, and dialog variants that may surface on a given day.
// The catalog is read-only input to the simulation; the only state the
// engine keeps about it is the shown-id set.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Category routes an item to a feed section.
type Category string

const (
	CategoryNews    Category = "news"
	CategoryMessage Category = "message"
	CategoryDialog  Category = "dialog"
)

// Valid reports whether c is a known feed category.
func (c Category) Valid() bool {
	switch c {
	case CategoryNews, CategoryMessage, CategoryDialog:
		return true
	}
	return false
}

// Item is one pre-authored content entry. Role is set on family-originated
// items and empty otherwise.
type Item struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Role        string   `json:"role,omitempty"`
	MinDay      int      `json:"min_day"`
	MaxDay      int      `json:"max_day"`
	Probability float64  `json:"probability"`
	Headline    string   `json:"headline,omitempty"`
}

// ErrEmptyCatalog indicates a catalog with no items.
var ErrEmptyCatalog = errors.New("catalog has no items")

// InRange reports whether day falls inside the item's inclusive day band.
func (it Item) InRange(day int) bool {
	return day >= it.MinDay && day <= it.MaxDay
}

// Parse decodes and validates a JSON catalog. Item order is preserved:
// the engine surfaces content in catalog order.
func Parse(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d: missing id", i)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("item %q: duplicate id", it.ID)
		}
		seen[it.ID] = true
		if !it.Category.Valid() {
			return nil, fmt.Errorf("item %q: invalid category %q", it.ID, it.Category)
		}
		if it.MinDay < 1 || it.MaxDay < it.MinDay {
			return nil, fmt.Errorf("item %q: invalid day range [%d,%d]", it.ID, it.MinDay, it.MaxDay)
		}
		if it.Probability < 0 || it.Probability > 1 {
			return nil, fmt.Errorf("item %q: probability %v outside [0,1]", it.ID, it.Probability)
		}
	}
	return items, nil
}

// defaultCatalog holds the embedded fallback catalog. Set via SetDefault
// from the main package before anything loads content.
var defaultCatalog []byte

// SetDefault registers the embedded default catalog bytes.
func SetDefault(data []byte) {
	defaultCatalog = data
}

// Default parses the embedded default catalog.
func Default() ([]Item, error) {
	if len(defaultCatalog) == 0 {
		return nil, errors.New("no default catalog embedded")
	}
	return Parse(bytes.NewReader(defaultCatalog))
}

// Load reads a catalog file from disk.
func Load(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	items, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}
