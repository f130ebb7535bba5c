// internal/domain/catalog/service.go
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// ErrNotFound is returned when a category or item id does not resolve
var ErrNotFound = errors.New("catalog: not found")

// Service provides read-only access to the product catalog.
// The catalog is loaded once at startup and never mutated afterwards.
type Service struct {
	categories []Category
	itemsByID  map[int]Item
	catsByID   map[string]int // category id -> index into categories
}

type catalogFile struct {
	Categories []Category `json:"categories"`
}

// NewService loads the catalog from the given file, or from the embedded
// data when path is empty.
func NewService(path string) (*Service, error) {
	data := embeddedCatalog
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = fileData
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog data: %w", err)
	}

	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("catalog data contains no categories")
	}

	s := &Service{
		categories: file.Categories,
		itemsByID:  make(map[int]Item),
		catsByID:   make(map[string]int),
	}

	for i, cat := range file.Categories {
		if _, exists := s.catsByID[cat.ID]; exists {
			return nil, fmt.Errorf("duplicate category id %q in catalog data", cat.ID)
		}
		s.catsByID[cat.ID] = i

		for _, item := range cat.Items {
			if _, exists := s.itemsByID[item.ID]; exists {
				return nil, fmt.Errorf("duplicate item id %d in catalog data", item.ID)
			}
			s.itemsByID[item.ID] = item
		}
	}

	return s, nil
}

// Categories returns all categories in catalog order
func (s *Service) Categories() []Category {
	return s.categories
}

// FindCategory returns the category with the given id
func (s *Service) FindCategory(id string) (Category, error) {
	idx, ok := s.catsByID[id]
	if !ok {
		return Category{}, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	return s.categories[idx], nil
}

// FindItem returns the item with the given id
func (s *Service) FindItem(id int) (Item, error) {
	item, ok := s.itemsByID[id]
	if !ok {
		return Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return item, nil
}

// ItemCount returns the number of items across all categories
func (s *Service) ItemCount() int {
	return len(s.itemsByID)
}
