package storage

import (
	"log"
	"path/filepath"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// MenuFilename is the JSON document holding the menu configuration.
const MenuFilename = "menu.json"

// MenuStore persists the menu configuration document.
type MenuStore struct {
	path string
}

// NewMenuStore creates a store backed by <dataDir>/menu.json.
func NewMenuStore(dataDir string) *MenuStore {
	return &MenuStore{path: filepath.Join(dataDir, MenuFilename)}
}

// Load returns the menu document, or an empty one when no menu has been
// saved yet.
func (s *MenuStore) Load() models.MenuDocument {
	var doc models.MenuDocument
	ok, err := readJSONFile(s.path, &doc)
	if err != nil {
		log.Printf("menu store: degraded read, returning empty menu: %v", err)
	}
	if !ok || err != nil {
		return models.MenuDocument{MenuItems: []string{}, ExtraItems: []string{}}
	}
	if doc.MenuItems == nil {
		doc.MenuItems = []string{}
	}
	if doc.ExtraItems == nil {
		doc.ExtraItems = []string{}
	}
	return doc
}

// Save atomically replaces the menu document.
func (s *MenuStore) Save(doc models.MenuDocument) error {
	return writeJSONFileAtomic(s.path, doc)
}
