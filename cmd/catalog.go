package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/packopt/packopt/search"
)

// CatalogFile is the on-disk problem description, accepted as JSON or YAML
// (chosen by file extension).
type CatalogFile struct {
	Capacity int           `json:"capacity" yaml:"capacity"`
	Items    []CatalogItem `json:"items" yaml:"items"`
}

// CatalogItem is one item entry in a catalog file.
type CatalogItem struct {
	ID   string `json:"id" yaml:"id"`
	Size int    `json:"size" yaml:"size"`
}

// LoadCatalog reads a catalog file and returns the validated item catalog
// and container capacity.
func LoadCatalog(path string) (search.Catalog, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading catalog: %w", err)
	}

	var file CatalogFile
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("parsing catalog: %w", err)
	}

	catalog := make(search.Catalog, len(file.Items))
	for _, item := range file.Items {
		if item.ID == "" {
			return nil, 0, fmt.Errorf("catalog item with empty id")
		}
		if _, dup := catalog[item.ID]; dup {
			return nil, 0, fmt.Errorf("duplicate item id %q", item.ID)
		}
		catalog[item.ID] = item.Size
	}
	if err := catalog.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid catalog: %w", err)
	}
	if file.Capacity <= 0 {
		return nil, 0, fmt.Errorf("capacity must be positive, got %d", file.Capacity)
	}
	for id, size := range catalog {
		if size > file.Capacity {
			return nil, 0, fmt.Errorf("item %q (size %d) exceeds capacity %d", id, size, file.Capacity)
		}
	}
	return catalog, file.Capacity, nil
}

// GenerateCatalogFile writes a synthetic catalog for experimentation.
func GenerateCatalogFile(path string, n, capacity, minSize, maxSize int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	catalog, err := search.GenerateCatalog(n, minSize, maxSize, rng)
	if err != nil {
		return err
	}
	file := CatalogFile{Capacity: capacity}
	for _, id := range catalog.IDs() {
		file.Items = append(file.Items, CatalogItem{ID: id, Size: catalog[id]})
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// buildInitialState dispatches to the named constructive heuristic.
func buildInitialState(name string, catalog search.Catalog, capacity int, decreasing bool, seed int64) (*search.State, error) {
	switch name {
	case "first-fit":
		return search.FirstFit(catalog, capacity, decreasing)
	case "best-fit":
		return search.BestFit(catalog, capacity, decreasing)
	case "worst-fit":
		return search.WorstFit(catalog, capacity, decreasing)
	case "next-fit":
		return search.NextFit(catalog, capacity, decreasing)
	case "greedy-fit":
		return search.GreedyFit(catalog, capacity)
	case "random-fit":
		return search.RandomFit(catalog, capacity, rand.New(rand.NewSource(seed)))
	default:
		return nil, fmt.Errorf("unknown initial heuristic %q", name)
	}
}
