package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPageSize is used when a source does not declare its own page size.
const DefaultPageSize = 9

// CatalogSource describes one listing page of the storefront: where its
// products come from upstream and how many cards fit on a page.
type CatalogSource struct {
	Name     string `yaml:"name" json:"name"`
	Title    string `yaml:"title" json:"title"`
	Path     string `yaml:"path" json:"path"`
	Brand    string `yaml:"brand,omitempty" json:"brand,omitempty"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	PageSize int    `yaml:"page_size" json:"pageSize"`
}

type sourcesFile struct {
	Sources []CatalogSource `yaml:"sources"`
}

// DefaultSources returns the listing pages shipped with the storefront.
func DefaultSources() []CatalogSource {
	return []CatalogSource{
		{Name: "home", Title: "Home", Path: "/products", PageSize: 8},
		{Name: "sweets", Title: "Sweets", Path: "/products", Category: "sweets", PageSize: 9},
		{Name: "snacks", Title: "Snacks", Path: "/products", Category: "snacks", PageSize: 9},
		{Name: "groceries", Title: "Groceries", Path: "/products", Category: "groceries", PageSize: 9},
	}
}

// LoadSources reads catalog source descriptors from a YAML file.
func LoadSources(path string) ([]CatalogSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseSources(raw)
}

// ParseSources decodes and validates a YAML document of the form
//
//	sources:
//	  - name: sweets
//	    path: /products
//	    category: sweets
//	    page_size: 9
func ParseSources(raw []byte) ([]CatalogSource, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, errors.New("no catalog sources declared")
	}

	seen := make(map[string]bool, len(f.Sources))
	for i := range f.Sources {
		s := &f.Sources[i]
		s.Name = strings.ToLower(strings.TrimSpace(s.Name))
		if s.Name == "" {
			return nil, fmt.Errorf("source #%d: name is required", i+1)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("source %q declared twice", s.Name)
		}
		seen[s.Name] = true
		if s.Path == "" {
			return nil, fmt.Errorf("source %q: path is required", s.Name)
		}
		if !strings.HasPrefix(s.Path, "/") {
			s.Path = "/" + s.Path
		}
		if s.PageSize <= 0 {
			s.PageSize = DefaultPageSize
		}
		if s.Title == "" {
			s.Title = s.Name
		}
	}
	return f.Sources, nil
}

// FindSource looks a source up by name.
func FindSource(sources []CatalogSource, name string) (CatalogSource, bool) {
	name = strings.ToLower(name)
	for _, s := range sources {
		if s.Name == name {
			return s, true
		}
	}
	return CatalogSource{}, false
}
