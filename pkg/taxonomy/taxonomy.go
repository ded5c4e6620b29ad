// Package taxonomy loads, validates and matches policy tag taxonomies.
package taxonomy

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/policy-engagement/models"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTaxonomy is returned by Validate and Load for malformed taxonomies.
var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// Default returns the policy taxonomy used when no taxonomy file is configured.
func Default() models.Taxonomy {
	t := models.Taxonomy{
		Categories: []models.Category{
			{ID: "A", Name: "Subjugating the Bureaucracy", Short: "Taming Bureaucracy"},
			{ID: "B", Name: "Waging Culture Wars", Short: "Culture Wars"},
			{ID: "C", Name: "Remaking Power Structures", Short: "Reshaping Power"},
		},
	}
	counts := map[string]int{"A": 6, "B": 8, "C": 8}
	for _, c := range t.Categories {
		for i := 1; i <= counts[c.ID]; i++ {
			t.Tags = append(t.Tags, models.Tag{Code: fmt.Sprintf("%s%d", c.ID, i), Category: c.ID})
		}
	}
	return t
}

// Load reads a taxonomy from a YAML file and validates it.
// Tags without an explicit category take the first character of their code.
func Load(path string) (models.Taxonomy, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return models.Taxonomy{}, fmt.Errorf("failed to read taxonomy: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML taxonomy document.
func Parse(data []byte) (models.Taxonomy, error) {
	var t models.Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return models.Taxonomy{}, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	for i := range t.Tags {
		t.Tags[i].Code = strings.TrimSpace(t.Tags[i].Code)
		if t.Tags[i].Category == "" && t.Tags[i].Code != "" {
			t.Tags[i].Category = t.Tags[i].Code[:1]
		}
	}
	if err := Validate(t); err != nil {
		return models.Taxonomy{}, err
	}
	return t, nil
}

// Validate checks that categories and tag codes are unique and that every
// tag belongs to a declared category.
func Validate(t models.Taxonomy) error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("%w: no categories declared", ErrInvalidTaxonomy)
	}
	if len(t.Tags) == 0 {
		return fmt.Errorf("%w: no tags declared", ErrInvalidTaxonomy)
	}

	categories := make(map[string]struct{}, len(t.Categories))
	for _, c := range t.Categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category with empty id", ErrInvalidTaxonomy)
		}
		if c.ID == models.TotalCategoryID {
			return fmt.Errorf("%w: category id %q is reserved", ErrInvalidTaxonomy, c.ID)
		}
		if _, dup := categories[c.ID]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidTaxonomy, c.ID)
		}
		categories[c.ID] = struct{}{}
	}

	codes := make(map[string]struct{}, len(t.Tags))
	for _, tag := range t.Tags {
		if tag.Code == "" {
			return fmt.Errorf("%w: tag with empty code", ErrInvalidTaxonomy)
		}
		if strings.ContainsAny(tag.Code, tokenDelimiters) {
			return fmt.Errorf("%w: tag code %q contains a delimiter", ErrInvalidTaxonomy, tag.Code)
		}
		if _, dup := codes[tag.Code]; dup {
			return fmt.Errorf("%w: duplicate tag %q", ErrInvalidTaxonomy, tag.Code)
		}
		codes[tag.Code] = struct{}{}
		if _, ok := categories[tag.Category]; !ok {
			return fmt.Errorf("%w: tag %q references undeclared category %q", ErrInvalidTaxonomy, tag.Code, tag.Category)
		}
	}
	return nil
}

// Fingerprint returns a SHA-256 hex digest of the taxonomy's canonical YAML
// form. Equal taxonomies share a fingerprint.
func Fingerprint(t models.Taxonomy) (string, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal taxonomy: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
