// Package catalog loads the business catalog from a YAML file.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

type file struct {
	Businesses []domain.BusinessDefinition `yaml:"businesses"`
}

// Load returns the reference catalog when path is empty, otherwise the
// catalog described by the YAML file at path.
func Load(path string) (domain.Catalog, error) {
	if path == "" {
		return domain.NewCatalog(domain.DefaultBusinesses()), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes and validates a catalog document.
//
//	businesses:
//	  - id: 1
//	    name: Lemonade Stand
//	    cost: 500
//	    income_per_hour: 25
func Parse(r io.Reader) (domain.Catalog, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Catalog{}, errors.New("catalog: no businesses defined")
		}
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := Validate(doc.Businesses); err != nil {
		return domain.Catalog{}, err
	}
	return domain.NewCatalog(doc.Businesses), nil
}

// Validate checks a list of definitions before it becomes a catalog.
func Validate(defs []domain.BusinessDefinition) error {
	if len(defs) == 0 {
		return errors.New("catalog: no businesses defined")
	}

	var errs []error
	seen := make(map[int64]bool, len(defs))
	for i, d := range defs {
		switch {
		case d.ID <= 0:
			errs = append(errs, fmt.Errorf("entry %d: id must be positive", i))
		case seen[d.ID]:
			errs = append(errs, fmt.Errorf("entry %d: duplicate id %d", i, d.ID))
		}
		seen[d.ID] = true

		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Errorf("entry %d: name is required", i))
		}
		switch {
		case d.Cost < 0:
			errs = append(errs, fmt.Errorf("entry %d: cost must not be negative", i))
		case d.Cost > domain.MaxBusinessCost:
			errs = append(errs, fmt.Errorf("entry %d: cost exceeds %d", i, domain.MaxBusinessCost))
		}
		switch {
		case d.IncomePerHour < 0:
			errs = append(errs, fmt.Errorf("entry %d: income_per_hour must not be negative", i))
		case d.IncomePerHour > domain.MaxIncomePerHour:
			errs = append(errs, fmt.Errorf("entry %d: income_per_hour exceeds %d", i, domain.MaxIncomePerHour))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: %w", errors.Join(errs...))
	}
	return nil
}
