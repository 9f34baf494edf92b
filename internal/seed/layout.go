// Package seed reads warehouse bin layouts from YAML.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fleetdepot/depot/internal/domain"
)

// Layout describes one warehouse:
//
//	warehouse: MAIN
//	sections:
//	  - name: A
//	    sub_sections:
//	      - name: "01"
//	        bins: 4
//	        capacity: 200
type Layout struct {
	Warehouse string    `yaml:"warehouse"`
	Sections  []Section `yaml:"sections"`
}

type Section struct {
	Name        string       `yaml:"name"`
	SubSections []SubSection `yaml:"sub_sections"`
}

type SubSection struct {
	Name     string `yaml:"name"`
	Bins     int    `yaml:"bins"`
	Capacity int    `yaml:"capacity"`
}

func LoadFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("os.Open -> %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("dec.Decode -> %w", err)
	}

	if err := l.validate(); err != nil {
		return Layout{}, err
	}

	return l, nil
}

func (l Layout) validate() error {
	if l.Warehouse == "" {
		return errors.New("layout: warehouse is required")
	}
	if len(l.Sections) == 0 {
		return errors.New("layout: at least one section is required")
	}
	for _, s := range l.Sections {
		if s.Name == "" {
			return errors.New("layout: section name is required")
		}
		for _, sub := range s.SubSections {
			if sub.Name == "" {
				return fmt.Errorf("layout: section %s has a sub-section without a name", s.Name)
			}
			if sub.Bins <= 0 || sub.Bins > 999 {
				return fmt.Errorf("layout: %s-%s bins must be between 1 and 999", s.Name, sub.Name)
			}
			if sub.Capacity < 0 {
				return fmt.Errorf("layout: %s-%s capacity must not be negative", s.Name, sub.Name)
			}
		}
	}

	return nil
}

// Bins expands the layout into bins labelled 01, 02, ... within each sub-section.
func (l Layout) Bins() []domain.Bin {
	var bins []domain.Bin
	for _, s := range l.Sections {
		for _, sub := range s.SubSections {
			width := 2
			if sub.Bins > 99 {
				width = 3
			}
			for i := 1; i <= sub.Bins; i++ {
				label := fmt.Sprintf("%0*d", width, i)
				bins = append(bins, domain.Bin{
					Warehouse:  l.Warehouse,
					Section:    s.Name,
					SubSection: sub.Name,
					Label:      label,
					Code:       domain.BinCode(s.Name, sub.Name, label),
					Capacity:   sub.Capacity,
					Active:     true,
				})
			}
		}
	}

	return bins
}
