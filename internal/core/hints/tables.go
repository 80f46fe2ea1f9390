package hints

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

type Category string

const (
	CategoryAnimal    Category = "animal"
	CategoryVehicle   Category = "vehicle"
	CategoryFurniture Category = "furniture"
	CategoryOther     Category = "other"
)

type CategorySet struct {
	Label   string   `yaml:"label"`
	Members []string `yaml:"members"`
}

// Tables is the lookup data behind translation, categorization, articles and
// plurals. Build it with ParseTables or LoadTables.
type Tables struct {
	Translations map[string]string        `yaml:"translations"`
	Categories   map[Category]CategorySet `yaml:"categories"`
	Articles     map[string]string        `yaml:"articles"`
	Plurals      map[string]string        `yaml:"plurals"`

	membership map[string]Category
}

// LoadTables reads a YAML override file, or the embedded defaults when path
// is empty.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return ParseTables(defaultTables)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}
	return ParseTables(b)
}

// DefaultTables panics if the embedded file is broken.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTables)
	if err != nil {
		panic(err)
	}
	return t
}

func ParseTables(b []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if err := t.index(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) index() error {
	for k, v := range t.Translations {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return fmt.Errorf("tables: empty translation entry %q -> %q", k, v)
		}
	}
	t.membership = map[string]Category{}
	for c, set := range t.Categories {
		switch c {
		case CategoryAnimal, CategoryVehicle, CategoryFurniture:
		default:
			return fmt.Errorf("tables: unknown category %q", c)
		}
		if set.Label == "" {
			return fmt.Errorf("tables: category %q has no label", c)
		}
		for _, m := range set.Members {
			if prev, ok := t.membership[m]; ok && prev != c {
				return fmt.Errorf("tables: %q is in both %q and %q", m, prev, c)
			}
			t.membership[m] = c
		}
	}
	for k, a := range t.Articles {
		if a != "un" && a != "una" {
			return fmt.Errorf("tables: article for %q must be un or una, got %q", k, a)
		}
	}
	return nil
}

func (t *Tables) translate(name string) string {
	if v, ok := t.Translations[name]; ok {
		return v
	}
	return name
}

func (t *Tables) category(label string) Category {
	if c, ok := t.membership[label]; ok {
		return c
	}
	return CategoryOther
}

// categoryLabel is the spoken name that replaces low-confidence labels.
func (t *Tables) categoryLabel(c Category) string {
	if set, ok := t.Categories[c]; ok {
		return set.Label
	}
	return string(c)
}

func (t *Tables) article(label string) string {
	if a, ok := t.Articles[label]; ok {
		return a
	}
	return "un"
}

func (t *Tables) plural(label string) string {
	if p, ok := t.Plurals[label]; ok {
		return p
	}
	if strings.HasSuffix(label, "z") {
		return strings.TrimSuffix(label, "z") + "ces"
	}
	return label + "s"
}
