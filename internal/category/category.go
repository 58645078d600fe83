// Package category defines the category table that buckets numeric ratings
// into named ranges.
package category

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/starchartio/starchart/internal/config"
	"github.com/starchartio/starchart/internal/yamldoc"
	"gopkg.in/yaml.v3"
)

// Category is a single named bucket over a half-open range of ratings.
type Category struct {
	Name string  `yaml:"name" json:"name"`
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`

	Position yamldoc.Position `yaml:"-" json:"-"`
}

var categoryKeys = []string{"name", "min", "max"}

// UnmarshalYAML captures the node position alongside the decoded fields.
// KnownFields does not reach into custom unmarshalers, so stray keys are
// rejected here with the same error shape the decoder itself produces.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s into category.Category", value.Line, value.Tag),
		}}
	}

	var stray []string
	for i := 0; i < len(value.Content); i += 2 {
		key := value.Content[i]
		if !lo.Contains(categoryKeys, key.Value) {
			stray = append(stray, fmt.Sprintf("line %d: field %s not found in type category.Category", key.Line, key.Value))
		}
	}
	if len(stray) > 0 {
		return &yaml.TypeError{Errors: stray}
	}

	type categoryAlias Category
	var temp categoryAlias
	if err := value.Decode(&temp); err != nil {
		return err
	}

	*c = Category(temp)
	c.Position = yamldoc.Position{Line: value.Line, Column: value.Column}
	return nil
}

// Table is an ordered set of categories covering the configured rating scale.
type Table struct {
	Categories []Category `yaml:"categories" json:"categories"`

	SourceFile string `yaml:"-" json:"-"`
}

// Load reads the labels file at path and validates it against the scale.
func Load(path string, scale config.Scale) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TableError{File: path, Err: err}
	}

	table, err := LoadBytes(data, path, scale)
	if err != nil {
		return nil, err
	}

	table.SourceFile = path
	return table, nil
}

// LoadBytes decodes and validates a labels document. The file name is only
// used in error positions.
func LoadBytes(data []byte, file string, scale config.Scale) (*Table, error) {
	doc, err := yamldoc.Parse(data, file)
	if err != nil {
		return nil, &TableError{File: file, Err: err}
	}

	var table Table
	if err := doc.Decode(&table); err != nil {
		return nil, &TableError{File: file, Err: err}
	}

	if err := table.validate(doc, scale); err != nil {
		return nil, &TableError{File: file, Err: err}
	}

	return &table, nil
}

// validate checks that the table covers the scale exactly: ascending buckets
// with unique names, the first starting at scale min, each continuing where
// the previous ended, and the last closing at scale max. Every violation is
// collected so the file can be fixed in one pass.
func (t *Table) validate(doc *yamldoc.Document, scale config.Scale) error {
	multi := &yamldoc.MultiError{}

	if len(t.Categories) == 0 {
		multi.Add(&yamldoc.Error{
			Message:    "categories must define at least one bucket",
			Position:   doc.Key("categories"),
			Suggestion: "List the rating buckets in ascending order, each with name, min and max",
		})
		return multi.ToError()
	}

	seen := make(map[string]bool, len(t.Categories))
	for i, cat := range t.Categories {
		pos := cat.Position
		pos.File = doc.File

		name := strings.TrimSpace(cat.Name)
		if name == "" {
			multi.Add(&yamldoc.Error{
				Message:  fmt.Sprintf("category %d has no name", i+1),
				Position: pos,
				Context:  doc.Context(pos),
			})
		} else if seen[name] {
			multi.Add(&yamldoc.Error{
				Message:  fmt.Sprintf("duplicate category name %q", name),
				Position: pos,
				Context:  doc.Context(pos),
			})
		}
		seen[name] = true

		if cat.Min >= cat.Max {
			multi.Add(&yamldoc.Error{
				Message:  fmt.Sprintf("category %q min %v must be less than max %v", cat.Name, cat.Min, cat.Max),
				Position: pos,
				Context:  doc.Context(pos),
			})
		}

		if i == 0 {
			if cat.Min != scale.Min {
				multi.Add(&yamldoc.Error{
					Message:    fmt.Sprintf("first category min %v must equal scale min %v", cat.Min, scale.Min),
					Position:   pos,
					Suggestion: "Buckets must cover the whole rating scale with no gap before the first",
				})
			}
		} else if prev := t.Categories[i-1]; cat.Min != prev.Max {
			multi.Add(&yamldoc.Error{
				Message:  fmt.Sprintf("category %q min %v does not continue from %q max %v", cat.Name, cat.Min, prev.Name, prev.Max),
				Position: pos,
				Context:  doc.Context(pos),
			})
		}
	}

	if last := t.Categories[len(t.Categories)-1]; last.Max != scale.Max {
		pos := last.Position
		pos.File = doc.File
		multi.Add(&yamldoc.Error{
			Message:    fmt.Sprintf("last category max %v must equal scale max %v", last.Max, scale.Max),
			Position:   pos,
			Suggestion: "Buckets must cover the whole rating scale with no gap after the last",
		})
	}

	return multi.ToError()
}

// Categorize returns the name of the bucket v falls into. Buckets are
// half-open [min, max); the final bucket also includes its upper bound.
func (t *Table) Categorize(v float64) (string, error) {
	for i, cat := range t.Categories {
		last := i == len(t.Categories)-1
		if v >= cat.Min && (v < cat.Max || (last && v == cat.Max)) {
			return cat.Name, nil
		}
	}

	return "", &UnmatchedError{Value: v}
}

// Names returns the category names in table order.
func (t *Table) Names() []string {
	return lo.Map(t.Categories, func(c Category, _ int) string { return c.Name })
}
