// Package config loads and validates the analysis configuration file that
// drives a starchart run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starchartio/starchart/internal/yamldoc"
)

// supportedVersion is the only analysis file format this build understands.
const supportedVersion = "1.0"

// Policy selects how malformed rating rows are handled.
type Policy string

const (
	// PolicyAbort fails the run on the first malformed row.
	PolicyAbort Policy = "abort"
	// PolicySkip drops malformed rows and reports them in the run summary.
	PolicySkip Policy = "skip"
)

// ParsePolicy converts a user-supplied string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAbort, PolicySkip:
		return Policy(s), nil
	}
	return "", fmt.Errorf("invalid parse-error policy %q (valid: abort, skip)", s)
}

// Scale is the inclusive numeric range ratings are expected to fall into.
type Scale struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Chart holds presentation options for the rendered chart image.
type Chart struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Config is the analysis configuration. Every stage receives the loaded
// value explicitly; nothing reads configuration from package state.
type Config struct {
	Version      string `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"enum=1.0"`
	DataPath     string `yaml:"data_path" json:"data_path" jsonschema:"description=Flat file with one textual rating per line"`
	LabelsPath   string `yaml:"labels_path" json:"labels_path" jsonschema:"description=YAML file defining the category table"`
	OutputPath   string `yaml:"output_path" json:"output_path" jsonschema:"description=Chart image path ending in .png or .svg"`
	Scale        *Scale `yaml:"scale,omitempty" json:"scale,omitempty"`
	OnParseError Policy `yaml:"on_parse_error,omitempty" json:"on_parse_error,omitempty" jsonschema:"enum=abort,enum=skip"`
	Chart        Chart  `yaml:"chart,omitempty" json:"chart,omitempty"`

	SourceFile string `yaml:"-" json:"-"`
}

// Load reads, decodes and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Err: err}
	}

	cfg, err := LoadBytes(data, path)
	if err != nil {
		return nil, err
	}

	cfg.SourceFile = path
	return cfg, nil
}

// LoadBytes decodes and validates configuration data. The file name is only
// used in error positions.
func LoadBytes(data []byte, file string) (*Config, error) {
	doc, err := yamldoc.Parse(data, file)
	if err != nil {
		return nil, &Error{File: file, Err: err}
	}

	var cfg Config
	if err := doc.Decode(&cfg); err != nil {
		return nil, &Error{File: file, Err: err}
	}

	cfg.applyDefaults()

	if err := cfg.validate(doc); err != nil {
		return nil, &Error{File: file, Err: err}
	}

	return &cfg, nil
}

// applyDefaults fills the documented defaults for keys the file omits. Keys
// that are present but invalid are never defaulted; validate rejects them.
func (c *Config) applyDefaults() {
	if c.Scale == nil {
		c.Scale = &Scale{Min: 1, Max: 5}
	}
	if c.OnParseError == "" {
		c.OnParseError = PolicyAbort
	}
}

func (c *Config) validate(doc *yamldoc.Document) error {
	multi := &yamldoc.MultiError{}

	if c.Version != "" && c.Version != supportedVersion {
		multi.Add(&yamldoc.Error{
			Message:    fmt.Sprintf("unsupported version %q", c.Version),
			Position:   doc.Key("version"),
			Context:    doc.Context(doc.Key("version")),
			Suggestion: fmt.Sprintf("This build understands version %q", supportedVersion),
		})
	}

	required := []struct {
		key   string
		value string
	}{
		{"data_path", c.DataPath},
		{"labels_path", c.LabelsPath},
		{"output_path", c.OutputPath},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			multi.Add(&yamldoc.Error{
				Message:    fmt.Sprintf("%s is required", field.key),
				Position:   doc.Key(field.key),
				Suggestion: fmt.Sprintf("Set %s to a file path", field.key),
			})
		}
	}

	if c.OutputPath != "" {
		switch strings.ToLower(filepath.Ext(c.OutputPath)) {
		case ".png", ".svg":
		default:
			multi.Add(&yamldoc.Error{
				Message:    fmt.Sprintf("output_path %q must end in .png or .svg", c.OutputPath),
				Position:   doc.Key("output_path"),
				Context:    doc.Context(doc.Key("output_path")),
				Suggestion: "The chart image format is chosen by the file extension",
			})
		}
	}

	if c.Scale.Min >= c.Scale.Max {
		multi.Add(&yamldoc.Error{
			Message:  fmt.Sprintf("scale min %v must be less than max %v", c.Scale.Min, c.Scale.Max),
			Position: doc.Key("scale"),
			Context:  doc.Context(doc.Key("scale")),
		})
	}

	if _, err := ParsePolicy(string(c.OnParseError)); err != nil {
		multi.Add(&yamldoc.Error{
			Message:    fmt.Sprintf("invalid on_parse_error value %q", c.OnParseError),
			Position:   doc.Key("on_parse_error"),
			Suggestion: `Use "abort" to fail on the first malformed row or "skip" to drop malformed rows`,
		})
	}

	return multi.ToError()
}
