// Package catalog holds the static workflow capability tables.
//
// # Embedded Defaults
//
// The built-in catalogs are embedded at compile time from defaults/:
//   - defaults/weighted.yaml - multi-category weights for the default profile
//   - defaults/coarse.yaml   - small integer weights for the coarse profile
//
// # Overrides
//
// A catalog file in YAML (.yaml, .yml) or TOML (.toml) with the same shape
// can replace the built-in one via Load. Every file is validated on load;
// once returned, a Catalog is never modified and is safe to share.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/xrsl/wfx/pkg/brief"
)

//go:embed defaults/*.yaml
var defaults embed.FS

var (
	ErrInvalidCatalog   = errors.New("invalid catalog")
	ErrWorkflowNotFound = errors.New("workflow not found")
)

// Format is the encoding of a catalog file.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Feature is a core requirement a workflow supports.
type Feature struct {
	Signal   string  `yaml:"signal" toml:"signal" json:"signal"`
	Weight   float64 `yaml:"weight" toml:"weight" json:"weight"`
	Strength string  `yaml:"strength" toml:"strength" json:"strength"`
}

// Tech is a technology affinity. Present is false when the workflow is
// known not to use it; such entries never score.
type Tech struct {
	Signal  string  `yaml:"signal" toml:"signal" json:"signal"`
	Weight  float64 `yaml:"weight" toml:"weight" json:"weight"`
	Present bool    `yaml:"present" toml:"present" json:"present"`
}

// TypeFit is a bonus for a detected project type.
type TypeFit struct {
	Type   brief.ProjectType `yaml:"type" toml:"type" json:"type"`
	Bonus  float64           `yaml:"bonus" toml:"bonus" json:"bonus"`
	Reason string            `yaml:"reason" toml:"reason" json:"reason"`
}

// Workflow is one candidate template and what it is good at.
type Workflow struct {
	Name           string    `yaml:"name" toml:"name" json:"name"`
	Features       []Feature `yaml:"features" toml:"features" json:"features"`
	Tech           []Tech    `yaml:"tech" toml:"tech" json:"tech,omitempty"`
	ProjectTypeFit []TypeFit `yaml:"project_type_fit" toml:"project_type_fit" json:"project_type_fit,omitempty"`
	BestFor        []string  `yaml:"best_for" toml:"best_for" json:"best_for"`
	NotFor         []string  `yaml:"not_for" toml:"not_for" json:"not_for"`
	Complexity     string    `yaml:"complexity" toml:"complexity" json:"complexity"`
	SetupTime      string    `yaml:"setup_time" toml:"setup_time" json:"setup_time"`
	TeamSize       string    `yaml:"team_size" toml:"team_size" json:"team_size"`
}

// TypeFitFor returns the fit entry for t, if the workflow has one.
func (w Workflow) TypeFitFor(t brief.ProjectType) (TypeFit, bool) {
	if t == "" {
		return TypeFit{}, false
	}
	for _, f := range w.ProjectTypeFit {
		if f.Type == t {
			return f, true
		}
	}
	return TypeFit{}, false
}

// clone returns a deep copy so callers cannot reach the catalog's slices.
func (w Workflow) clone() Workflow {
	w.Features = slices.Clone(w.Features)
	w.Tech = slices.Clone(w.Tech)
	w.ProjectTypeFit = slices.Clone(w.ProjectTypeFit)
	w.BestFor = slices.Clone(w.BestFor)
	w.NotFor = slices.Clone(w.NotFor)
	return w
}

type document struct {
	Version   string     `yaml:"version" toml:"version"`
	Workflows []Workflow `yaml:"workflows" toml:"workflows"`
}

// Catalog is an ordered, validated set of workflows. File order is the
// tie-break order used when ranking.
type Catalog struct {
	version   string
	digest    string
	workflows []Workflow
	byName    map[string]int
}

// Version is the version string declared in the catalog file.
func (c *Catalog) Version() string { return c.version }

// Digest is the SHA256 of the bytes the catalog was parsed from.
func (c *Catalog) Digest() string { return c.digest }

// Len returns the number of workflows.
func (c *Catalog) Len() int { return len(c.workflows) }

// Workflows returns the workflows in catalog order.
func (c *Catalog) Workflows() []Workflow {
	out := make([]Workflow, len(c.workflows))
	for i, w := range c.workflows {
		out[i] = w.clone()
	}
	return out
}

// Names returns workflow names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.workflows))
	for i, w := range c.workflows {
		names[i] = w.Name
	}
	return names
}

// Get returns the workflow with exactly this name.
func (c *Catalog) Get(name string) (Workflow, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Workflow{}, false
	}
	return c.workflows[i].clone(), true
}

// Find resolves a user-typed name: exact, then case-insensitive, then the
// best fuzzy match.
func (c *Catalog) Find(query string) (Workflow, error) {
	if w, ok := c.Get(query); ok {
		return w, nil
	}
	for _, w := range c.workflows {
		if strings.EqualFold(w.Name, query) {
			return w.clone(), nil
		}
	}
	matches := fuzzy.Find(query, c.Names())
	if len(matches) == 0 {
		return Workflow{}, fmt.Errorf("%w: %q", ErrWorkflowNotFound, query)
	}
	return c.workflows[matches[0].Index].clone(), nil
}

// Builtin returns an embedded catalog by name ("weighted" or "coarse").
func Builtin(name string) (*Catalog, error) {
	data, err := defaults.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown built-in catalog %q", name)
	}
	return Parse(data, YAML)
}

// Load reads and validates a catalog file; the format follows the extension.
func Load(path string) (*Catalog, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = YAML
	case ".toml":
		format = TOML
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog.
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc document
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	case TOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown field %s", ErrInvalidCatalog, undecoded[0])
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	c := &Catalog{
		version:   doc.Version,
		digest:    hex.EncodeToString(sum[:]),
		workflows: doc.Workflows,
		byName:    make(map[string]int, len(doc.Workflows)),
	}
	for i, w := range doc.Workflows {
		c.byName[w.Name] = i
	}
	return c, nil
}
