// Where: internal/infra/config/project.go
// What: Project config load/save and validation.
// Why: Describe every collection of a module in one assetenum.yaml for go:generate.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poruru-code/assetenum/internal/domain/asset"
	"github.com/poruru-code/assetenum/internal/infra/fileops"
	"github.com/poruru-code/assetenum/internal/infra/render"
	"github.com/poruru-code/assetenum/internal/meta"
)

// CurrentVersion is the only accepted config version.
const CurrentVersion = 1

// ProjectConfig is the contents of assetenum.yaml.
type ProjectConfig struct {
	Version     int                `yaml:"version"`
	Package     string             `yaml:"package,omitempty"`
	Collections []CollectionConfig `yaml:"collections"`

	// BaseDir is the directory holding the config file; relative paths
	// resolve against it.
	BaseDir string `yaml:"-"`
}

// CollectionConfig describes one generated enum.
type CollectionConfig struct {
	Name        string `yaml:"name"`
	Dir         string `yaml:"dir"`
	Include     string `yaml:"include,omitempty"`
	Exclude     string `yaml:"exclude,omitempty"`
	Output      string `yaml:"output,omitempty"`
	Package     string `yaml:"package,omitempty"`
	Mode        string `yaml:"mode,omitempty"`
	ConstPrefix string `yaml:"const_prefix,omitempty"`
	NoPrefix    bool   `yaml:"no_prefix,omitempty"`
	ForbidEmpty bool   `yaml:"forbid_empty,omitempty"`
	Manifest    string `yaml:"manifest,omitempty"`
}

// DefaultProjectConfig returns a config with one example collection.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: CurrentVersion,
		Package: meta.DefaultPackage,
		Collections: []CollectionConfig{{
			Name:   "Assets",
			Dir:    "assets",
			Output: meta.DefaultOutput,
		}},
	}
}

// Filter returns the collection's include/exclude patterns.
func (c CollectionConfig) Filter() asset.FilterSpec {
	return asset.FilterSpec{Include: c.Include, Exclude: c.Exclude}
}

// OutputName returns Output or a name derived from the collection.
func (c CollectionConfig) OutputName() string {
	if strings.TrimSpace(c.Output) != "" {
		return c.Output
	}
	return strings.ToLower(c.Name) + "_gen" + meta.GeneratedFileExt
}

// Resolve returns p relative to the config directory unless it is absolute.
func (p ProjectConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, filepath.FromSlash(path))
}

// PackageFor returns the Go package of c, falling back to the project default.
func (p ProjectConfig) PackageFor(c CollectionConfig) string {
	if c.Package != "" {
		return c.Package
	}
	return p.Package
}

// Select returns the named collections in config order. No names selects all.
func (p ProjectConfig) Select(names []string) ([]CollectionConfig, error) {
	if len(names) == 0 {
		return p.Collections, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	selected := make([]CollectionConfig, 0, len(names))
	for _, c := range p.Collections {
		if wanted[c.Name] {
			selected = append(selected, c)
			delete(wanted, c.Name)
		}
	}
	for _, name := range names {
		if wanted[name] {
			return nil, fmt.Errorf("%w: no collection named %q", asset.ErrInvalidConfig, name)
		}
	}
	return selected, nil
}

// Validate checks names, paths, and modes, and that no two collections write
// the same output file.
func (p ProjectConfig) Validate() error {
	var errs []error
	if p.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported version %d (want %d)", p.Version, CurrentVersion))
	}
	if len(p.Collections) == 0 {
		errs = append(errs, errors.New("no collections defined"))
	}
	outputs := map[string]string{}
	names := map[string]bool{}
	for i, c := range p.Collections {
		label := fmt.Sprintf("collections[%d]", i)
		if err := asset.ValidateName("collection", c.Name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		} else {
			label = c.Name
		}
		if names[c.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate collection name", label))
		}
		names[c.Name] = true
		if strings.TrimSpace(c.Dir) == "" {
			errs = append(errs, fmt.Errorf("%s: dir is required", label))
		}
		if pkg := p.PackageFor(c); pkg != "" {
			if err := asset.ValidateName("package", pkg); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", label, err))
			}
		}
		if _, err := render.ParseMode(c.Mode); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
		if _, err := c.Filter().Compile(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
		output := filepath.Clean(p.Resolve(c.OutputName()))
		if other, ok := outputs[output]; ok {
			errs = append(errs, fmt.Errorf("%s: output %s already written by %s", label, c.OutputName(), other))
		}
		outputs[output] = label
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", asset.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadProjectConfig reads, decodes, and validates a config file.
func LoadProjectConfig(path string) (ProjectConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("read project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("%w: decode %s: %v", asset.ErrInvalidConfig, path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ProjectConfig{}, err
	}
	cfg.BaseDir = filepath.Dir(abs)
	if err := cfg.Validate(); err != nil {
		return ProjectConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveProjectConfig writes cfg to path.
func SaveProjectConfig(path string, cfg ProjectConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode project config: %w", err)
	}
	if err := fileops.WriteFileAtomic(path, payload); err != nil {
		return fmt.Errorf("write project config: %w", err)
	}
	return nil
}
