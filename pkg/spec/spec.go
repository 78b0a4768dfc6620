package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// projectFiles are tried in order by LoadProject.
var projectFiles = []string{"site.yaml", "site.yml", "site.toml"}

// Load reads a project spec from a YAML or TOML file, picked by extension.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	var p Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing spec TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing spec YAML: %w", err)
		}
	}

	return &p, nil
}

// LoadProject loads a project spec from a project directory.
// It looks for site.yaml, site.yml, then site.toml in the given directory.
func LoadProject(projectDir string) (*Project, error) {
	for _, name := range projectFiles {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
		return Load(path)
	}
	return nil, fmt.Errorf("no site spec in %s (looked for %s)", projectDir, strings.Join(projectFiles, ", "))
}

// LoadPath loads a project from either a spec file or a project directory.
func LoadPath(path string) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec path: %w", err)
	}
	if info.IsDir() {
		return LoadProject(path)
	}
	return Load(path)
}

// Save writes a project spec as YAML or TOML, picked by extension.
func Save(path string, p *Project) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return fmt.Errorf("encoding spec TOML: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding spec YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding spec YAML: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing spec file: %w", err)
	}
	return nil
}
