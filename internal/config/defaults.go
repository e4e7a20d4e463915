package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// ErrUnknownVariant is returned when no embedded default exists for an ID.
var ErrUnknownVariant = errors.New("unknown variant")

// IDs returns the IDs of all embedded variants, sorted.
func IDs() []string {
	entries, err := fs.ReadDir(defaultsFS, "defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

// DefaultYAML returns the embedded default YAML for a variant.
func DefaultYAML(id string) ([]byte, error) {
	data, err := defaultsFS.ReadFile(path.Join("defaults", id+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("config: %q: %w", id, ErrUnknownVariant)
	}
	return data, nil
}

// Default parses the embedded default for a variant.
func Default(id string) (Variant, error) {
	var v Variant
	data, err := DefaultYAML(id)
	if err != nil {
		return v, err
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("config: parse default %s: %w", id, err)
	}
	return v, nil
}
