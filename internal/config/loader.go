package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Loader resolves variant rules from disk or the embedded defaults.
//
// Search order: custom path -> UserDir/<id>.yaml -> LocalDir/<id>.yaml ->
// embedded default. Files are decoded on top of the embedded default, so a
// user file only needs the keys it changes.
type Loader struct {
	UserDir  string // Usually ~/.arcade/configs; empty skips the lookup
	LocalDir string // Usually ./configs; empty skips the lookup
	Logger   *log.Logger
}

// NewLoader creates a loader with the standard search directories.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		UserDir:  userConfigDir(),
		LocalDir: "configs",
		Logger:   logger,
	}
}

// Load returns the effective rules for a variant.
// A custom path that cannot be read, parsed or validated is an error.
// Broken files in the implicit locations are skipped with a warning.
func (l *Loader) Load(id, customPath string) (Variant, error) {
	base, err := Default(id)
	if err != nil {
		return Variant{}, err
	}

	if customPath != "" {
		v, err := decodeFile(base, customPath)
		if err != nil {
			return Variant{}, err
		}
		if err := v.Validate(); err != nil {
			return Variant{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return v, nil
	}

	for _, p := range l.candidates(id) {
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		v, err := decodeFile(base, p)
		if err == nil {
			err = v.Validate()
		}
		if err != nil {
			l.logger().Warn("ignoring config file", "path", p, "err", err)
			continue
		}
		l.logger().Debug("loaded config", "variant", id, "path", p)
		return v, nil
	}

	if err := base.Validate(); err != nil {
		return Variant{}, fmt.Errorf("config: embedded %s: %w", id, err)
	}
	return base, nil
}

// Path returns the file Load would read first for a variant, or "" when
// only the embedded default applies.
func (l *Loader) Path(id, customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, p := range l.candidates(id) {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (l *Loader) candidates(id string) []string {
	var paths []string
	if l.UserDir != "" {
		paths = append(paths, filepath.Join(l.UserDir, id+".yaml"))
	}
	if l.LocalDir != "" {
		paths = append(paths, filepath.Join(l.LocalDir, id+".yaml"))
	}
	return paths
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		l.Logger = log.New(io.Discard)
	}
	return l.Logger
}

// decodeFile overlays the YAML file at path onto base.
func decodeFile(base Variant, path string) (Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Variant{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	v := base
	v.Keys = cloneKeys(base.Keys)
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Variant{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return v, nil
}

func cloneKeys(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// userConfigDir returns ~/.arcade/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}

// Marshal renders a variant back to YAML, as printed by `arcade config`.
func Marshal(v Variant) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("config: marshal %s: %w", v.ID, err)
	}
	return data, nil
}
