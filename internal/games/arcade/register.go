package arcade

import (
	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/registry"
)

// Register every embedded variant with the registry
func init() {
	for _, id := range config.IDs() {
		title := id
		if v, err := config.Default(id); err == nil && v.Title != "" {
			title = v.Title
		}
		registry.Register(registry.GameInfo{ID: id, Title: title}, factory(id))
	}
}

func factory(id string) registry.Factory {
	return func(opts registry.Options) (registry.Game, error) {
		g, err := New(id, opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}
