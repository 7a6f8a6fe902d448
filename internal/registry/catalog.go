package registry

import (
	"context"
	"slices"
	"sync"

	"github.com/zjrosen/polyslot/internal/log"
)

// The catalog stands in for "every type loaded in the process": plugin
// packages Declare their markers from init, and Load builds the shared
// Registry from them exactly once.
var (
	catalogMu sync.Mutex
	catalog   []Marker

	loadOnce sync.Once
	loaded   *Registry
	loadErr  error
)

// Declare adds markers to the process-wide catalog. Markers declared after
// Load has built the shared Registry are not picked up.
func Declare(markers ...Marker) {
	catalogMu.Lock()
	defer catalogMu.Unlock()

	if loaded != nil || loadErr != nil {
		for _, m := range markers {
			log.Warn(log.CatRegistry, "marker declared after registry build, ignored", "marker", m.String())
		}
	}
	catalog = append(catalog, markers...)
}

// Declared returns a copy of the catalog.
func Declared() []Marker {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	return slices.Clone(catalog)
}

// Load builds the shared Registry from the catalog on first call and
// returns the cached result (including a build error) afterwards. Options
// only apply to the first call.
func Load(ctx context.Context, opts ...BuildOption) (*Registry, error) {
	loadOnce.Do(func() {
		reg, err := Build(ctx, Declared(), opts...)
		catalogMu.Lock()
		loaded, loadErr = reg, err
		catalogMu.Unlock()
	})
	catalogMu.Lock()
	defer catalogMu.Unlock()
	return loaded, loadErr
}
