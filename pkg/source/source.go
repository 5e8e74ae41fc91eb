package source

import (
	"context"
	"sort"
	"sync"

	"github.com/sguter90/sensormaestro/pkg/models"
)

// Source defines the interface for everything that can enumerate sensors
type Source interface {
	// GetSourceType returns the source type identifier (e.g., "fake", "static", "remote")
	GetSourceType() string

	// Enumerate lists the sensors currently exposed by the source
	// ctx: context for cancellation and timeouts
	// config: source-specific configuration (file path, remote URL, etc.)
	Enumerate(ctx context.Context, config map[string]string) ([]models.SensorInfo, error)

	// ValidateConfig checks if the provided configuration is valid for this source
	ValidateConfig(config map[string]string) error
}

// Registry holds all registered sensor sources
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewRegistry creates a new source registry
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source to the registry
func (r *Registry) Register(s Source) {
	if s == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources[s.GetSourceType()] = s
}

// Get retrieves a source by type
func (r *Registry) Get(sourceType string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sources[sourceType]
	return s, ok
}

// All returns all registered sources ordered by type
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].GetSourceType() < sources[j].GetSourceType()
	})
	return sources
}
