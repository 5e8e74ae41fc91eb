package service

import (
	"github.com/sguter90/sensormaestro/pkg/source"
	"github.com/sguter90/sensormaestro/pkg/source/fake"
	"github.com/sguter90/sensormaestro/pkg/source/remote"
	"github.com/sguter90/sensormaestro/pkg/source/static"
)

// NewSourceRegistry registers every built-in sensor source
func NewSourceRegistry() *source.Registry {
	registry := source.NewRegistry()
	registry.Register(fake.NewSource())
	registry.Register(static.NewSource())
	registry.Register(remote.NewSource())
	return registry
}
