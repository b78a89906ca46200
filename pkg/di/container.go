// Package di provides dependency injection container
package di

import (
	"log/slog"

	"github.com/ssargent/uwbwire/pkg/api" //nolint:depguard
	"github.com/ssargent/uwbwire/pkg/capture"
)

// StoreOpener opens the capture store kept in dataDir
type StoreOpener func(dataDir string, logger *slog.Logger) (*capture.Store, error)

// Container holds all the dependencies for the application
type Container struct {
	storeOpener   StoreOpener
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		storeOpener:   capture.Open,
		serverFactory: api.NewServerFactory(),
	}
}

// GetStoreOpener returns the capture store opener
func (c *Container) GetStoreOpener() StoreOpener {
	return c.storeOpener
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetStoreOpener allows overriding the capture store opener (for testing)
func (c *Container) SetStoreOpener(opener StoreOpener) {
	c.storeOpener = opener
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
