// Package di provides dependency injection container
package di

import (
	"github.com/kvalheim/rowscan/pkg/blob"
)

// StoreOpener opens a blob store with the given configuration
type StoreOpener func(config blob.StoreConfig) (*blob.Store, error)

// Container holds all the dependencies for the application
type Container struct {
	storeOpener StoreOpener
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		storeOpener: blob.OpenStore,
	}
}

// OpenStore opens a blob store using the configured opener
func (c *Container) OpenStore(config blob.StoreConfig) (*blob.Store, error) {
	return c.storeOpener(config)
}

// SetStoreOpener allows overriding the store opener (for testing)
func (c *Container) SetStoreOpener(opener StoreOpener) {
	c.storeOpener = opener
}
