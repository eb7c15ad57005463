// Package storage defines the document store behind experiment tracking
// and report persistence. Documents are grouped into collections and
// addressed by name; the only shipped implementation writes JSON files.
package storage

import (
	"errors"
	"fmt"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// K addresses one document inside a store.
type K struct {
	Collection string `json:"collection"`
	Name       string `json:"name"`
}

// Registry stores documents one by one.
type Registry interface {
	Put(key K, value interface{}) error
	Get(key K, value interface{}) error
}

// VoidRegistry ignores writes and finds nothing. It backs runs with
// tracking disabled.
type VoidRegistry struct {
}

func NewVoidRegistry() *VoidRegistry {
	return &VoidRegistry{}
}

func (v VoidRegistry) Put(key K, value interface{}) error {
	return nil
}

func (v VoidRegistry) Get(key K, value interface{}) error {
	return fmt.Errorf("no document '%+v': %w", key, NotFoundErr)
}
