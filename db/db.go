// Package db holds the metadata registries: generic key/value stores that
// map generated identifiers to project and model records.
package db

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Store is a registry keyed by generated identifier. Set overwrites any
// previous value. Get and Delete return ErrNotFound for unknown ids.
type Store[V any] interface {
	Get(ctx context.Context, id string) (V, error)
	Set(ctx context.Context, id string, value V) error
	Delete(ctx context.Context, id string) error
}
