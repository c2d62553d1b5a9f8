// Package catalog provides read-only access to the course and bakery assortments.
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound indicates that no catalog entry exists for the requested id.
var ErrNotFound = errors.New("catalog entry not found")

// Course describes an educational course offered by the bakery.
type Course struct {
	ID          string
	Name        string
	Description string
	Duration    string
	Price       int64
}

// Item describes a bakery product available for ordering.
type Item struct {
	ID    string
	Name  string
	Price int64
}

// Catalog resolves course and item identifiers to their descriptions.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// Course returns the course with the given id, or ErrNotFound.
	Course(ctx context.Context, id string) (*Course, error)
	// Item returns the bakery item with the given id, or ErrNotFound.
	Item(ctx context.Context, id string) (*Item, error)
	// Courses returns all courses in display order.
	Courses(ctx context.Context) ([]Course, error)
	// Items returns all bakery items in display order.
	Items(ctx context.Context) ([]Item, error)
}
