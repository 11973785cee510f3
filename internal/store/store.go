package store

import (
	"context"
	"errors"
)

var (
	// ErrExists occurs when Create finds a record already stored under the
	// requested collection and key.
	ErrExists = errors.New("record already exists")

	// ErrNotFound occurs when Read, Update or Delete is pointed at a
	// collection/key pair with no stored record.
	ErrNotFound = errors.New("record not found")
)

const (
	// Users is the collection holding user records keyed by phone number.
	Users = "users"
	// Tokens is the collection holding token records keyed by token id.
	Tokens = "tokens"
)

// Store is the keyed record persistence contract implemented by storage
// backends. Values are JSON documents. Create is atomic and fail-if-exists at
// the key level; Update and Delete fail if the key is absent.
type Store interface {
	Create(ctx context.Context, collection, key string, value any) error
	Read(ctx context.Context, collection, key string, out any) error
	Update(ctx context.Context, collection, key string, value any) error
	Delete(ctx context.Context, collection, key string) error
}
