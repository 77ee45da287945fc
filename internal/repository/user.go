// Package repository provides data access for domain entities.
//
// The only implementation is an in-memory table seeded at startup. The
// interface keeps call sites ready for a real persistence layer without
// changes.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/junelabs/june/internal/auth"
	"github.com/junelabs/june/internal/model"
)

// ErrUserNotFound is returned when a user lookup misses.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the read-only credential store contract.
type UserRepository interface {
	// Lookup returns the user with the given id, or ErrUserNotFound.
	Lookup(ctx context.Context, id string) (*model.User, error)
	// Count returns the number of stored users.
	Count(ctx context.Context) (int, error)
}

// InMemory is a process-lifetime user table. It is populated once in New
// and never mutated afterwards, so concurrent reads need no locking.
type InMemory struct {
	users map[string]*model.User
}

// SeedUser describes an account to create at startup.
type SeedUser struct {
	ID   string
	Name string
	Pin  string
}

// DefaultSeed is the single account present on every fresh process.
var DefaultSeed = []SeedUser{
	{ID: "parvathy", Name: "Parvathy", Pin: "4321"},
}

// NewInMemory builds the user table, hashing each seed PIN synchronously so
// every account is available before the server accepts connections.
func NewInMemory(seed []SeedUser) (*InMemory, error) {
	users := make(map[string]*model.User, len(seed))
	for _, s := range seed {
		pinHash, err := auth.HashPin(s.Pin)
		if err != nil {
			return nil, err
		}
		users[s.ID] = &model.User{
			ID:        s.ID,
			Name:      s.Name,
			PinHash:   pinHash,
			CreatedAt: time.Now().UTC(),
		}
	}
	return &InMemory{users: users}, nil
}

// Lookup implements UserRepository.
func (r *InMemory) Lookup(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Count implements UserRepository.
func (r *InMemory) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}
