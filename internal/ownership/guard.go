// Package ownership provides the single ownership check used by every
// mutating operation. Each entity kind instantiates one Guard with a loader
// and an owner-id accessor instead of repeating the load-and-compare logic
// per service.
package ownership

import (
	"errors"
	"fmt"

	"wishwell/internal/apperrors"
)

// Guard verifies that the acting user owns an entity before a mutation is
// allowed. T is the entity type; the zero Guard is not usable.
type Guard[T any] struct {
	kind  string
	load  func(id uint) (*T, error)
	owner func(*T) uint
}

// NewGuard creates a Guard for one entity kind. load fetches the entity by
// id (returning an error wrapping apperrors.ErrNotFound when absent) and
// owner extracts the owning user's id from a loaded entity.
func NewGuard[T any](kind string, load func(id uint) (*T, error), owner func(*T) uint) Guard[T] {
	return Guard[T]{kind: kind, load: load, owner: owner}
}

// Check loads the entity and asserts actingUserID owns it. The loaded
// entity is returned so callers do not need a second fetch. Fails with
// apperrors.ErrNotFound when the entity is absent and apperrors.ErrForbidden
// on an ownership mismatch.
func (g Guard[T]) Check(id, actingUserID uint) (*T, error) {
	entity, err := g.load(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load %s %d: %w", g.kind, id, err)
	}
	if g.owner(entity) != actingUserID {
		return nil, fmt.Errorf("%s %d: %w", g.kind, id, apperrors.ErrForbidden)
	}
	return entity, nil
}
