package item

import (
	"github.com/Kir-Mi/shareit/internal/domain"
	"github.com/Kir-Mi/shareit/internal/domain/user"
)

// Item is the aggregate root for a shareable item. The owner is always
// attached; the originating item request, if any, is referenced by ID only.
type Item struct {
	id          int64
	name        string
	description string
	available   bool
	owner       *user.User
	requestID   *int64
}

// NewItem creates a new Item owned by the given user.
func NewItem(name, description string, available bool, owner *user.User, requestID *int64) (*Item, error) {
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}
	if owner == nil {
		return nil, domain.NewValidationError("item owner is required")
	}
	return &Item{
		name:        name,
		description: description,
		available:   available,
		owner:       owner,
		requestID:   requestID,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id int64, name, description string, available bool, owner *user.User, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		owner:       owner,
		requestID:   requestID,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() int64 { return i.id }

// Name returns the item name.
func (i *Item) Name() string { return i.name }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item can currently be booked.
func (i *Item) Available() bool { return i.available }

// Owner returns the owning user.
func (i *Item) Owner() *user.User { return i.owner }

// RequestID returns the originating item request ID, or nil.
func (i *Item) RequestID() *int64 { return i.requestID }

// IsOwnedBy reports whether the item belongs to the given user.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.owner != nil && i.owner.ID() == userID
}

// ApplyPatch applies a partial update; nil fields are left untouched.
func (i *Item) ApplyPatch(name, description *string, available *bool) {
	if name != nil {
		i.name = *name
	}
	if description != nil {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}
