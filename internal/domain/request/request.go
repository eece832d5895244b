package request

import (
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	"github.com/Kir-Mi/shareit/internal/domain/user"
)

// ItemRequest is an open request for an item posted by a user. Requests are
// immutable; items answering a request reference it by ID.
type ItemRequest struct {
	id        int64
	desc      string
	requestor *user.User
	created   time.Time
}

// NewItemRequest creates a new ItemRequest with a server-assigned creation time.
func NewItemRequest(description string, requestor *user.User) (*ItemRequest, error) {
	if description == "" {
		return nil, domain.NewValidationError("request description is required")
	}
	if requestor == nil {
		return nil, domain.NewValidationError("request requestor is required")
	}
	return &ItemRequest{
		desc:      description,
		requestor: requestor,
		created:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data.
func Reconstruct(id int64, description string, requestor *user.User, created time.Time) *ItemRequest {
	return &ItemRequest{id: id, desc: description, requestor: requestor, created: created}
}

// ID returns the request's unique identifier.
func (r *ItemRequest) ID() int64 { return r.id }

// Description returns the free-text description of the wanted item.
func (r *ItemRequest) Description() string { return r.desc }

// Requestor returns the user who posted the request.
func (r *ItemRequest) Requestor() *user.User { return r.requestor }

// Created returns the server-assigned creation timestamp.
func (r *ItemRequest) Created() time.Time { return r.created }
