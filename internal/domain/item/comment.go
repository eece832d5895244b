package item

import (
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	"github.com/Kir-Mi/shareit/internal/domain/user"
)

// Comment is feedback left on an item by a user who completed an approved
// booking on it. Comments are immutable once created.
type Comment struct {
	id      int64
	text    string
	itemID  int64
	author  *user.User
	created time.Time
}

// NewComment creates a new Comment with a server-assigned creation time.
func NewComment(text string, itemID int64, author *user.User) (*Comment, error) {
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}
	return &Comment{
		text:    text,
		itemID:  itemID,
		author:  author,
		created: time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id int64, text string, itemID int64, author *user.User, created time.Time) *Comment {
	return &Comment{id: id, text: text, itemID: itemID, author: author, created: created}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() int64 { return c.id }

// Text returns the comment text.
func (c *Comment) Text() string { return c.text }

// ItemID returns the commented item's ID.
func (c *Comment) ItemID() int64 { return c.itemID }

// Author returns the authoring user.
func (c *Comment) Author() *user.User { return c.author }

// Created returns the server-assigned creation timestamp.
func (c *Comment) Created() time.Time { return c.created }
