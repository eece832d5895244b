package item

import "context"

// Repository defines the persistence contract for items. Items are loaded
// with their owner attached; "fetched" queries are explicit contracts, not a
// side effect of object navigation.
type Repository interface {
	// FindByID retrieves an item with its owner attached.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByOwnerID retrieves a page of items owned by the given user,
	// ordered by ID ascending.
	FindByOwnerID(ctx context.Context, ownerID int64, offset, limit int) ([]*Item, error)

	// FindByRequestID retrieves items created in answer to the given request.
	FindByRequestID(ctx context.Context, requestID int64) ([]*Item, error)

	// FindByRequestIDs retrieves items answering any of the given requests,
	// keyed by request ID.
	FindByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]*Item, error)

	// Search retrieves a page of available items whose name or description
	// matches the text, case-insensitively.
	Search(ctx context.Context, text string, offset, limit int) ([]*Item, error)

	// Save persists a new item and assigns its ID.
	Save(ctx context.Context, i *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// Save persists a new comment and assigns its ID.
	Save(ctx context.Context, c *Comment) error

	// FindByItemID retrieves all comments on an item, with authors attached.
	FindByItemID(ctx context.Context, itemID int64) ([]*Comment, error)

	// FindByItemIDs retrieves comments on any of the given items, keyed by item ID.
	FindByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*Comment, error)
}
