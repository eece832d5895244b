package booking

import (
	"context"
	"time"
)

// Page is a page-aligned pagination request. The stored from offset is
// rounded down to a page boundary implied by size: pageNumber = floor(from/size).
// Callers should treat from as a page-aligned offset, not an arbitrary cursor.
type Page struct {
	From int
	Size int
}

// Offset returns the effective row offset after page alignment.
func (p Page) Offset() int {
	return (p.From / p.Size) * p.Size
}

// Repository defines the persistence contract for bookings. Every load
// attaches the booked item (with owner) and the booker.
type Repository interface {
	// FindByID retrieves a booking with item and booker attached.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// ListForSubject retrieves a page of bookings where the subject is the
	// booker or the item owner (per role), narrowed by the state filter
	// evaluated against now, ordered by start descending. An out-of-range
	// filter fails with InvalidArgument even though the type is enumerated;
	// upstream layers may pass a sentinel through the API boundary.
	ListForSubject(ctx context.Context, subjectID int64, role Role, filter StateFilter, now time.Time, page Page) ([]*Booking, error)

	// ListByItemID retrieves all bookings of an item, with bookers attached.
	ListByItemID(ctx context.Context, itemID int64) ([]*Booking, error)

	// ListByItemIDs retrieves bookings of any of the given items, keyed by item ID.
	ListByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*Booking, error)

	// Save persists a new booking and assigns its ID.
	Save(ctx context.Context, b *Booking) error

	// UpdateStatus persists a status transition with optimistic locking,
	// failing with Conflict if the booking changed concurrently.
	UpdateStatus(ctx context.Context, b *Booking) error
}
