package booking

import (
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	"github.com/Kir-Mi/shareit/internal/domain/item"
	"github.com/Kir-Mi/shareit/internal/domain/user"
)

// Booking is the aggregate root for a time-windowed reservation of an item.
// The window is half-open: [start, end). Item and booker are always attached
// when a booking is loaded from the store.
type Booking struct {
	id      int64
	start   time.Time
	end     time.Time
	status  Status
	item    *item.Item
	booker  *user.User
	version int64
}

// NewBooking creates a new Booking in WAITING state. The window must be
// strictly ordered: start < end (equality is rejected).
func NewBooking(start, end time.Time, it *item.Item, booker *user.User) (*Booking, error) {
	if !start.Before(end) {
		return nil, domain.NewValidationError("booking start must be strictly before end")
	}
	if it == nil {
		return nil, domain.NewValidationError("booking item is required")
	}
	if booker == nil {
		return nil, domain.NewValidationError("booking booker is required")
	}
	return &Booking{
		start:   start,
		end:     end,
		status:  StatusWaiting,
		item:    it,
		booker:  booker,
		version: 1,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id int64, start, end time.Time, status Status, it *item.Item, booker *user.User, version int64) *Booking {
	return &Booking{
		id:      id,
		start:   start,
		end:     end,
		status:  status,
		item:    it,
		booker:  booker,
		version: version,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() int64 { return b.id }

// Start returns the inclusive start of the booked window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the exclusive end of the booked window.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current decision state.
func (b *Booking) Status() Status { return b.status }

// Item returns the booked item with its owner attached.
func (b *Booking) Item() *item.Item { return b.item }

// Booker returns the user who created the booking.
func (b *Booking) Booker() *user.User { return b.booker }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// Approve marks the booking APPROVED. The caller must have run the validator
// checks first; Approve itself does not re-check them.
func (b *Booking) Approve() {
	b.status = StatusApproved
	b.version++
}

// Reject marks the booking REJECTED. The caller must have run the validator
// checks first; Reject itself does not re-check them.
func (b *Booking) Reject() {
	b.status = StatusRejected
	b.version++
}

// IsViewableBy reports whether the user participates in the booking, either
// as the booker or as the owner of the booked item.
func (b *Booking) IsViewableBy(userID int64) bool {
	return b.booker.ID() == userID || b.item.Owner().ID() == userID
}
