package booking

import (
	"context"
	"fmt"

	"github.com/Kir-Mi/shareit/internal/domain"
	"github.com/Kir-Mi/shareit/internal/domain/user"
)

// Validator bundles the stateless authorization and state checks over a
// loaded Booking. Each check either returns nil or fails with a specific
// error kind; none has side effects, so checks are safe to repeat.
//
// Ownership checks fail with NotFound rather than Forbidden on purpose: the
// existence of a booking is not disclosed to users outside of it.
type Validator struct {
	users user.Repository
}

// NewValidator creates a Validator backed by the given user repository.
func NewValidator(users user.Repository) *Validator {
	return &Validator{users: users}
}

// EnsureOwner fails with NotFound unless the actor owns the booked item.
func (v *Validator) EnsureOwner(actorID int64, b *Booking) error {
	if b.Item().Owner().ID() != actorID {
		return domain.NewNotFoundError("Booking", b.ID())
	}
	return nil
}

// EnsureItemAvailable fails with InvalidState if the booked item is not available.
func (v *Validator) EnsureItemAvailable(b *Booking) error {
	if !b.Item().Available() {
		return domain.NewInvalidStateError(fmt.Sprintf("item with ID=%d is not available", b.Item().ID()))
	}
	return nil
}

// EnsureUserExists fails with NotFound if no user with the given ID exists.
func (v *Validator) EnsureUserExists(ctx context.Context, userID int64) error {
	exists, err := v.users.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError("User", userID)
	}
	return nil
}

// EnsureBookerNotOwner fails with NotFound if the actor is booking their own
// item. NotFound keeps the response indistinguishable from a missing item.
func (v *Validator) EnsureBookerNotOwner(actorID int64, b *Booking) error {
	if b.Item().Owner().ID() == actorID {
		return domain.NewNotFoundError("Item", b.Item().ID())
	}
	return nil
}

// EnsureNotAlreadyApproved fails with InvalidState if the booking is already APPROVED.
func (v *Validator) EnsureNotAlreadyApproved(b *Booking) error {
	if b.Status() == StatusApproved {
		return domain.NewInvalidStateError("booking was already approved")
	}
	return nil
}

// EnsureNotAlreadyRejected fails with InvalidState if the booking is already REJECTED.
func (v *Validator) EnsureNotAlreadyRejected(b *Booking) error {
	if b.Status() == StatusRejected {
		return domain.NewInvalidStateError("booking was already rejected")
	}
	return nil
}
