package application

import (
	"context"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	userDomain "github.com/Kir-Mi/shareit/internal/domain/user"
	"github.com/Kir-Mi/shareit/internal/events"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookerDTO is the embedded booker representation of a booking response.
type BookerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookedItemDTO is the embedded item representation of a booking response.
type BookedItemDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status string        `json:"status"`
	Booker BookerDTO     `json:"booker"`
	Item   BookedItemDTO `json:"item"`
}

// BookingService orchestrates the booking lifecycle: creation, the approval
// decision and the windowed listings. All rule checks go through the
// validator; the service never bypasses it.
type BookingService struct {
	bookings  bookingDomain.Repository
	items     itemDomain.Repository
	users     userDomain.Repository
	validator *bookingDomain.Validator
	publisher *events.BookingPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	validator *bookingDomain.Validator,
	publisher *events.BookingPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		validator: validator,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking creates a new WAITING booking of an item for the given booker.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.Start.Before(req.End) {
		return nil, domain.NewValidationError("booking start must be strictly before end")
	}

	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(req.Start, req.End, it, booker)
	if err != nil {
		return nil, err
	}
	if err := s.validator.EnsureItemAvailable(bk); err != nil {
		return nil, err
	}
	if err := s.validator.EnsureBookerNotOwner(bookerID, bk); err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", bk.ID()),
		zap.Int64("item_id", it.ID()),
		zap.Int64("booker_id", bookerID),
	)
	s.publishLifecycle(ctx, events.BookingRequested, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// SetApproval decides a WAITING booking. Only the item owner may decide, and
// a decision cannot be repeated. The status write is version-conditional, so
// a concurrent decision surfaces as Conflict rather than a lost update.
func (s *BookingService) SetApproval(ctx context.Context, actorID, bookingID int64, approved bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.EnsureOwner(actorID, bk); err != nil {
		return nil, err
	}

	eventType := events.BookingRejected
	if approved {
		if err := s.validator.EnsureNotAlreadyApproved(bk); err != nil {
			return nil, err
		}
		bk.Approve()
		eventType = events.BookingApproved
	} else {
		if err := s.validator.EnsureNotAlreadyRejected(bk); err != nil {
			return nil, err
		}
		bk.Reject()
	}

	if err := s.bookings.UpdateStatus(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.Int64("booking_id", bk.ID()),
		zap.String("status", bk.Status().String()),
	)
	s.publishLifecycle(ctx, eventType, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingByID returns a booking to its booker or the item owner. Anyone
// else gets NotFound; the response does not disclose that the booking exists.
func (s *BookingService) GetBookingByID(ctx context.Context, bookingID, viewerID int64) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsViewableBy(viewerID) {
		return nil, domain.NewNotFoundError("Booking", bookingID)
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// ListBookingsForUser returns a page of the subject's bookings, scoped by
// role and state filter, ordered by start descending.
func (s *BookingService) ListBookingsForUser(ctx context.Context, subjectID int64, role bookingDomain.Role, filter bookingDomain.StateFilter, from, size int) ([]BookingDTO, error) {
	if err := s.validator.EnsureUserExists(ctx, subjectID); err != nil {
		return nil, err
	}

	page := bookingDomain.Page{From: from, Size: size}
	bookings, err := s.bookings.ListForSubject(ctx, subjectID, role, filter, s.now(), page)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

func (s *BookingService) publishLifecycle(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, eventType, events.BookingLifecycleEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.Item().ID(),
		BookerID:   bk.Booker().ID(),
		OwnerID:    bk.Item().Owner().ID(),
		Status:     bk.Status().String(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: s.now(),
	})
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: bk.Status().String(),
		Booker: BookerDTO{ID: bk.Booker().ID(), Name: bk.Booker().Name()},
		Item:   BookedItemDTO{ID: bk.Item().ID(), Name: bk.Item().Name()},
	}
}
