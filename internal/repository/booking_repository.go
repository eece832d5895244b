package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartDate time.Time `gorm:"column:start_date;not null;index"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	Status    string    `gorm:"not null;size:20;index"`
	ItemID    int64     `gorm:"not null;index"`
	BookerID  int64     `gorm:"not null;index"`
	Version   int64     `gorm:"not null;default:1"`

	Item   ItemModel `gorm:"foreignKey:ItemID"`
	Booker UserModel `gorm:"foreignKey:BookerID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking with its item (and the item's owner) and
// booker attached.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item.Owner").
		Preload("Booker").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// ListForSubject translates (subject, role, state filter, page) into a
// temporal predicate and returns the matching bookings ordered by start
// descending. The offset is page-aligned: floor(from/size)*size.
func (r *GormBookingRepository) ListForSubject(ctx context.Context, subjectID int64, role bookingDomain.Role, filter bookingDomain.StateFilter, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Preload("Item.Owner").
		Preload("Booker")

	switch role {
	case bookingDomain.RoleBooker:
		q = q.Where("bookings.booker_id = ?", subjectID)
	case bookingDomain.RoleOwner:
		q = q.Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", subjectID)
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("Unknown role: %s", role))
	}

	// Re-checked here even though StateFilter is enumerated: upstream layers
	// may pass an out-of-range sentinel through the API boundary.
	switch filter {
	case bookingDomain.FilterAll:
	case bookingDomain.FilterCurrent:
		q = q.Where("bookings.start_date <= ? AND bookings.end_date > ?", now, now)
	case bookingDomain.FilterPast:
		q = q.Where("bookings.end_date < ?", now)
	case bookingDomain.FilterFuture:
		q = q.Where("bookings.start_date > ?", now)
	case bookingDomain.FilterWaiting:
		q = q.Where("bookings.status = ?", string(bookingDomain.StatusWaiting))
	case bookingDomain.FilterRejected:
		q = q.Where("bookings.status = ?", string(bookingDomain.StatusRejected))
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("Unknown state: %s", filter))
	}

	var models []BookingModel
	if err := q.Order("bookings.start_date DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toDomainBookings(models)
}

// ListByItemID retrieves all bookings of an item, with bookers attached.
func (r *GormBookingRepository) ListByItemID(ctx context.Context, itemID int64) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item.Owner").
		Preload("Booker").
		Where("item_id = ?", itemID).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings by item: %w", err)
	}
	return toDomainBookings(models)
}

// ListByItemIDs retrieves bookings of any of the given items, keyed by item ID.
func (r *GormBookingRepository) ListByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*bookingDomain.Booking, error) {
	result := make(map[int64][]*bookingDomain.Booking)
	if len(itemIDs) == 0 {
		return result, nil
	}
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item.Owner").
		Preload("Booker").
		Where("item_id IN ?", itemIDs).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings by items: %w", err)
	}
	for i := range models {
		m := &models[i]
		bk, err := toDomainBooking(m)
		if err != nil {
			return nil, err
		}
		result[m.ItemID] = append(result[m.ItemID], bk)
	}
	return result, nil
}

// Save persists a new booking and assigns its ID.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit("Item", "Booker").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	*b = *bookingDomain.Reconstruct(model.ID, b.Start(), b.End(), b.Status(), b.Item(), b.Booker(), b.Version())
	return nil
}

// UpdateStatus persists a status transition as a version-conditional single-row
// update. Zero rows affected means a concurrent transition won the race.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, b *bookingDomain.Booking) error {
	expectedVersion := b.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", b.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":  string(b.Status()),
			"version": b.Version(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		StartDate: b.Start(),
		EndDate:   b.End(),
		Status:    string(b.Status()),
		ItemID:    b.Item().ID(),
		BookerID:  b.Booker().ID(),
		Version:   b.Version(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.StartDate,
		m.EndDate,
		status,
		toDomainItem(&m.Item),
		toDomainUser(&m.Booker),
		m.Version,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
