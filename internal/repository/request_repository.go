package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	requestDomain "github.com/Kir-Mi/shareit/internal/domain/request"
	"gorm.io/gorm"
)

// ItemRequestModel is the GORM model for the item_requests table.
type ItemRequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"not null;size:1000"`
	RequestorID int64     `gorm:"not null;index"`
	Created     time.Time `gorm:"not null;index"`

	Requestor UserModel `gorm:"foreignKey:RequestorID"`
}

// TableName returns the table name for the GORM model.
func (ItemRequestModel) TableName() string {
	return "item_requests"
}

// GormRequestRepository is the GORM-based implementation of request.Repository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID retrieves a request with its requestor attached.
func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	var model ItemRequestModel
	if err := r.db.WithContext(ctx).Preload("Requestor").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ItemRequest", id)
		}
		return nil, fmt.Errorf("failed to find request by ID: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindByRequestorID retrieves all requests of a user, newest first.
func (r *GormRequestRepository) FindByRequestorID(ctx context.Context, requestorID int64) ([]*requestDomain.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.db.WithContext(ctx).
		Preload("Requestor").
		Where("requestor_id = ?", requestorID).
		Order("created DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find requests by requestor: %w", err)
	}
	return toDomainRequests(models), nil
}

// FindNotOfUser retrieves a page of requests posted by other users, newest first.
func (r *GormRequestRepository) FindNotOfUser(ctx context.Context, userID int64, offset, limit int) ([]*requestDomain.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.db.WithContext(ctx).
		Preload("Requestor").
		Where("requestor_id <> ?", userID).
		Order("created DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find requests of other users: %w", err)
	}
	return toDomainRequests(models), nil
}

// Save persists a new request and assigns its ID.
func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	model := &ItemRequestModel{
		Description: req.Description(),
		RequestorID: req.Requestor().ID(),
		Created:     req.Created(),
	}
	if err := r.db.WithContext(ctx).Omit("Requestor").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	*req = *requestDomain.Reconstruct(model.ID, req.Description(), req.Requestor(), req.Created())
	return nil
}

func toDomainRequest(m *ItemRequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(m.ID, m.Description, toDomainUser(&m.Requestor), m.Created)
}

func toDomainRequests(models []ItemRequestModel) []*requestDomain.ItemRequest {
	requests := make([]*requestDomain.ItemRequest, len(models))
	for i := range models {
		requests[i] = toDomainRequest(&models[i])
	}
	return requests
}
