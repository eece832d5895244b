package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kir-Mi/shareit/internal/domain"
	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	"gorm.io/gorm"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null;size:255"`
	Description string `gorm:"not null;size:1000"`
	Available   bool   `gorm:"not null"`
	OwnerID     int64  `gorm:"not null;index"`
	RequestID   *int64 `gorm:"index"`

	Owner UserModel `gorm:"foreignKey:OwnerID"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of item.Repository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID retrieves an item with its owner attached.
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Item", id)
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwnerID retrieves a page of items owned by the given user.
func (r *GormItemRepository) FindByOwnerID(ctx context.Context, ownerID int64, offset, limit int) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by owner: %w", err)
	}
	return toDomainItems(models), nil
}

// FindByRequestID retrieves items created in answer to the given request.
func (r *GormItemRepository) FindByRequestID(ctx context.Context, requestID int64) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("request_id = ?", requestID).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by request: %w", err)
	}
	return toDomainItems(models), nil
}

// FindByRequestIDs retrieves items answering any of the given requests, keyed
// by request ID.
func (r *GormItemRepository) FindByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]*itemDomain.Item, error) {
	result := make(map[int64][]*itemDomain.Item)
	if len(requestIDs) == 0 {
		return result, nil
	}
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("request_id IN ?", requestIDs).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by requests: %w", err)
	}
	for i := range models {
		m := &models[i]
		if m.RequestID == nil {
			continue
		}
		result[*m.RequestID] = append(result[*m.RequestID], toDomainItem(m))
	}
	return result, nil
}

// Search retrieves a page of available items whose name or description
// matches the text, case-insensitively.
func (r *GormItemRepository) Search(ctx context.Context, text string, offset, limit int) ([]*itemDomain.Item, error) {
	var models []ItemModel
	pattern := "%" + text + "%"
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("available = ?", true).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

// Save persists a new item and assigns its ID.
func (r *GormItemRepository) Save(ctx context.Context, i *itemDomain.Item) error {
	model := toItemModel(i)
	if err := r.db.WithContext(ctx).Omit("Owner").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	*i = *itemDomain.Reconstruct(model.ID, i.Name(), i.Description(), i.Available(), i.Owner(), i.RequestID())
	return nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, i *itemDomain.Item) error {
	model := toItemModel(i)
	if err := r.db.WithContext(ctx).Omit("Owner").Save(model).Error; err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

// --- Conversion helpers ---

func toItemModel(i *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          i.ID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		OwnerID:     i.Owner().ID(),
		RequestID:   i.RequestID(),
	}
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(m.ID, m.Name, m.Description, m.Available, toDomainUser(&m.Owner), m.RequestID)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i := range models {
		items[i] = toDomainItem(&models[i])
	}
	return items
}
