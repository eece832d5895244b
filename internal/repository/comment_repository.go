package repository

import (
	"context"
	"fmt"
	"time"

	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Text     string    `gorm:"not null;size:2000"`
	ItemID   int64     `gorm:"not null;index"`
	AuthorID int64     `gorm:"not null;index"`
	Created  time.Time `gorm:"not null"`

	Author UserModel `gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of item.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment and assigns its ID.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	model := &CommentModel{
		Text:     c.Text(),
		ItemID:   c.ItemID(),
		AuthorID: c.Author().ID(),
		Created:  c.Created(),
	}
	if err := r.db.WithContext(ctx).Omit("Author").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	*c = *itemDomain.ReconstructComment(model.ID, c.Text(), c.ItemID(), c.Author(), c.Created())
	return nil
}

// FindByItemID retrieves all comments on an item, with authors attached.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id = ?", itemID).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by item: %w", err)
	}
	return toDomainComments(models), nil
}

// FindByItemIDs retrieves comments on any of the given items, keyed by item ID.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*itemDomain.Comment, error) {
	result := make(map[int64][]*itemDomain.Comment)
	if len(itemIDs) == 0 {
		return result, nil
	}
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by items: %w", err)
	}
	for i := range models {
		m := &models[i]
		result[m.ItemID] = append(result[m.ItemID], toDomainComment(m))
	}
	return result, nil
}

func toDomainComment(m *CommentModel) *itemDomain.Comment {
	return itemDomain.ReconstructComment(m.ID, m.Text, m.ItemID, toDomainUser(&m.Author), m.Created)
}

func toDomainComments(models []CommentModel) []*itemDomain.Comment {
	comments := make([]*itemDomain.Comment, len(models))
	for i := range models {
		comments[i] = toDomainComment(&models[i])
	}
	return comments
}
