package application

import (
	"context"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	userDomain "github.com/Kir-Mi/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// CreateCommentRequest holds the body of a new item comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// CommentService manages item comments. A comment may only be written by a
// user whose approved booking of the item has already ended.
type CommentService struct {
	comments itemDomain.CommentRepository
	items    itemDomain.Repository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments itemDomain.CommentRepository,
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		items:    items,
		users:    users,
		bookings: bookings,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateComment saves a comment on an item after checking the author has a
// completed, approved booking of it.
func (s *CommentService) CreateComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !hasCompletedBooking(bookings, authorID, s.now()) {
		return nil, domain.NewValidationError("user has no completed booking of this item")
	}

	comment, err := itemDomain.NewComment(req.Text, itemID, author)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		zap.Int64("comment_id", comment.ID()),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", authorID),
	)
	result := toCommentDTO(comment)
	return &result, nil
}

// GetCommentsOfItem returns all comments on an item.
func (s *CommentService) GetCommentsOfItem(ctx context.Context, itemID int64) ([]CommentDTO, error) {
	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}

// GetItemIDToComments returns the comments of each of the given items.
func (s *CommentService) GetItemIDToComments(ctx context.Context, itemIDs []int64) (map[int64][]CommentDTO, error) {
	byItem, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[int64][]CommentDTO, len(byItem))
	for id, comments := range byItem {
		result[id] = toCommentDTOs(comments)
	}
	return result, nil
}

// hasCompletedBooking reports whether the user has an APPROVED booking of the
// item that ended strictly before now.
func hasCompletedBooking(bookings []*bookingDomain.Booking, userID int64, now time.Time) bool {
	for _, b := range bookings {
		if b.Booker().ID() == userID &&
			b.Status() == bookingDomain.StatusApproved &&
			b.End().Before(now) {
			return true
		}
	}
	return false
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.Author().Name(),
		Created:    c.Created(),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
