package application

import (
	"context"
	"strings"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	userDomain "github.com/Kir-Mi/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest is a partial item update; nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingRefDTO is the short booking reference used in item annotations.
type BookingRefDTO struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are populated only for the owner's view.
type ItemDTO struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	OwnerID     int64          `json:"ownerId"`
	RequestID   *int64         `json:"requestId,omitempty"`
	LastBooking *BookingRefDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingRefDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO   `json:"comments"`
}

// ItemService implements item listing, updates, search and the owner's
// booking annotations.
type ItemService struct {
	items    itemDomain.Repository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	comments *CommentService
	logger   *zap.Logger
	now      func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	comments *CommentService,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateItem lists a new item for the given owner, optionally in answer to an
// item request.
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	it, err := itemDomain.NewItem(req.Name, req.Description, available, owner, req.RequestID)
	if err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.Int64("item_id", it.ID()),
		zap.Int64("owner_id", ownerID),
	)
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update to an item. Only the owner may update;
// other users get Forbidden.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", userID)
	}
	if !it.IsOwnedBy(userID) {
		return nil, domain.NewForbiddenError("item does not belong to this user")
	}

	it.ApplyPatch(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	return &result, nil
}

// GetItemByID returns an item with its comments. When the viewer is the
// owner, the last and next booking annotations are attached as well.
func (s *ItemService) GetItemByID(ctx context.Context, viewerID, itemID int64) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(it)
	comments, err := s.comments.GetCommentsOfItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	dto.Comments = comments

	if it.IsOwnedBy(viewerID) {
		bookings, err := s.bookings.ListByItemID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		annotateBookings(&dto, bookings, s.now())
	}
	return &dto, nil
}

// GetItemsByOwner returns a page of the owner's items, each with comments and
// booking annotations.
func (s *ItemService) GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemDTO, error) {
	items, err := s.items.FindByOwnerID(ctx, ownerID, pageOffset(from, size), size)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID()
	}
	commentsByItem, err := s.comments.GetItemIDToComments(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookingsByItem, err := s.bookings.ListByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dto := toItemDTO(it)
		if comments, ok := commentsByItem[it.ID()]; ok {
			dto.Comments = comments
		}
		annotateBookings(&dto, bookingsByItem[it.ID()], now)
		dtos[i] = dto
	}
	return dtos, nil
}

// SearchItems returns a page of available items matching the text. Blank text
// matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}
	items, err := s.items.Search(ctx, text, pageOffset(from, size), size)
	if err != nil {
		return nil, err
	}
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

// annotateBookings sets the owner-view lastBooking and nextBooking references.
// Next is the earliest upcoming WAITING or APPROVED booking; last is the
// latest APPROVED booking that has finished or is currently running.
func annotateBookings(dto *ItemDTO, bookings []*bookingDomain.Booking, now time.Time) {
	var next, last *bookingDomain.Booking
	for _, b := range bookings {
		if b.Start().After(now) &&
			(b.Status() == bookingDomain.StatusWaiting || b.Status() == bookingDomain.StatusApproved) {
			if next == nil || b.Start().Before(next.Start()) {
				next = b
			}
		}
		if b.Status() == bookingDomain.StatusApproved &&
			(b.End().Before(now) || (b.Start().Before(now) && b.End().After(now))) {
			if last == nil || b.Start().After(last.Start()) {
				last = b
			}
		}
	}
	if next != nil {
		dto.NextBooking = &BookingRefDTO{ID: next.ID(), BookerID: next.Booker().ID()}
	}
	if last != nil {
		dto.LastBooking = &BookingRefDTO{ID: last.ID(), BookerID: last.Booker().ID()}
	}
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		OwnerID:     it.Owner().ID(),
		RequestID:   it.RequestID(),
		Comments:    []CommentDTO{},
	}
}
