package application

import (
	"context"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	requestDomain "github.com/Kir-Mi/shareit/internal/domain/request"
	userDomain "github.com/Kir-Mi/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// CreateItemRequestRequest holds the body of a new item request.
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestedItemDTO is the representation of an item answering a request.
type RequestedItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemRequestDTO is the response representation of an item request, including
// the items other users have listed in answer to it.
type ItemRequestDTO struct {
	ID          int64              `json:"id"`
	Description string             `json:"description"`
	Created     time.Time          `json:"created"`
	Items       []RequestedItemDTO `json:"items"`
}

// RequestService implements open item-request management.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{requests: requests, items: items, users: users, logger: logger}
}

// CreateRequest posts a new item request for the given user.
func (s *RequestService) CreateRequest(ctx context.Context, requestorID int64, req CreateItemRequestRequest) (*ItemRequestDTO, error) {
	requestor, err := s.users.FindByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	r, err := requestDomain.NewItemRequest(req.Description, requestor)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("item request created",
		zap.Int64("request_id", r.ID()),
		zap.Int64("requestor_id", requestorID),
	)
	items, err := s.items.FindByRequestID(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	result := toItemRequestDTO(r, items)
	return &result, nil
}

// GetRequestsOfUser returns the user's own requests, newest first, each with
// its answering items.
func (s *RequestService) GetRequestsOfUser(ctx context.Context, userID int64) ([]ItemRequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", userID)
	}

	requests, err := s.requests.FindByRequestorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// GetRequestsOfOthers returns a page of other users' requests, newest first.
func (s *RequestService) GetRequestsOfOthers(ctx context.Context, userID int64, from, size int) ([]ItemRequestDTO, error) {
	requests, err := s.requests.FindNotOfUser(ctx, userID, pageOffset(from, size), size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// GetRequestByID returns a single request with its answering items.
func (s *RequestService) GetRequestByID(ctx context.Context, requestID, userID int64) (*ItemRequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", userID)
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindByRequestID(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	result := toItemRequestDTO(r, items)
	return &result, nil
}

func (s *RequestService) attachItems(ctx context.Context, requests []*requestDomain.ItemRequest) ([]ItemRequestDTO, error) {
	requestIDs := make([]int64, len(requests))
	for i, r := range requests {
		requestIDs[i] = r.ID()
	}
	itemsByRequest, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemRequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toItemRequestDTO(r, itemsByRequest[r.ID()])
	}
	return dtos, nil
}

func toItemRequestDTO(r *requestDomain.ItemRequest, items []*itemDomain.Item) ItemRequestDTO {
	itemDTOs := make([]RequestedItemDTO, len(items))
	for i, it := range items {
		itemDTOs[i] = RequestedItemDTO{
			ID:          it.ID(),
			Name:        it.Name(),
			Description: it.Description(),
			Available:   it.Available(),
			OwnerID:     it.Owner().ID(),
			RequestID:   it.RequestID(),
		}
	}
	return ItemRequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.Created(),
		Items:       itemDTOs,
	}
}
