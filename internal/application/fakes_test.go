package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	requestDomain "github.com/Kir-Mi/shareit/internal/domain/request"
	userDomain "github.com/Kir-Mi/shareit/internal/domain/user"
)

// In-memory repository fakes. They mirror the query contracts of the GORM
// implementations closely enough for service-level tests, including the
// error kinds the services branch on.

type fakeUserRepo struct {
	seq   int64
	users map[int64]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*userDomain.User)}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*userDomain.User, error) {
	users := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID() < users[j].ID() })
	return users, nil
}

func (r *fakeUserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, u *userDomain.User) error {
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email already exists")
		}
	}
	r.seq++
	*u = *userDomain.Reconstruct(r.seq, u.Name(), u.Email())
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	for id, existing := range r.users {
		if id != u.ID() && existing.Email() == u.Email() {
			return domain.NewConflictError("email already exists")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFoundError("User", id)
	}
	delete(r.users, id)
	return nil
}

type fakeItemRepo struct {
	seq   int64
	items map[int64]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*itemDomain.Item)}
}

func (r *fakeItemRepo) FindByID(ctx context.Context, id int64) (*itemDomain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id)
	}
	return it, nil
}

func (r *fakeItemRepo) FindByOwnerID(ctx context.Context, ownerID int64, offset, limit int) ([]*itemDomain.Item, error) {
	var items []*itemDomain.Item
	for _, it := range r.items {
		if it.Owner().ID() == ownerID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })
	return paginate(items, offset, limit), nil
}

func (r *fakeItemRepo) FindByRequestID(ctx context.Context, requestID int64) ([]*itemDomain.Item, error) {
	var items []*itemDomain.Item
	for _, it := range r.items {
		if it.RequestID() != nil && *it.RequestID() == requestID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })
	return items, nil
}

func (r *fakeItemRepo) FindByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]*itemDomain.Item, error) {
	result := make(map[int64][]*itemDomain.Item)
	for _, id := range requestIDs {
		items, _ := r.FindByRequestID(ctx, id)
		if len(items) > 0 {
			result[id] = items
		}
	}
	return result, nil
}

func (r *fakeItemRepo) Search(ctx context.Context, text string, offset, limit int) ([]*itemDomain.Item, error) {
	needle := strings.ToLower(text)
	var items []*itemDomain.Item
	for _, it := range r.items {
		if !it.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name()), needle) ||
			strings.Contains(strings.ToLower(it.Description()), needle) {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })
	return paginate(items, offset, limit), nil
}

func (r *fakeItemRepo) Save(ctx context.Context, it *itemDomain.Item) error {
	r.seq++
	*it = *itemDomain.Reconstruct(r.seq, it.Name(), it.Description(), it.Available(), it.Owner(), it.RequestID())
	r.items[it.ID()] = it
	return nil
}

func (r *fakeItemRepo) Update(ctx context.Context, it *itemDomain.Item) error {
	r.items[it.ID()] = it
	return nil
}

type fakeBookingRepo struct {
	seq      int64
	bookings map[int64]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id)
	}
	return bookingDomain.Reconstruct(b.ID(), b.Start(), b.End(), b.Status(), b.Item(), b.Booker(), b.Version()), nil
}

func (r *fakeBookingRepo) ListForSubject(ctx context.Context, subjectID int64, role bookingDomain.Role, filter bookingDomain.StateFilter, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	var bookings []*bookingDomain.Booking
	for _, b := range r.bookings {
		switch role {
		case bookingDomain.RoleBooker:
			if b.Booker().ID() != subjectID {
				continue
			}
		case bookingDomain.RoleOwner:
			if b.Item().Owner().ID() != subjectID {
				continue
			}
		}
		if !matchesFilter(b, filter, now) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Start().After(bookings[j].Start()) })
	return paginate(bookings, page.Offset(), page.Size), nil
}

func matchesFilter(b *bookingDomain.Booking, filter bookingDomain.StateFilter, now time.Time) bool {
	switch filter {
	case bookingDomain.FilterCurrent:
		return !b.Start().After(now) && b.End().After(now)
	case bookingDomain.FilterPast:
		return b.End().Before(now)
	case bookingDomain.FilterFuture:
		return b.Start().After(now)
	case bookingDomain.FilterWaiting:
		return b.Status() == bookingDomain.StatusWaiting
	case bookingDomain.FilterRejected:
		return b.Status() == bookingDomain.StatusRejected
	}
	return true
}

func (r *fakeBookingRepo) ListByItemID(ctx context.Context, itemID int64) ([]*bookingDomain.Booking, error) {
	var bookings []*bookingDomain.Booking
	for _, b := range r.bookings {
		if b.Item().ID() == itemID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID() < bookings[j].ID() })
	return bookings, nil
}

func (r *fakeBookingRepo) ListByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*bookingDomain.Booking, error) {
	result := make(map[int64][]*bookingDomain.Booking)
	for _, id := range itemIDs {
		bookings, _ := r.ListByItemID(ctx, id)
		if len(bookings) > 0 {
			result[id] = bookings
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) Save(ctx context.Context, b *bookingDomain.Booking) error {
	r.seq++
	*b = *bookingDomain.Reconstruct(r.seq, b.Start(), b.End(), b.Status(), b.Item(), b.Booker(), b.Version())
	r.bookings[b.ID()] = bookingDomain.Reconstruct(b.ID(), b.Start(), b.End(), b.Status(), b.Item(), b.Booker(), b.Version())
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, b *bookingDomain.Booking) error {
	stored, ok := r.bookings[b.ID()]
	if !ok || stored.Version() != b.Version()-1 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	r.bookings[b.ID()] = bookingDomain.Reconstruct(b.ID(), b.Start(), b.End(), b.Status(), b.Item(), b.Booker(), b.Version())
	return nil
}

type fakeCommentRepo struct {
	seq      int64
	comments map[int64]*itemDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*itemDomain.Comment)}
}

func (r *fakeCommentRepo) Save(ctx context.Context, c *itemDomain.Comment) error {
	r.seq++
	*c = *itemDomain.ReconstructComment(r.seq, c.Text(), c.ItemID(), c.Author(), c.Created())
	r.comments[c.ID()] = c
	return nil
}

func (r *fakeCommentRepo) FindByItemID(ctx context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	var comments []*itemDomain.Comment
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID() < comments[j].ID() })
	return comments, nil
}

func (r *fakeCommentRepo) FindByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*itemDomain.Comment, error) {
	result := make(map[int64][]*itemDomain.Comment)
	for _, id := range itemIDs {
		comments, _ := r.FindByItemID(ctx, id)
		if len(comments) > 0 {
			result[id] = comments
		}
	}
	return result, nil
}

type fakeRequestRepo struct {
	seq      int64
	requests map[int64]*requestDomain.ItemRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*requestDomain.ItemRequest)}
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("ItemRequest", id)
	}
	return req, nil
}

func (r *fakeRequestRepo) FindByRequestorID(ctx context.Context, requestorID int64) ([]*requestDomain.ItemRequest, error) {
	var requests []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if req.Requestor().ID() == requestorID {
			requests = append(requests, req)
		}
	}
	sortRequestsNewestFirst(requests)
	return requests, nil
}

func (r *fakeRequestRepo) FindNotOfUser(ctx context.Context, userID int64, offset, limit int) ([]*requestDomain.ItemRequest, error) {
	var requests []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if req.Requestor().ID() != userID {
			requests = append(requests, req)
		}
	}
	sortRequestsNewestFirst(requests)
	return paginate(requests, offset, limit), nil
}

func (r *fakeRequestRepo) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	r.seq++
	*req = *requestDomain.Reconstruct(r.seq, req.Description(), req.Requestor(), req.Created())
	r.requests[req.ID()] = req
	return nil
}

func sortRequestsNewestFirst(requests []*requestDomain.ItemRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].Created().Equal(requests[j].Created()) {
			return requests[i].ID() > requests[j].ID()
		}
		return requests[i].Created().After(requests[j].Created())
	})
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
