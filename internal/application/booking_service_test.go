package application

import (
	"context"
	"testing"
	"time"

	"github.com/Kir-Mi/shareit/internal/domain"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	itemDomain "github.com/Kir-Mi/shareit/internal/domain/item"
	userDomain "github.com/Kir-Mi/shareit/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

type bookingTestEnv struct {
	users    *fakeUserRepo
	items    *fakeItemRepo
	bookings *fakeBookingRepo
	service  *BookingService
	owner    *userDomain.User
	booker   *userDomain.User
	item     *itemDomain.Item
}

func newBookingTestEnv(t *testing.T) *bookingTestEnv {
	t.Helper()
	users := newFakeUserRepo()
	items := newFakeItemRepo()
	bookings := newFakeBookingRepo()

	service := NewBookingService(bookings, items, users, bookingDomain.NewValidator(users), nil, zap.NewNop())
	service.now = func() time.Time { return testNow }

	owner, err := userDomain.NewUser("Anna", "anna@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Save(context.Background(), owner))

	booker, err := userDomain.NewUser("Boris", "boris@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Save(context.Background(), booker))

	it, err := itemDomain.NewItem("drill", "cordless drill", true, owner, nil)
	require.NoError(t, err)
	require.NoError(t, items.Save(context.Background(), it))

	return &bookingTestEnv{
		users:    users,
		items:    items,
		bookings: bookings,
		service:  service,
		owner:    owner,
		booker:   booker,
		item:     it,
	}
}

func (e *bookingTestEnv) createBooking(t *testing.T, start, end time.Time) *BookingDTO {
	t.Helper()
	dto, err := e.service.CreateBooking(context.Background(), e.booker.ID(), CreateBookingRequest{
		ItemID: e.item.ID(),
		Start:  start,
		End:    end,
	})
	require.NoError(t, err)
	return dto
}

func TestCreateBooking(t *testing.T) {
	env := newBookingTestEnv(t)
	start := testNow.Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	t.Run("creates waiting booking", func(t *testing.T) {
		dto := env.createBooking(t, start, end)
		assert.Equal(t, "WAITING", dto.Status)
		assert.Equal(t, env.booker.ID(), dto.Booker.ID)
		assert.Equal(t, env.item.ID(), dto.Item.ID)
		assert.NotZero(t, dto.ID)
	})

	t.Run("rejects empty window", func(t *testing.T) {
		_, err := env.service.CreateBooking(context.Background(), env.booker.ID(), CreateBookingRequest{
			ItemID: env.item.ID(),
			Start:  start,
			End:    start,
		})
		require.Error(t, err)
		assert.True(t, domain.IsInvalidArgument(err))
	})

	t.Run("rejects unknown booker", func(t *testing.T) {
		_, err := env.service.CreateBooking(context.Background(), 999, CreateBookingRequest{
			ItemID: env.item.ID(),
			Start:  start,
			End:    end,
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		_, err := env.service.CreateBooking(context.Background(), env.booker.ID(), CreateBookingRequest{
			ItemID: 999,
			Start:  start,
			End:    end,
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("rejects unavailable item", func(t *testing.T) {
		unavailable, err := itemDomain.NewItem("saw", "table saw", false, env.owner, nil)
		require.NoError(t, err)
		require.NoError(t, env.items.Save(context.Background(), unavailable))

		_, err = env.service.CreateBooking(context.Background(), env.booker.ID(), CreateBookingRequest{
			ItemID: unavailable.ID(),
			Start:  start,
			End:    end,
		})
		require.Error(t, err)
		assert.True(t, domain.IsInvalidState(err))
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		_, err := env.service.CreateBooking(context.Background(), env.owner.ID(), CreateBookingRequest{
			ItemID: env.item.ID(),
			Start:  start,
			End:    end,
		})
		require.Error(t, err)
		// NotFound rather than Forbidden. The item is simply not bookable
		// from the owner's point of view.
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestSetApproval(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	t.Run("owner approves", func(t *testing.T) {
		env := newBookingTestEnv(t)
		created := env.createBooking(t, start, end)

		dto, err := env.service.SetApproval(context.Background(), env.owner.ID(), created.ID, true)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", dto.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		env := newBookingTestEnv(t)
		created := env.createBooking(t, start, end)

		dto, err := env.service.SetApproval(context.Background(), env.owner.ID(), created.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", dto.Status)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		env := newBookingTestEnv(t)
		created := env.createBooking(t, start, end)

		_, err := env.service.SetApproval(context.Background(), env.booker.ID(), created.ID, true)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("repeated approval fails", func(t *testing.T) {
		env := newBookingTestEnv(t)
		created := env.createBooking(t, start, end)

		_, err := env.service.SetApproval(context.Background(), env.owner.ID(), created.ID, true)
		require.NoError(t, err)

		_, err = env.service.SetApproval(context.Background(), env.owner.ID(), created.ID, true)
		require.Error(t, err)
		assert.True(t, domain.IsInvalidState(err))
	})

	t.Run("approved booking can still be rejected", func(t *testing.T) {
		env := newBookingTestEnv(t)
		created := env.createBooking(t, start, end)

		_, err := env.service.SetApproval(context.Background(), env.owner.ID(), created.ID, true)
		require.NoError(t, err)

		dto, err := env.service.SetApproval(context.Background(), env.owner.ID(), created.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", dto.Status)
	})

	t.Run("unknown booking fails", func(t *testing.T) {
		env := newBookingTestEnv(t)
		_, err := env.service.SetApproval(context.Background(), env.owner.ID(), 999, true)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestGetBookingByID(t *testing.T) {
	env := newBookingTestEnv(t)
	start := testNow.Add(24 * time.Hour)
	created := env.createBooking(t, start, start.Add(time.Hour))

	stranger, err := userDomain.NewUser("Clara", "clara@example.com")
	require.NoError(t, err)
	require.NoError(t, env.users.Save(context.Background(), stranger))

	for _, viewerID := range []int64{env.booker.ID(), env.owner.ID()} {
		dto, err := env.service.GetBookingByID(context.Background(), created.ID, viewerID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, dto.ID)
	}

	_, err = env.service.GetBookingByID(context.Background(), created.ID, stranger.ID())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestListBookingsForUser(t *testing.T) {
	env := newBookingTestEnv(t)

	// Past approved, current approved, future waiting and future rejected.
	past := env.createBooking(t, testNow.Add(-72*time.Hour), testNow.Add(-48*time.Hour))
	current := env.createBooking(t, testNow.Add(-time.Hour), testNow.Add(time.Hour))
	future := env.createBooking(t, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
	rejected := env.createBooking(t, testNow.Add(72*time.Hour), testNow.Add(96*time.Hour))

	for _, id := range []int64{past.ID, current.ID} {
		_, err := env.service.SetApproval(context.Background(), env.owner.ID(), id, true)
		require.NoError(t, err)
	}
	_, err := env.service.SetApproval(context.Background(), env.owner.ID(), rejected.ID, false)
	require.NoError(t, err)

	list := func(role bookingDomain.Role, filter bookingDomain.StateFilter) []int64 {
		dtos, err := env.service.ListBookingsForUser(context.Background(), subjectFor(env, role), role, filter, 0, 10)
		require.NoError(t, err)
		ids := make([]int64, len(dtos))
		for i, d := range dtos {
			ids[i] = d.ID
		}
		return ids
	}

	// ALL is ordered by start descending.
	assert.Equal(t, []int64{rejected.ID, future.ID, current.ID, past.ID}, list(bookingDomain.RoleBooker, bookingDomain.FilterAll))
	assert.Equal(t, []int64{current.ID}, list(bookingDomain.RoleBooker, bookingDomain.FilterCurrent))
	assert.Equal(t, []int64{past.ID}, list(bookingDomain.RoleBooker, bookingDomain.FilterPast))
	assert.Equal(t, []int64{rejected.ID, future.ID}, list(bookingDomain.RoleBooker, bookingDomain.FilterFuture))
	assert.Equal(t, []int64{future.ID}, list(bookingDomain.RoleBooker, bookingDomain.FilterWaiting))
	assert.Equal(t, []int64{rejected.ID}, list(bookingDomain.RoleBooker, bookingDomain.FilterRejected))

	// The owner sees the same set from the other side.
	assert.Equal(t, []int64{rejected.ID, future.ID, current.ID, past.ID}, list(bookingDomain.RoleOwner, bookingDomain.FilterAll))

	t.Run("unknown user fails", func(t *testing.T) {
		_, err := env.service.ListBookingsForUser(context.Background(), 999, bookingDomain.RoleBooker, bookingDomain.FilterAll, 0, 10)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("page offset is aligned to page boundary", func(t *testing.T) {
		dtos, err := env.service.ListBookingsForUser(context.Background(), env.booker.ID(), bookingDomain.RoleBooker, bookingDomain.FilterAll, 3, 2)
		require.NoError(t, err)
		// from=3 size=2 lands on page 1, rows 2..3.
		require.Len(t, dtos, 2)
		assert.Equal(t, current.ID, dtos[0].ID)
		assert.Equal(t, past.ID, dtos[1].ID)
	})
}

func subjectFor(env *bookingTestEnv, role bookingDomain.Role) int64 {
	if role == bookingDomain.RoleOwner {
		return env.owner.ID()
	}
	return env.booker.ID()
}
