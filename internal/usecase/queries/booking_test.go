//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/usecase/queries"
	"gearshare/tests/common/builder"
	queriesmock "gearshare/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBookingQueries(t *testing.T, now time.Time) (queries.BookingQueries, *queriesmock.MockBookingReadStore, *queriesmock.MockUserReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	bookings := queriesmock.NewMockBookingReadStore(ctrl)
	users := queriesmock.NewMockUserReadStore(ctrl)
	return queries.NewBookingQueries(bookings, users, clock.NewMockClock(now)), bookings, users
}

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("booker can fetch own booking", func(t *testing.T) {
		view := builder.NewBookingBuilder().BuildView()
		q, bookings, _ := newBookingQueries(t, time.Now())
		bookings.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		actual, err := q.GetByID(ctx, view.Booker.ID, view.ID)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(view, actual))
	})

	t.Run("item owner can fetch the booking", func(t *testing.T) {
		view := builder.NewBookingBuilder().BuildView()
		q, bookings, _ := newBookingQueries(t, time.Now())
		bookings.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		actual, err := q.GetByID(ctx, view.Item.OwnerID, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, actual.ID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		view := builder.NewBookingBuilder().BuildView()
		q, bookings, _ := newBookingQueries(t, time.Now())
		bookings.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		actual, err := q.GetByID(ctx, uuid.New(), view.ID)
		require.ErrorIs(t, err, queries.ErrNoAccess)
		assert.Nil(t, actual)
	})

	t.Run("missing booking", func(t *testing.T) {
		id := uuid.New()
		q, bookings, _ := newBookingQueries(t, time.Now())
		bookings.EXPECT().FindByID(ctx, id).
			Return(nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := q.GetByID(ctx, uuid.New(), id)
		require.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestBookingQueries_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("passes clock instant and page window to the store", func(t *testing.T) {
		bookerID := uuid.New()
		views := []*queries.BookingView{builder.NewBookingBuilder().BuildView()}
		q, bookings, users := newBookingQueries(t, now)

		users.EXPECT().FindByID(ctx, bookerID).Return(builder.NewUserBuilder().BuildView(), nil)
		page, err := queries.NewPage(5, 2)
		require.NoError(t, err)
		bookings.EXPECT().ListByBooker(ctx, bookerID, queries.BookingFilter{
			State:  queries.StateCurrent,
			Now:    now,
			Limit:  2,
			Offset: 4,
		}).Return(views, nil)

		actual, err := q.ListForBooker(ctx, bookerID, queries.StateCurrent, page)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(views, actual))
	})

	t.Run("owner listing goes through the owner finder", func(t *testing.T) {
		ownerID := uuid.New()
		q, bookings, users := newBookingQueries(t, now)

		users.EXPECT().FindByID(ctx, ownerID).Return(builder.NewUserBuilder().BuildView(), nil)
		page, err := queries.NewPage(0, 10)
		require.NoError(t, err)
		bookings.EXPECT().ListByOwner(ctx, ownerID, gomock.Any()).Return([]*queries.BookingView{}, nil)

		actual, err := q.ListForOwner(ctx, ownerID, queries.StateAll, page)
		require.NoError(t, err)
		assert.Empty(t, actual)
	})

	t.Run("unknown subject user", func(t *testing.T) {
		bookerID := uuid.New()
		q, _, users := newBookingQueries(t, now)

		users.EXPECT().FindByID(ctx, bookerID).
			Return(nil, infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound))
		page, err := queries.NewPage(0, 10)
		require.NoError(t, err)

		_, err = q.ListForBooker(ctx, bookerID, queries.StateAll, page)
		require.ErrorIs(t, err, queries.ErrUserNotFound)
	})
}
