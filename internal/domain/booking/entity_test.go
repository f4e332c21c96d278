//go:build unit

package booking_test

import (
	"testing"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusWaiting, actual.Status())
		assert.True(t, actual.Period().Start().Before(actual.Period().End()))
	})

	t.Run("period validation", func(t *testing.T) {
		now := time.Now().Truncate(time.Second)
		runCases(t, []testCase{
			{
				name:   "start strictly before end",
				mutate: func(b *builder.BookingBuilder) { b.WithPeriod(now, now.Add(time.Hour)) },
			},
			{
				name:   "one second window",
				mutate: func(b *builder.BookingBuilder) { b.WithPeriod(now, now.Add(time.Second)) },
			},
			{
				name:   "start equals end",
				mutate: func(b *builder.BookingBuilder) { b.WithPeriod(now, now) },
				errIs:  booking.ErrInvalidPeriod,
			},
			{
				name:   "start after end",
				mutate: func(b *builder.BookingBuilder) { b.WithPeriod(now.Add(time.Hour), now) },
				errIs:  booking.ErrInvalidPeriod,
			},
		})
	})

	t.Run("creation rules", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "owner booking own item",
				mutate: func(b *builder.BookingBuilder) {
					id := uuid.New()
					b.WithOwnerID(id).WithBookerID(id)
				},
				errIs: booking.ErrOwnItem,
			},
			{
				name:   "unavailable item",
				mutate: func(b *builder.BookingBuilder) { b.AsUnavailable() },
				errIs:  booking.ErrItemNotRented,
			},
		})
	})

	t.Run("decide", func(t *testing.T) {
		t.Run("approve waiting booking", func(t *testing.T) {
			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)

			require.NoError(t, b.Decide(true))
			assert.Equal(t, booking.StatusApproved, b.Status())
		})

		t.Run("reject waiting booking", func(t *testing.T) {
			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)

			require.NoError(t, b.Decide(false))
			assert.Equal(t, booking.StatusRejected, b.Status())
		})

		t.Run("approved booking is terminal", func(t *testing.T) {
			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)
			require.NoError(t, b.Decide(true))

			err = b.Decide(false)
			require.ErrorIs(t, err, booking.ErrAlreadyDecided)
			assert.Equal(t, booking.StatusApproved, b.Status())
		})

		t.Run("rejected booking is terminal", func(t *testing.T) {
			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)
			require.NoError(t, b.Decide(false))

			err = b.Decide(true)
			require.ErrorIs(t, err, booking.ErrAlreadyDecided)
			assert.Equal(t, booking.StatusRejected, b.Status())
		})
	})

	t.Run("period classification", func(t *testing.T) {
		now := time.Now()
		period, err := booking.NewPeriod(now.Add(-time.Hour), now.Add(time.Hour))
		require.NoError(t, err)

		assert.True(t, period.Contains(now))
		assert.True(t, period.Contains(period.Start()))
		assert.True(t, period.Contains(period.End()))
		assert.False(t, period.EndedBefore(now))
		assert.False(t, period.StartsAfter(now))

		past, err := booking.NewPeriod(now.Add(-2*time.Hour), now.Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, past.EndedBefore(now))
		assert.False(t, past.Contains(now))

		future, err := booking.NewPeriod(now.Add(time.Hour), now.Add(2*time.Hour))
		require.NoError(t, err)
		assert.True(t, future.StartsAfter(now))
		assert.False(t, future.Contains(now))
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewBookingBuilder()

		first, err1 := b.BuildDomain()
		second, err2 := b.BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
