//go:build unit

package booking_test

import (
	"testing"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusActive, actual.Status())
		assert.True(t, actual.IsActive())
	})

	t.Run("three days at 50 per day costs 150", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithPeriod(date(2026, 6, 1), date(2026, 6, 4)).
			WithDailyRate(50).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int32(150), actual.TotalPrice())
	})

	t.Run("single day rental", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithPeriod(date(2026, 6, 1), date(2026, 6, 2)).
			WithDailyRate(80).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int32(80), actual.TotalPrice())
	})

	t.Run("price is a snapshot independent of later rate changes", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().
			WithPeriod(date(2026, 6, 1), date(2026, 6, 3)).
			WithDailyRate(100).
			BuildDomain()
		require.NoError(t, err)

		// The entity holds a computed total, not a reference to the rate.
		assert.Equal(t, int32(200), b.TotalPrice())
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().
			WithPeriod(date(2026, 6, 1), date(2026, 6, 1)).
			BuildDomain()
		require.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().
			WithPeriod(date(2026, 6, 4), date(2026, 6, 1)).
			BuildDomain()
		require.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("non-positive rate is rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithDailyRate(0).BuildDomain()
		require.ErrorIs(t, err, booking.ErrNonPositivePrice)
	})
}

func TestBookingCancel(t *testing.T) {
	start := date(2026, 6, 1)
	end := date(2026, 6, 4)

	t.Run("cancel before start succeeds", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithPeriod(start, end).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Cancel(start.Add(-24*time.Hour)))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancel on the start date is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithPeriod(start, end).BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.Cancel(start), booking.ErrCancellationClosed)
		assert.Equal(t, booking.StatusActive, b.Status())
	})

	t.Run("cancel after start is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithPeriod(start, end).BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.Cancel(start.Add(time.Hour)), booking.ErrCancellationClosed)
	})

	t.Run("cancel a finalized booking is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithPeriod(start, end).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Return())
		require.ErrorIs(t, b.Cancel(start.Add(-24*time.Hour)), booking.ErrAlreadyFinalized)
		assert.Equal(t, booking.StatusReturned, b.Status())
	})
}

func TestBookingReturn(t *testing.T) {
	t.Run("return an active booking", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Return())
		assert.Equal(t, booking.StatusReturned, b.Status())
	})

	t.Run("return twice is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Return())
		require.ErrorIs(t, b.Return(), booking.ErrAlreadyFinalized)
	})

	t.Run("return a cancelled booking is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().
			WithPeriod(date(2026, 6, 1), date(2026, 6, 4)).
			BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Cancel(date(2026, 5, 1)))
		require.ErrorIs(t, b.Return(), booking.ErrAlreadyFinalized)
	})
}

func TestRentPeriod(t *testing.T) {
	t.Run("days is the ceiling of the calendar difference", func(t *testing.T) {
		cases := []struct {
			name  string
			start time.Time
			end   time.Time
			days  int32
		}{
			{"one day", date(2026, 6, 1), date(2026, 6, 2), 1},
			{"three days", date(2026, 6, 1), date(2026, 6, 4), 3},
			{"timestamps normalize to dates", time.Date(2026, 6, 1, 15, 30, 0, 0, time.UTC), time.Date(2026, 6, 4, 9, 0, 0, 0, time.UTC), 3},
			{"month boundary", date(2026, 6, 28), date(2026, 7, 2), 4},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				p, err := booking.NewRentPeriod(c.start, c.end)
				require.NoError(t, err)
				assert.Equal(t, c.days, p.Days())
			})
		}
	})

	t.Run("expiry is strict", func(t *testing.T) {
		p, err := booking.NewRentPeriod(date(2026, 6, 1), date(2026, 6, 4))
		require.NoError(t, err)

		assert.False(t, p.HasExpired(date(2026, 6, 4)))
		assert.True(t, p.HasExpired(date(2026, 6, 4).Add(time.Second)))
	})

	t.Run("endpoints are normalized to midnight UTC", func(t *testing.T) {
		p, err := booking.NewRentPeriod(
			time.Date(2026, 6, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 6, 4, 0, 1, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		assert.Equal(t, date(2026, 6, 1), p.Start())
		assert.Equal(t, date(2026, 6, 4), p.End())
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{"active to cancelled", booking.StatusActive, booking.StatusCancelled, true},
		{"active to returned", booking.StatusActive, booking.StatusReturned, true},
		{"active to active", booking.StatusActive, booking.StatusActive, false},
		{"cancelled to active", booking.StatusCancelled, booking.StatusActive, false},
		{"cancelled to returned", booking.StatusCancelled, booking.StatusReturned, false},
		{"returned to cancelled", booking.StatusReturned, booking.StatusCancelled, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to))
		})
	}
}

func TestNewStatus(t *testing.T) {
	for _, valid := range []string{"active", "cancelled", "returned"} {
		s, err := booking.NewStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, s.String())
	}

	_, err := booking.NewStatus("pending")
	require.ErrorIs(t, err, booking.ErrInvalidStatus)
}
