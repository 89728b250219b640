package repository

import (
	"context"
	"testing"
	"time"

	bookingserrors "dealership/internal/bookings/errors"
	"dealership/pkg/model"
	"dealership/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func feb(d int) time.Time {
	return time.Date(2024, time.February, d, 0, 0, 0, 0, time.UTC)
}

func newTestRepo(t *testing.T) BookingRepository {
	t.Helper()
	return NewMemoryBookingRepository(store.New[*model.Booking]())
}

func mustCreate(t *testing.T, repo BookingRepository, carID int, start, end time.Time) *model.Booking {
	t.Helper()
	created, err := repo.Create(context.Background(), &model.Booking{
		CarID:         carID,
		CustomerName:  "John Doe",
		CustomerEmail: "john.doe@example.com",
		StartDatetime: start,
		EndDatetime:   end,
	})
	require.NoError(t, err)
	return created
}

func TestHasConflict_OverlapCases(t *testing.T) {
	tests := []struct {
		name         string
		start, end   time.Time
		wantConflict bool
	}{
		{"identical interval", day(15), day(20), true},
		{"fully inside", day(16), day(18), true},
		{"fully covering", day(10), day(25), true},
		{"overlapping start", day(10), day(16), true},
		{"overlapping end", day(19), day(25), true},
		{"before, touching start", day(10), day(15), false},
		{"after, touching end", day(20), day(25), false},
		{"disjoint before", day(1), day(5), false},
		{"disjoint after", day(25), day(28), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			mustCreate(t, repo, 1, day(15), day(20))

			conflict, err := repo.HasConflict(context.Background(), 1, tt.start, tt.end, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConflict, conflict)
		})
	}
}

func TestHasConflict_OtherCarDoesNotConflict(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, 1, day(15), day(20))

	conflict, err := repo.HasConflict(context.Background(), 2, day(15), day(20), 0)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_ExcludesGivenBooking(t *testing.T) {
	repo := newTestRepo(t)
	existing := mustCreate(t, repo, 1, day(15), day(20))

	conflict, err := repo.HasConflict(context.Background(), 1, day(16), day(19), existing.ID)
	require.NoError(t, err)
	assert.False(t, conflict, "a booking must not conflict with itself")
}

func TestHasConflict_ChecksEveryBooking(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, 1, day(1), day(3))
	mustCreate(t, repo, 1, day(5), day(7))
	last := mustCreate(t, repo, 1, day(25), day(28))

	conflict, err := repo.HasConflict(context.Background(), 1, last.StartDatetime, last.EndDatetime, 0)
	require.NoError(t, err)
	assert.True(t, conflict, "a conflict on the last booking must still be found")
}

func TestFindByCar(t *testing.T) {
	repo := newTestRepo(t)
	a := mustCreate(t, repo, 1, day(15), day(20))
	mustCreate(t, repo, 2, day(15), day(20))
	c := mustCreate(t, repo, 1, feb(1), feb(5))

	bookings, err := repo.FindByCar(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, a.ID, bookings[0].ID)
	assert.Equal(t, c.ID, bookings[1].ID)
}

func TestFindByRange_BothBoundsUseOverlap(t *testing.T) {
	repo := newTestRepo(t)
	a := mustCreate(t, repo, 1, day(15), day(20))
	mustCreate(t, repo, 1, feb(1), feb(5))
	c := mustCreate(t, repo, 1, day(18), day(22))

	start, end := day(16), day(21)
	bookings, err := repo.FindByRange(context.Background(), &start, &end)
	require.NoError(t, err)

	ids := collectIDs(bookings)
	assert.ElementsMatch(t, []int{a.ID, c.ID}, ids)
}

func TestFindByRange_StartOnlyFiltersByStart(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, 1, day(15), day(20))
	b := mustCreate(t, repo, 1, feb(1), feb(5))

	// Not an overlap filter: only bookings starting on or after the bound.
	start := feb(1)
	bookings, err := repo.FindByRange(context.Background(), &start, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{b.ID}, collectIDs(bookings))
}

func TestFindByRange_EndOnlyFiltersByEnd(t *testing.T) {
	repo := newTestRepo(t)
	a := mustCreate(t, repo, 1, day(15), day(20))
	mustCreate(t, repo, 1, feb(1), feb(5))

	end := day(25)
	bookings, err := repo.FindByRange(context.Background(), nil, &end)
	require.NoError(t, err)

	assert.Equal(t, []int{a.ID}, collectIDs(bookings))
}

func TestFindByRange_NoBoundsReturnsAll(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, 1, day(15), day(20))
	mustCreate(t, repo, 2, feb(1), feb(5))

	bookings, err := repo.FindByRange(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestFindByCarAndRange_IntersectsBothFilters(t *testing.T) {
	repo := newTestRepo(t)
	a := mustCreate(t, repo, 1, day(15), day(20))
	mustCreate(t, repo, 2, day(15), day(20))
	mustCreate(t, repo, 1, feb(1), feb(5))

	start, end := day(16), day(21)
	bookings, err := repo.FindByCarAndRange(context.Background(), 1, &start, &end)
	require.NoError(t, err)

	assert.Equal(t, []int{a.ID}, collectIDs(bookings))
}

func TestFindByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, 1, day(15), day(20))

	require.NoError(t, repo.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), created.ID), bookingserrors.ErrNotFound)
}

func TestDelete_FreesIntervalImmediately(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, 1, day(15), day(20))

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	conflict, err := repo.HasConflict(context.Background(), 1, day(15), day(20), 0)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func collectIDs(bookings []*model.Booking) []int {
	ids := make([]int, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.ID)
	}
	return ids
}
