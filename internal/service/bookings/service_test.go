package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/internal/infra/cache"
	bookingRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/room"
	"github.com/deskhive/RoomBookingService/internal/queue"
	"github.com/deskhive/RoomBookingService/pkg/ptr"
	"github.com/deskhive/RoomBookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	byUser   []*domain.BookingWithRoom
	deleted  []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64) ([]*domain.BookingWithRoom, error) {
	return f.byUser, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

type fakePublisher struct {
	cancelled []queue.BookingCancelledEvent
	err       error
}

func (f *fakePublisher) PublishBookingCancelled(_ context.Context, event queue.BookingCancelledEvent) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, event)
	return nil
}

type fakeCache struct {
	deletedKeys []string
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.deletedKeys = append(f.deletedKeys, keys...)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:        1,
		RoomID:    5,
		UserID:    100,
		Exclusive: true,
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Slot:      "09:00:00",
		CreatedAt: time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	}
}

func testRoom() *domain.Room {
	return &domain.Room{ID: 5, Name: "Private Room 5", Type: domain.RoomTypePrivate, Capacity: 1}
}

func newTestService(repo *fakeBookingRepo, events *fakePublisher, availCache *fakeCache) *Service {
	var ev EventPublisher
	var ca AvailabilityCache
	if events != nil {
		ev = events
	}
	if availCache != nil {
		ca = availCache
	}
	return NewService(repo, &fakeRoomRepo{rooms: map[int64]*domain.Room{5: testRoom()}}, ev, ca, nopLogger{})
}

func TestGetByID_Success(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, nil, nil)

	resp, err := svc.GetByID(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2024-06-01", resp.Date)
	assert.Equal(t, "09:00:00", resp.Slot)
	require.NotNil(t, resp.Room)
	assert.Equal(t, "Private Room 5", resp.Room.Name)
	assert.Nil(t, resp.Team)
}

func TestGetByID_TeamBooking(t *testing.T) {
	b := testBooking()
	b.TeamID = ptr.Ptr(int64(10))
	b.TeamName = ptr.Ptr("Platform")
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, nil, nil)

	resp, err := svc.GetByID(context.Background(), 1, 100)

	require.NoError(t, err)
	require.NotNil(t, resp.Team)
	assert.Equal(t, int64(10), resp.Team.ID)
	assert.Equal(t, "Platform", resp.Team.Name)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{bookings: map[int64]*domain.Booking{}}, nil, nil)

	_, err := svc.GetByID(context.Background(), 1, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, nil, nil)

	_, err := svc.GetByID(context.Background(), 1, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_DeletedRoom(t *testing.T) {
	b := testBooking()
	b.RoomID = 0
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, nil, nil)

	resp, err := svc.GetByID(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Nil(t, resp.Room)
}

func TestGetUserBookings(t *testing.T) {
	withRoom := &domain.BookingWithRoom{Booking: *testBooking(), Room: testRoom()}
	orphan := &domain.BookingWithRoom{Booking: *testBooking()}
	orphan.ID = 2

	repo := &fakeBookingRepo{byUser: []*domain.BookingWithRoom{withRoom, orphan}}
	svc := newTestService(repo, nil, nil)

	resp, err := svc.GetUserBookings(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.NotNil(t, resp.Bookings[0].Room)
	assert.Nil(t, resp.Bookings[1].Room)
}

func TestCancel_Success(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	events := &fakePublisher{}
	availCache := &fakeCache{}
	svc := newTestService(repo, events, availCache)

	err := svc.Cancel(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)

	require.Len(t, events.cancelled, 1)
	assert.Equal(t, int64(1), events.cancelled[0].BookingID)
	assert.Equal(t, "2024-06-01", events.cancelled[0].Date)

	assert.Equal(t, []string{cache.AvailabilityKey(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), types.TimeString("09:00:00"))},
		availCache.deletedKeys)
}

func TestCancel_NonOwner(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, nil, nil)

	err := svc.Cancel(context.Background(), 1, 200)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestCancel_SecondCancelIsNotFound(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, nil, nil)

	require.NoError(t, svc.Cancel(context.Background(), 1, 100))

	err := svc.Cancel(context.Background(), 1, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_PublishFailureDoesNotFailCancel(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	events := &fakePublisher{err: errors.New("broker down")}
	svc := newTestService(repo, events, nil)

	err := svc.Cancel(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}
