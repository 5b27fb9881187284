package list_available_rooms

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/internal/infra/cache"
	"github.com/deskhive/RoomBookingService/pkg/types"
)

type fakeRoomRepo struct {
	rooms []*domain.Room
	err   error
}

func (f *fakeRoomRepo) ListActive(_ context.Context) ([]*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rooms, nil
}

type fakeBookingRepo struct {
	counts map[int64]int
	calls  int
}

func (f *fakeBookingRepo) CountByDateSlot(_ context.Context, _ time.Time, _ types.TimeString) (map[int64]int, error) {
	f.calls++
	return f.counts, nil
}

// fakeCache кеш в памяти поверх map
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := f.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return data, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte) error {
	f.entries[key] = value
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRooms() []*domain.Room {
	return []*domain.Room{
		{ID: 1, Name: "Conference Room 1", Type: domain.RoomTypeConference, Capacity: 10},
		{ID: 2, Name: "Private Room 1", Type: domain.RoomTypePrivate, Capacity: 1},
		{ID: 3, Name: "Private Room 2", Type: domain.RoomTypePrivate, Capacity: 1},
		{ID: 4, Name: "Shared Desk 1", Type: domain.RoomTypeShared, Capacity: 4},
	}
}

func filteredRequest() *Request {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	slot := types.TimeString("10:00:00")
	return &Request{Date: &date, Slot: &slot}
}

func roomIDs(rooms []Room) []int64 {
	ids := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestExecute_NoFilterReturnsAllActive(t *testing.T) {
	bookings := &fakeBookingRepo{counts: map[int64]int{2: 1}}
	uc := NewUseCase(&fakeRoomRepo{rooms: testRooms()}, bookings, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, roomIDs(resp.Rooms))
	// Без фильтра занятость не запрашивается
	assert.Zero(t, bookings.calls)
}

func TestExecute_PartialFilterIgnored(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeRoomRepo{rooms: testRooms()}, &fakeBookingRepo{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: &date})

	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 4)
}

func TestExecute_FilterExcludesOccupiedAndFull(t *testing.T) {
	// Занято: private 2 (эксклюзив), conference 1 (эксклюзив),
	// shared 4 заполнен до вместимости
	bookings := &fakeBookingRepo{counts: map[int64]int{1: 1, 2: 1, 4: 4}}
	uc := NewUseCase(&fakeRoomRepo{rooms: testRooms()}, bookings, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), filteredRequest())

	require.NoError(t, err)
	assert.Equal(t, []int64{3}, roomIDs(resp.Rooms))
}

func TestExecute_SharedBelowCapacityIsAvailable(t *testing.T) {
	bookings := &fakeBookingRepo{counts: map[int64]int{4: 3}}
	uc := NewUseCase(&fakeRoomRepo{rooms: testRooms()}, bookings, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), filteredRequest())

	require.NoError(t, err)
	assert.Contains(t, roomIDs(resp.Rooms), int64(4))
}

func TestExecute_ResponseShape(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{rooms: []*domain.Room{
		{ID: 7, Name: "Shared Desk 9", Type: domain.RoomTypeShared, Capacity: 4, Description: "Open space"},
	}}, &fakeBookingRepo{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)

	data, err := json.Marshal(resp.Rooms[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"Shared Desk 9","type":"shared","capacity":4,"description":"Open space"}`, string(data))
}

func TestExecute_CachesFilteredResponse(t *testing.T) {
	respCache := newFakeCache()
	bookings := &fakeBookingRepo{counts: map[int64]int{}}
	uc := NewUseCase(&fakeRoomRepo{rooms: testRooms()}, bookings, respCache, nopLogger{})

	_, err := uc.Execute(context.Background(), filteredRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, bookings.calls)

	// Повторный запрос обслуживается из кеша
	resp, err := uc.Execute(context.Background(), filteredRequest())
	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 4)
	assert.Equal(t, 1, bookings.calls)

	assert.Contains(t, respCache.entries, cache.AvailabilityKey(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "10:00:00"))
}

func TestExecute_CorruptCacheEntryIsIgnored(t *testing.T) {
	respCache := newFakeCache()
	respCache.entries[cache.KeyRooms] = []byte("{not json")

	uc := NewUseCase(&fakeRoomRepo{rooms: testRooms()}, &fakeBookingRepo{}, respCache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 4)
}

func TestExecute_RepoError(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{err: errors.New("boom")}, &fakeBookingRepo{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
}
