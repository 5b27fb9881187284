package list_available_rooms

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/internal/infra/cache"
)

// UseCase use case получения списка доступных комнат.
// Чистое чтение: каталог комнат плюс счётчики бронирований на дату и слот.
type UseCase struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	cache       Cache
	logger      Logger
}

// NewUseCase создает новый экземпляр use case (cache опционален: при nil без кеша)
func NewUseCase(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	respCache Cache,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cache:       respCache,
		logger:      logger,
	}
}

// Execute выполняет запрос доступности.
// Без фильтра возвращаются все активные комнаты. С фильтром комната
// попадает в ответ, если (shared и занято < вместимости) или
// (не shared и занято == 0).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	key := uc.cacheKey(req)

	if cached, ok := uc.cacheGet(ctx, key); ok {
		return cached, nil
	}

	rooms, err := uc.roomRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("ListAvailableRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	var counts map[int64]int
	if req.HasFilter() {
		counts, err = uc.bookingRepo.CountByDateSlot(ctx, *req.Date, *req.Slot)
		if err != nil {
			uc.logger.Error("ListAvailableRooms: failed to count bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
	}

	resp := &Response{Rooms: make([]Room, 0, len(rooms))}
	for _, room := range rooms {
		if req.HasFilter() && !isAvailable(room, counts[room.ID]) {
			continue
		}
		resp.Rooms = append(resp.Rooms, Room{
			ID:          room.ID,
			Name:        room.Name,
			Type:        string(room.Type),
			Capacity:    room.Capacity,
			Description: room.Description,
		})
	}

	if req.HasFilter() {
		uc.logger.Info("ListAvailableRooms: %d/%d rooms available for date=%s slot=%s",
			len(resp.Rooms), len(rooms), req.Date.Format(domain.DateFormat), *req.Slot)
	} else {
		uc.logger.Info("ListAvailableRooms: listed %d rooms without filter", len(resp.Rooms))
	}

	uc.cacheSet(ctx, key, resp)

	return resp, nil
}

// isAvailable применяет правило доступности для комнаты
func isAvailable(room *domain.Room, occupied int) bool {
	if room.IsShared() {
		return occupied < room.Capacity
	}
	return occupied == 0
}

func (uc *UseCase) cacheKey(req *Request) string {
	if !req.HasFilter() {
		return cache.KeyRooms
	}
	return cache.AvailabilityKey(*req.Date, *req.Slot)
}

func (uc *UseCase) cacheGet(ctx context.Context, key string) (*Response, bool) {
	if uc.cache == nil {
		return nil, false
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("ListAvailableRooms: corrupt cache entry %s: %v", key, err)
		return nil, false
	}

	return &resp, true
}

func (uc *UseCase) cacheSet(ctx context.Context, key string, resp *Response) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, data); err != nil {
		uc.logger.Warn("ListAvailableRooms: failed to cache %s: %v", key, err)
	}
}
