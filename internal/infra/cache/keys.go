package cache

import (
	"fmt"
	"time"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/pkg/types"
)

// KeyRooms ключ кеша для нефильтрованного списка комнат
const KeyRooms = "rooms:all"

// AvailabilityKey ключ кеша доступности для конкретной даты и слота.
// Создание и отмена бронирования инвалидируют ровно этот ключ.
func AvailabilityKey(date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("availability:%s:%s", date.Format(domain.DateFormat), slot)
}
