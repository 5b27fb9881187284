package list_available_rooms

import (
	"context"
	"time"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/pkg/types"
)

// RoomRepository интерфейс каталога комнат
type RoomRepository interface {
	ListActive(ctx context.Context) ([]*domain.Room, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByDateSlot(ctx context.Context, date time.Time, slot types.TimeString) (map[int64]int, error)
}

// Cache интерфейс кеша ответов (опционально)
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
