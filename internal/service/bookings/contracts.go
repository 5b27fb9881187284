package bookings

import (
	"context"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/internal/queue"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.BookingWithRoom, error)
	Delete(ctx context.Context, id int64) error
}

// RoomRepository интерфейс каталога комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// EventPublisher интерфейс публикации событий бронирования (best-effort)
type EventPublisher interface {
	PublishBookingCancelled(ctx context.Context, event queue.BookingCancelledEvent) error
}

// AvailabilityCache интерфейс инвалидации кеша доступности
type AvailabilityCache interface {
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
