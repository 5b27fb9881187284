package create_booking

import (
	"context"
	"time"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/internal/integrations/rosterservice"
	"github.com/deskhive/RoomBookingService/internal/queue"
	"github.com/deskhive/RoomBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsRoomSlot(ctx context.Context, roomID int64, date time.Time, slot types.TimeString) (bool, error)
	ExistsUserSlot(ctx context.Context, userID int64, date time.Time, slot types.TimeString) (bool, error)
	ExistsTeamSlot(ctx context.Context, teamID int64, date time.Time, slot types.TimeString) (bool, error)
	CountRoomSlot(ctx context.Context, roomID int64, date time.Time, slot types.TimeString) (int, error)
}

// RoomRepository интерфейс каталога комнат (read-only для движка)
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// RosterServiceClient интерфейс клиента для RosterService
type RosterServiceClient interface {
	GetTeam(ctx context.Context, teamID int64) (*rosterservice.Team, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирования (best-effort)
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error
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
