package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/internal/infra/cache"
	bookingRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/room"
	"github.com/deskhive/RoomBookingService/internal/queue"
	"github.com/deskhive/RoomBookingService/internal/service/bookings/models"
)

// Service сервис чтения и отмены бронирований
type Service struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	events      EventPublisher
	cache       AvailabilityCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// events и cache опциональны: при nil функциональность отключена.
func NewService(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	events EventPublisher,
	availCache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		events:      events,
		cache:       availCache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только собственное бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getOwned(ctx, id, userID, "GetByID")
	if err != nil {
		return nil, err
	}

	// Комната могла быть удалена после бронирования, тогда ответ
	// без вложенного представления
	var room *domain.Room
	if booking.RoomID != 0 {
		room, err = s.roomRepo.GetByID(ctx, booking.RoomID)
		if err != nil && !errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Error("GetByID: failed to get room id=%d: %v", booking.RoomID, err)
			return nil, fmt.Errorf("%w: GetByID - failed to get room: %v", ErrInternal, err)
		}
	}

	return models.FromDomainBooking(booking, room), nil
}

// GetUserBookings получает список бронирований пользователя
// с вложенными представлениями комнат и команд
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	items, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(items), userID)
	return models.FromDomainBookingList(items), nil
}

// Cancel отменяет бронирование физическим удалением записи.
// Отменить бронирование может только его владелец; повторная отмена
// возвращает ErrBookingNotFound.
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, userID)

	booking, err := s.getOwned(ctx, id, userID, "Cancel")
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Гонка с параллельной отменой
			s.logger.Warn("Cancel: booking id=%d already deleted", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)

	// Побочные эффекты после удаления: событие и инвалидация кеша
	s.publishCancelled(ctx, booking)
	s.invalidateAvailability(ctx, booking)

	return nil
}

// getOwned получает бронирование и проверяет владение
func (s *Service) getOwned(ctx context.Context, id int64, userID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// publishCancelled публикует событие об отмене (best-effort)
func (s *Service) publishCancelled(ctx context.Context, b *domain.Booking) {
	if s.events == nil {
		return
	}

	event := queue.BookingCancelledEvent{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		UserID:      b.UserID,
		Date:        b.Date.Format(domain.DateFormat),
		Slot:        b.Slot.String(),
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.events.PublishBookingCancelled(ctx, event); err != nil {
		s.logger.Warn("Cancel: failed to publish booking.cancelled for id=%d: %v", b.ID, err)
	}
}

// invalidateAvailability сбрасывает кеш доступности для даты и слота
func (s *Service) invalidateAvailability(ctx context.Context, b *domain.Booking) {
	if s.cache == nil {
		return
	}

	key := cache.AvailabilityKey(b.Date, b.Slot)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("Cancel: failed to invalidate cache key %s: %v", key, err)
	}
}
