package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/internal/infra/cache"
	bookingRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/room"
	rosterClient "github.com/deskhive/RoomBookingService/internal/integrations/rosterservice"
	"github.com/deskhive/RoomBookingService/internal/queue"
)

// UseCase use case создания бронирования (движок допуска).
// Проверка занятости и вставка выполняются одной сериализуемой транзакцией;
// уникальные индексы БД служат последним рубежом защиты от гонок.
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	rosterClient RosterServiceClient
	txManager    TransactionManager
	events       EventPublisher
	cache        AvailabilityCache
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// events и cache опциональны: при nil функциональность отключена.
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	rosterClient RosterServiceClient,
	txManager TransactionManager,
	events EventPublisher,
	availCache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		rosterClient: rosterClient,
		txManager:    txManager,
		events:       events,
		cache:        availCache,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Порядок проверок:
//  1. валидация входа;
//  2. комната и (для conference) команда вне транзакции: каталог комнат
//     read-mostly, а RosterService это внешний HTTP вызов, которому нечего
//     делать внутри сериализуемой транзакции;
//  3. в одной сериализуемой транзакции: глобальная проверка двойного
//     бронирования пользователя, затем правила конкретного типа комнаты,
//     затем вставка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, room=%d, date=%s, slot=%s",
		req.UserID, req.RoomID, req.Date.Format(domain.DateFormat), req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Для конференц-комнаты резолвим команду через RosterService
	// и проверяем минимальный размер состава
	var team *rosterClient.Team
	if room.Type == domain.RoomTypeConference {
		team, err = uc.resolveTeam(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 4. Проверка допуска и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Глобальное правило: у пользователя одно бронирование
		// на дату и слот, независимо от комнаты и её типа
		taken, err := uc.bookingRepo.ExistsUserSlot(txCtx, req.UserID, req.Date, req.Slot)
		if err != nil {
			uc.logger.Error("CreateBooking: user slot check failed: %v", err)
			return fmt.Errorf("%w: user slot check: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("CreateBooking: user=%d already booked date=%s slot=%s",
				req.UserID, req.Date.Format(domain.DateFormat), req.Slot)
			return ErrUserDoubleBooked
		}

		// 4.2. Правила допуска конкретного типа комнаты
		booking, err := uc.admit(txCtx, room, team, req)
		if err != nil {
			return err
		}

		// 4.3. Сохраняем бронирование. Нарушение уникального индекса
		// (гонка, проскочившая мимо проверок) транслируется в тот же отказ
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return uc.mapCreateError(err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Побочные эффекты после коммита: событие и инвалидация кеша.
	// Ошибки здесь не проваливают уже закоммиченное бронирование.
	uc.publishCreated(ctx, room, result)
	uc.invalidateAvailability(ctx, result)

	return &Response{
		BookingID: result.ID,
		RoomID:    result.RoomID,
		UserID:    result.UserID,
		TeamID:    result.TeamID,
		Date:      result.Date,
		Slot:      result.Slot,
		CreatedAt: result.CreatedAt,
	}, nil
}

// resolveTeam проверяет командные предпосылки конференц-бронирования
func (uc *UseCase) resolveTeam(ctx context.Context, req *Request) (*rosterClient.Team, error) {
	if req.TeamID == nil {
		uc.logger.Warn("CreateBooking: team required for conference room id=%d", req.RoomID)
		return nil, ErrTeamRequired
	}

	team, err := uc.rosterClient.GetTeam(ctx, *req.TeamID)
	if err != nil {
		if errors.Is(err, rosterClient.ErrTeamNotFound) {
			uc.logger.Warn("CreateBooking: team id=%d not found", *req.TeamID)
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("CreateBooking: failed to get team id=%d: %v", *req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}

	// Минимальный размер состава это фиксированная политика,
	// не зависящая от вместимости комнаты
	if team.MemberCount < domain.MinTeamSize {
		uc.logger.Warn("CreateBooking: team id=%d has %d members, need %d",
			team.ID, team.MemberCount, domain.MinTeamSize)
		return nil, ErrTeamTooSmall
	}

	return team, nil
}

// admit применяет правила допуска конкретного типа комнаты и собирает
// запись бронирования. Вызывается внутри сериализуемой транзакции.
func (uc *UseCase) admit(ctx context.Context, room *domain.Room, team *rosterClient.Team, req *Request) (*domain.Booking, error) {
	booking := &domain.Booking{
		RoomID: room.ID,
		UserID: req.UserID,
		Date:   req.Date,
		Slot:   req.Slot,

		// Для не-shared комнат уникальный индекс (room, date, slot)
		// действует только на exclusive-строки
		Exclusive: !room.IsShared(),
	}

	switch room.Type {
	case domain.RoomTypePrivate:
		// Ровно один занимающий на слот
		taken, err := uc.bookingRepo.ExistsRoomSlot(ctx, room.ID, req.Date, req.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: room slot check: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("CreateBooking: private room=%d taken date=%s slot=%s",
				room.ID, req.Date.Format(domain.DateFormat), req.Slot)
			return nil, ErrSlotUnavailable
		}
		return booking, nil

	case domain.RoomTypeConference:
		// Одна команда на слот в комнате и одно бронирование команды
		// на слот глобально
		taken, err := uc.bookingRepo.ExistsRoomSlot(ctx, room.ID, req.Date, req.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: room slot check: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("CreateBooking: conference room=%d taken date=%s slot=%s",
				room.ID, req.Date.Format(domain.DateFormat), req.Slot)
			return nil, ErrSlotUnavailable
		}

		teamTaken, err := uc.bookingRepo.ExistsTeamSlot(ctx, team.ID, req.Date, req.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: team slot check: %v", ErrInternal, err)
		}
		if teamTaken {
			uc.logger.Warn("CreateBooking: team=%d already booked date=%s slot=%s",
				team.ID, req.Date.Format(domain.DateFormat), req.Slot)
			return nil, ErrTeamDoubleBooked
		}

		booking.TeamID = &team.ID
		// Денормализуем имя команды, чтобы листинг не зависел от RosterService
		booking.TeamName = &team.Name
		return booking, nil

	case domain.RoomTypeShared:
		// Независимые занимающие до вместимости комнаты
		count, err := uc.bookingRepo.CountRoomSlot(ctx, room.ID, req.Date, req.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: room slot count: %v", ErrInternal, err)
		}
		if count >= room.Capacity {
			uc.logger.Warn("CreateBooking: shared room=%d full (%d/%d) date=%s slot=%s",
				room.ID, count, room.Capacity, req.Date.Format(domain.DateFormat), req.Slot)
			return nil, ErrSlotUnavailable
		}
		return booking, nil

	default:
		uc.logger.Warn("CreateBooking: room=%d has invalid type %q", room.ID, room.Type)
		return nil, ErrInvalidRoomType
	}
}

// mapCreateError переводит нарушение уникального индекса в бизнес-отказ.
// Прочие ошибки вставки считаются внутренними.
func (uc *UseCase) mapCreateError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrRoomSlotTaken):
		uc.logger.Warn("CreateBooking: lost room slot race: %v", err)
		return ErrSlotUnavailable
	case errors.Is(err, bookingRepo.ErrUserSlotTaken):
		uc.logger.Warn("CreateBooking: lost user slot race: %v", err)
		return ErrUserDoubleBooked
	case errors.Is(err, bookingRepo.ErrTeamSlotTaken):
		uc.logger.Warn("CreateBooking: lost team slot race: %v", err)
		return ErrTeamDoubleBooked
	default:
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}

// publishCreated публикует событие о созданном бронировании (best-effort)
func (uc *UseCase) publishCreated(ctx context.Context, room *domain.Room, b *domain.Booking) {
	if uc.events == nil {
		return
	}

	event := queue.BookingCreatedEvent{
		BookingID: b.ID,
		RoomID:    b.RoomID,
		RoomName:  room.Name,
		RoomType:  string(room.Type),
		UserID:    b.UserID,
		TeamID:    b.TeamID,
		TeamName:  b.TeamName,
		Date:      b.Date.Format(domain.DateFormat),
		Slot:      b.Slot.String(),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}

	if err := uc.events.PublishBookingCreated(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish booking.created for id=%d: %v", b.ID, err)
	}
}

// invalidateAvailability сбрасывает кеш доступности для даты и слота
func (uc *UseCase) invalidateAvailability(ctx context.Context, b *domain.Booking) {
	if uc.cache == nil {
		return
	}

	key := cache.AvailabilityKey(b.Date, b.Slot)
	if err := uc.cache.Delete(ctx, key); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate cache key %s: %v", key, err)
	}
}
