package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrRoomSlotTaken возвращается при нарушении уникальности
	// (room, date, slot): комната уже занята в этом слоте
	ErrRoomSlotTaken = errors.New("booking.repository: room already booked for this slot")

	// ErrUserSlotTaken возвращается при нарушении уникальности
	// (user, date, slot): у пользователя уже есть бронирование в этом слоте
	ErrUserSlotTaken = errors.New("booking.repository: user already has a booking for this slot")

	// ErrTeamSlotTaken возвращается при нарушении уникальности
	// (team, date, slot): у команды уже есть бронирование в этом слоте
	ErrTeamSlotTaken = errors.New("booking.repository: team already has a booking for this slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
