package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrTeamRequired возвращается, когда для конференц-комнаты не передана команда
	ErrTeamRequired = errors.New("create_booking: team required for conference room")

	// ErrTeamNotFound возвращается, когда команда не найдена в RosterService
	ErrTeamNotFound = errors.New("create_booking: team not found")

	// ErrTeamTooSmall возвращается, когда состав команды меньше минимального
	ErrTeamTooSmall = errors.New("create_booking: team has fewer members than required")

	// ErrSlotUnavailable возвращается, когда комната занята в выбранном слоте
	// (или для shared-комнаты исчерпана вместимость)
	ErrSlotUnavailable = errors.New("create_booking: no available room for the selected slot")

	// ErrUserDoubleBooked возвращается, когда у пользователя уже есть
	// бронирование в этом слоте (глобально, независимо от комнаты)
	ErrUserDoubleBooked = errors.New("create_booking: user already has a booking for this slot")

	// ErrTeamDoubleBooked возвращается, когда у команды уже есть
	// бронирование в этом слоте (глобально, независимо от комнаты)
	ErrTeamDoubleBooked = errors.New("create_booking: team already has a booking for this slot")

	// ErrInvalidRoomType возвращается при неизвестном типе комнаты
	ErrInvalidRoomType = errors.New("create_booking: invalid room type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
