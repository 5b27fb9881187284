package create_booking

import (
	"time"

	"github.com/deskhive/RoomBookingService/pkg/types"
)

// Request модель запроса на создание бронирования.
// Date и Slot уже прошли валидацию календаря слотов на границе API.
type Request struct {
	UserID int64            // ID пользователя-инициатора
	RoomID int64            // ID комнаты
	TeamID *int64           // ID команды (обязателен только для conference)
	Date   time.Time        // Дата бронирования (без времени)
	Slot   types.TimeString // Слот из фиксированной сетки

	// MemberIDs принимаются на входе, но в правилах допуска не участвуют
	MemberIDs []int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID int64            // ID созданного бронирования
	RoomID    int64            // ID комнаты
	UserID    int64            // ID пользователя
	TeamID    *int64           // ID команды (для conference)
	Date      time.Time        // Дата бронирования
	Slot      types.TimeString // Слот
	CreatedAt time.Time        // Время создания
}
