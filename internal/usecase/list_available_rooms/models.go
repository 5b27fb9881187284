package list_available_rooms

import (
	"time"

	"github.com/deskhive/RoomBookingService/pkg/types"
)

// Request модель запроса доступности комнат.
// Если оба фильтра nil, возвращаются все комнаты без фильтрации; частично
// заданный фильтр трактуется так же, как отсутствующий.
type Request struct {
	Date *time.Time
	Slot *types.TimeString
}

// HasFilter сообщает, заданы ли оба компонента фильтра
func (r *Request) HasFilter() bool {
	return r.Date != nil && r.Slot != nil
}

// Room представление комнаты в ответе
type Room struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// Response модель ответа со списком комнат
type Response struct {
	Rooms []Room `json:"rooms"`
}
