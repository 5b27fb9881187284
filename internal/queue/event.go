// Package queue определяет полезные нагрузки событий, публикуемых в брокер.
package queue

// Имена очередей событий бронирования
const (
	QueueBookingCreated   = "booking.created"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingCreatedEvent публикуется после успешного коммита бронирования.
// Содержит достаточно данных для уведомлений и аналитики без обращения
// к основной базе.
type BookingCreatedEvent struct {
	BookingID int64   `json:"booking_id"`
	RoomID    int64   `json:"room_id"`
	RoomName  string  `json:"room_name"`
	RoomType  string  `json:"room_type"`
	UserID    int64   `json:"user_id"`
	TeamID    *int64  `json:"team_id,omitempty"`
	TeamName  *string `json:"team_name,omitempty"`
	Date      string  `json:"date"`
	Slot      string  `json:"slot"`
	CreatedAt string  `json:"created_at"`
}

// BookingCancelledEvent публикуется после отмены бронирования.
type BookingCancelledEvent struct {
	BookingID   int64  `json:"booking_id"`
	RoomID      int64  `json:"room_id"`
	UserID      int64  `json:"user_id"`
	Date        string `json:"date"`
	Slot        string `json:"slot"`
	CancelledAt string `json:"cancelled_at"`
}
