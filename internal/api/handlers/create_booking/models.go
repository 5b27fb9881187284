package create_booking

import (
	"github.com/deskhive/RoomBookingService/internal/slotcalendar"
	createBooking "github.com/deskhive/RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP запрос на создание бронирования
type CreateBookingRequest struct {
	RoomID    int64   `json:"room_id"`
	Date      string  `json:"date"` // "2024-06-01"
	Slot      string  `json:"slot"` // "09:00:00"
	TeamID    *int64  `json:"team_id,omitempty"`
	MemberIDs []int64 `json:"member_ids,omitempty"`
}

// CreateBookingResponse HTTP ответ с ID созданного бронирования
type CreateBookingResponse struct {
	BookingID int64 `json:"booking_id"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case,
// валидируя дату и слот по календарю
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64, cal *slotcalendar.Calendar) (*createBooking.Request, error) {
	date, err := cal.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := cal.ParseSlot(r.Slot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		RoomID:    r.RoomID,
		TeamID:    r.TeamID,
		Date:      date,
		Slot:      slot,
		MemberIDs: r.MemberIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID: resp.BookingID,
	}
}
