package models

import (
	"time"

	"github.com/deskhive/RoomBookingService/internal/domain"
)

// RoomResponse вложенное представление комнаты
type RoomResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// TeamResponse вложенное представление команды
type TeamResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingResponse ответ с данными бронирования.
// Room nil, если комната была удалена после бронирования.
type BookingResponse struct {
	ID   int64         `json:"id"`
	Room *RoomResponse `json:"room"`
	Team *TeamResponse `json:"team,omitempty"`
	Date string        `json:"date"` // "2024-06-01"
	Slot string        `json:"slot"` // "09:00:00"

	CreatedAt time.Time `json:"created_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainRoom конвертирует domain комнату во вложенное представление
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}
	return &RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Type:        string(r.Type),
		Capacity:    r.Capacity,
		Description: r.Description,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, room *domain.Room) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:        b.ID,
		Room:      FromDomainRoom(room),
		Date:      b.Date.Format(domain.DateFormat),
		Slot:      b.Slot.String(),
		CreatedAt: b.CreatedAt,
	}

	if b.TeamID != nil {
		team := &TeamResponse{ID: *b.TeamID}
		if b.TeamName != nil {
			team.Name = *b.TeamName
		}
		resp.Team = team
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований с комнатами в DTO
func FromDomainBookingList(items []*domain.BookingWithRoom) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(items)),
	}

	for _, item := range items {
		if b := FromDomainBooking(&item.Booking, item.Room); b != nil {
			resp.Bookings = append(resp.Bookings, *b)
		}
	}

	return resp
}
