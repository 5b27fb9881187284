package domain

import (
	"time"

	"github.com/deskhive/RoomBookingService/pkg/types"
)

// Booking represents one committed allocation of a room for a date and slot.
// TeamID and TeamName are only set for conference-room bookings. RoomID
// scans as zero when the referenced room was removed (FK SET NULL).
type Booking struct {
	ID     int64
	RoomID int64
	UserID int64
	TeamID *int64

	// Denormalized at commit time so listings survive roster changes.
	TeamName *string

	// Exclusive is denormalized from the room type at commit time; it scopes
	// the schema-level uniqueness of (room, date, slot) to non-shared rooms.
	Exclusive bool

	Date time.Time
	Slot types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTeamBooking reports whether the booking carries a team reference.
func (b *Booking) IsTeamBooking() bool {
	return b.TeamID != nil
}

// BookingWithRoom is a booking joined with its room for list projections.
// Room is nil when the room was removed after the booking was made.
type BookingWithRoom struct {
	Booking
	Room *Room
}
