package domain

import "time"

// RoomType represents the occupancy rule of a room.
type RoomType string

const (
	// RoomTypePrivate allows exactly one occupant per slot.
	RoomTypePrivate RoomType = "private"
	// RoomTypeConference allows one qualifying team per slot.
	RoomTypeConference RoomType = "conference"
	// RoomTypeShared allows independent occupants up to the room capacity.
	RoomTypeShared RoomType = "shared"
)

// IsValid reports whether the value is one of the known room types.
func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypePrivate, RoomTypeConference, RoomTypeShared:
		return true
	default:
		return false
	}
}

// Room represents a bookable room or desk pool.
type Room struct {
	ID          int64
	Name        string
	Type        RoomType
	Capacity    int
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsShared reports whether the room admits multiple occupants per slot.
func (r *Room) IsShared() bool {
	return r.Type == RoomTypeShared
}
