package domain

// Booking policy constants
const (
	// MinTeamSize is the minimum roster size required to book a conference
	// room. Fixed policy, independent of room capacity.
	MinTeamSize = 3
)

// Default booking grid: hourly slots from 09:00:00 to 17:00:00 inclusive.
const (
	DefaultOpenHour  = 9
	DefaultCloseHour = 17
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
