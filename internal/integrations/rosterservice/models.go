package rosterservice

// Team модель команды из RosterService
type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OwnerID     int64  `json:"owner_id"`
	IsActive    bool   `json:"is_active"`
	MemberCount int    `json:"member_count"`
}

// ErrorResponse модель ошибки от RosterService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
