package list_available_rooms

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_available_rooms: internal error")
)
