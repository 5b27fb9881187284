package rosterservice

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена в RosterService
	ErrTeamNotFound = errors.New("rosterservice client: team not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("rosterservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("rosterservice client: invalid response")
)
