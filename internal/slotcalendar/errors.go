package slotcalendar

import "errors"

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("slotcalendar: invalid date")

	// ErrInvalidSlotFormat возвращается при некорректном формате времени слота
	ErrInvalidSlotFormat = errors.New("slotcalendar: invalid slot format")

	// ErrInvalidSlot возвращается для корректного времени, отсутствующего
	// в сетке слотов
	ErrInvalidSlot = errors.New("slotcalendar: invalid slot")

	// ErrInvalidGrid возвращается при некорректных границах сетки слотов
	ErrInvalidGrid = errors.New("slotcalendar: invalid slot grid bounds")
)
