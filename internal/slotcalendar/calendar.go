package slotcalendar

import (
	"fmt"
	"time"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/pkg/types"
)

// Calendar неизменяемая сетка временных слотов на один рабочий день.
// Конструируется один раз при старте из конфигурации и инжектируется
// во все компоненты, которым нужна валидация даты/слота.
type Calendar struct {
	slots   []types.TimeString
	slotSet map[types.TimeString]struct{}
}

// New создает календарь с часовыми слотами от openHour до closeHour
// включительно (например, 9 и 17 дают девять слотов 09:00:00..17:00:00).
func New(openHour, closeHour int) (*Calendar, error) {
	if openHour < 0 || closeHour > 23 || openHour > closeHour {
		return nil, fmt.Errorf("%w: open=%d close=%d", ErrInvalidGrid, openHour, closeHour)
	}

	c := &Calendar{
		slots:   make([]types.TimeString, 0, closeHour-openHour+1),
		slotSet: make(map[types.TimeString]struct{}, closeHour-openHour+1),
	}

	for h := openHour; h <= closeHour; h++ {
		slot := types.TimeString(fmt.Sprintf("%02d:00:00", h))
		c.slots = append(c.slots, slot)
		c.slotSet[slot] = struct{}{}
	}

	return c, nil
}

// Default возвращает календарь со стандартной сеткой 09:00:00-17:00:00.
func Default() *Calendar {
	c, err := New(domain.DefaultOpenHour, domain.DefaultCloseHour)
	if err != nil {
		// Недостижимо для констант по умолчанию.
		panic(err)
	}
	return c
}

// ParseDate парсит дату в каноническом формате YYYY-MM-DD.
// Часовые пояса не применяются: даты сравниваются по точному значению.
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseSlot парсит время слота в формате HH:MM:SS и проверяет точное
// совпадение с одним из слотов сетки. Округление не выполняется:
// синтаксически корректное время вне сетки так же невалидно.
func (c *Calendar) ParseSlot(s string) (types.TimeString, error) {
	slot, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotFormat, s)
	}
	if _, ok := c.slotSet[slot]; !ok {
		return "", fmt.Errorf("%w: %q is not on the booking grid", ErrInvalidSlot, s)
	}
	return slot, nil
}

// Slots возвращает копию упорядоченного списка слотов.
func (c *Calendar) Slots() []types.TimeString {
	out := make([]types.TimeString, len(c.slots))
	copy(out, c.slots)
	return out
}
