package list_available_rooms

import (
	"errors"
	"net/http"

	"github.com/deskhive/RoomBookingService/internal/api/handlers"
	"github.com/deskhive/RoomBookingService/internal/slotcalendar"
	listAvailableRooms "github.com/deskhive/RoomBookingService/internal/usecase/list_available_rooms"
)

const (
	msgInvalidDate       = "Invalid date format."
	msgInvalidSlotFormat = "Invalid slot format."
	msgInvalidSlot       = "Invalid slot."
)

type Handler struct {
	useCase  ListAvailableRoomsUseCase
	calendar *slotcalendar.Calendar
	logger   Logger
}

func NewHandler(useCase ListAvailableRoomsUseCase, calendar *slotcalendar.Calendar, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		calendar: calendar,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms/available?date=YYYY-MM-DD&slot=HH:MM:SS
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &listAvailableRooms.Request{}

	// Фильтр применяется только при обоих параметрах; одиночный параметр
	// трактуется как его отсутствие
	rawDate := r.URL.Query().Get("date")
	rawSlot := r.URL.Query().Get("slot")
	if rawDate != "" && rawSlot != "" {
		date, err := h.calendar.ParseDate(rawDate)
		if err != nil {
			h.logger.Warn("GET /rooms/available - Invalid date: %q", rawDate)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		slot, err := h.calendar.ParseSlot(rawSlot)
		if err != nil {
			h.logger.Warn("GET /rooms/available - Invalid slot: %q", rawSlot)
			if errors.Is(err, slotcalendar.ErrInvalidSlotFormat) {
				handlers.RespondBadRequest(w, msgInvalidSlotFormat)
			} else {
				handlers.RespondBadRequest(w, msgInvalidSlot)
			}
			return
		}

		req.Date = &date
		req.Slot = &slot
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /rooms/available - Failed to list rooms: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms/available - Listed %d rooms (filtered=%t)", len(result.Rooms), req.HasFilter())
	handlers.RespondJSON(w, http.StatusOK, result.Rooms)
}
