package create_booking

import (
	"errors"
	"net/http"

	"github.com/deskhive/RoomBookingService/internal/api/handlers"
	"github.com/deskhive/RoomBookingService/internal/api/middleware"
	"github.com/deskhive/RoomBookingService/internal/slotcalendar"
	createBooking "github.com/deskhive/RoomBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgInvalidDate        = "Invalid date format."
	msgInvalidSlotFormat  = "Invalid slot format."
	msgInvalidSlot        = "Invalid slot."
	msgRoomNotFound       = "Room not found."
	msgTeamNotFound       = "Team not found."
	msgTeamRequired       = "Team required for conference room."
	msgTeamTooSmall       = "Conference room requires at least 3 team members."
	msgSlotUnavailable    = "No available room for the selected slot and type."
	msgUserDoubleBooked   = "User already has a booking for this slot."
	msgTeamDoubleBooked   = "Team already has a booking for this slot."
	msgInvalidRoomType    = "Invalid room type."
)

type Handler struct {
	useCase  CreateBookingUseCase
	calendar *slotcalendar.Calendar
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, calendar *slotcalendar.Calendar, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		calendar: calendar,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /bookings - Missing user identity in context")
		handlers.RespondInternalError(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с валидацией даты и слота)
	useCaseReq, err := req.ToUseCaseRequest(userID, h.calendar)
	if err != nil {
		switch {
		case errors.Is(err, slotcalendar.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: user_id=%d, date=%q", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, slotcalendar.ErrInvalidSlotFormat):
			h.logger.Warn("POST /bookings - Invalid slot format: user_id=%d, slot=%q", userID, req.Slot)
			handlers.RespondBadRequest(w, msgInvalidSlotFormat)

		case errors.Is(err, slotcalendar.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Slot outside booking grid: user_id=%d, slot=%q", userID, req.Slot)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrTeamNotFound):
			h.logger.Warn("POST /bookings - Team not found: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, createBooking.ErrTeamRequired):
			h.logger.Warn("POST /bookings - Team required: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, msgTeamRequired)

		case errors.Is(err, createBooking.ErrTeamTooSmall):
			h.logger.Warn("POST /bookings - Team too small: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, msgTeamTooSmall)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, room_id=%d, date=%s, slot=%s",
				userID, req.RoomID, req.Date, req.Slot)
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrUserDoubleBooked):
			h.logger.Warn("POST /bookings - User double booked: user_id=%d, date=%s, slot=%s",
				userID, req.Date, req.Slot)
			handlers.RespondBadRequest(w, msgUserDoubleBooked)

		case errors.Is(err, createBooking.ErrTeamDoubleBooked):
			h.logger.Warn("POST /bookings - Team double booked: user_id=%d, date=%s, slot=%s",
				userID, req.Date, req.Slot)
			handlers.RespondBadRequest(w, msgTeamDoubleBooked)

		case errors.Is(err, createBooking.ErrInvalidRoomType):
			h.logger.Warn("POST /bookings - Invalid room type: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, msgInvalidRoomType)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, room_id=%d",
		result.BookingID, userID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
