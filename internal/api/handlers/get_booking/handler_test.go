package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/deskhive/RoomBookingService/internal/api/middleware"
	"github.com/deskhive/RoomBookingService/internal/service/bookings"
	"github.com/deskhive/RoomBookingService/internal/service/bookings/models"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (f *fakeService) GetByID(_ context.Context, _ int64, _ int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(svc *fakeService, path string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)
	api.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-ID", "100")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{resp: &models.BookingResponse{
		ID:   7,
		Room: &models.RoomResponse{ID: 5, Name: "Private Room 5", Type: "private", Capacity: 1},
		Date: "2024-06-01",
		Slot: "09:00:00",
	}}

	rec := doRequest(svc, "/api/v1/bookings/7")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
	assert.Contains(t, rec.Body.String(), `"slot":"09:00:00"`)
}

func TestHandle_NotFound(t *testing.T) {
	rec := doRequest(&fakeService{err: bookings.ErrBookingNotFound}, "/api/v1/bookings/7")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail": "Booking not found."}`, rec.Body.String())
}

func TestHandle_NonOwner(t *testing.T) {
	rec := doRequest(&fakeService{err: bookings.ErrAccessDenied}, "/api/v1/bookings/7")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_InvalidID(t *testing.T) {
	rec := doRequest(&fakeService{}, "/api/v1/bookings/xyz")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
