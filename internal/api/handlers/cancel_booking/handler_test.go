package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/deskhive/RoomBookingService/internal/api/middleware"
	"github.com/deskhive/RoomBookingService/internal/service/bookings"
)

type fakeService struct {
	err       error
	gotID     int64
	gotUserID int64
}

func (f *fakeService) Cancel(_ context.Context, id int64, userID int64) error {
	f.gotID = id
	f.gotUserID = userID
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(svc *fakeService, path string, userID string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)
	api.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}

	rec := doRequest(svc, "/api/v1/bookings/7/cancel", "100")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"detail": "Booking cancelled."}`, rec.Body.String())
	assert.Equal(t, int64(7), svc.gotID)
	assert.Equal(t, int64(100), svc.gotUserID)
}

func TestHandle_NotFound(t *testing.T) {
	rec := doRequest(&fakeService{err: bookings.ErrBookingNotFound}, "/api/v1/bookings/7/cancel", "100")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail": "Booking not found."}`, rec.Body.String())
}

func TestHandle_NonOwner(t *testing.T) {
	rec := doRequest(&fakeService{err: bookings.ErrAccessDenied}, "/api/v1/bookings/7/cancel", "200")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"detail": "You can only cancel your own bookings."}`, rec.Body.String())
}

func TestHandle_InvalidBookingID(t *testing.T) {
	rec := doRequest(&fakeService{}, "/api/v1/bookings/abc/cancel", "100")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail": "Invalid booking id."}`, rec.Body.String())
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	rec := doRequest(&fakeService{}, "/api/v1/bookings/7/cancel", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	rec := doRequest(&fakeService{err: bookings.ErrInternal}, "/api/v1/bookings/7/cancel", "100")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
