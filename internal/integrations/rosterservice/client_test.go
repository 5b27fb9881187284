package rosterservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetTeam_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/teams/10", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 10, "name": "Platform", "owner_id": 1, "is_active": true, "member_count": 5}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	team, err := client.GetTeam(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, int64(10), team.ID)
	assert.Equal(t, "Platform", team.Name)
	assert.Equal(t, 5, team.MemberCount)
	assert.True(t, team.IsActive)
}

func TestGetTeam_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	_, err := client.GetTeam(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestGetTeam_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	_, err := client.GetTeam(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetTeam_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	_, err := client.GetTeam(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetTeam_CorruptBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	_, err := client.GetTeam(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetTeam_ConnectionError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond, nopLogger{})

	_, err := client.GetTeam(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInternal)
}
