package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "room slot constraint",
			err:  &pq.Error{Code: "23505", Constraint: "uq_bookings_room_date_slot"},
			want: ErrRoomSlotTaken,
		},
		{
			name: "user slot constraint",
			err:  &pq.Error{Code: "23505", Constraint: "uq_bookings_user_date_slot"},
			want: ErrUserSlotTaken,
		},
		{
			name: "team slot constraint",
			err:  &pq.Error{Code: "23505", Constraint: "uq_bookings_team_date_slot"},
			want: ErrTeamSlotTaken,
		},
		{
			name: "wrapped pq error",
			err:  fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505", Constraint: "uq_bookings_user_date_slot"}),
			want: ErrUserSlotTaken,
		},
		{
			name: "unknown constraint",
			err:  &pq.Error{Code: "23505", Constraint: "uq_rooms_name"},
			want: nil,
		},
		{
			name: "other pq code",
			err:  &pq.Error{Code: "40001"},
			want: nil,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapUniqueViolation(tt.err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestWrapExecError(t *testing.T) {
	t.Run("serialization failure keeps pq error in chain", func(t *testing.T) {
		src := &pq.Error{Code: "40001"}

		got := wrapExecError("Create - execute insert", src)

		var pqErr *pq.Error
		assert.True(t, errors.As(got, &pqErr), "ошибка 40001 должна оставаться доступной через errors.As")
		assert.Equal(t, src.Code, pqErr.Code)
		assert.NotErrorIs(t, got, ErrExecQuery)
	})

	t.Run("already wrapped serialization failure", func(t *testing.T) {
		src := fmt.Errorf("driver: %w", &pq.Error{Code: "40001"})

		got := wrapExecError("ExistsRoomSlot - execute query", src)

		var pqErr *pq.Error
		assert.True(t, errors.As(got, &pqErr))
		assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	})

	t.Run("other pq error wraps as exec error", func(t *testing.T) {
		got := wrapExecError("Create - execute insert", &pq.Error{Code: "23503"})

		assert.ErrorIs(t, got, ErrExecQuery)

		var pqErr *pq.Error
		assert.False(t, errors.As(got, &pqErr))
	})

	t.Run("plain error wraps as exec error", func(t *testing.T) {
		got := wrapExecError("CountRoomSlot - execute query", errors.New("boom"))

		assert.ErrorIs(t, got, ErrExecQuery)
	})
}
