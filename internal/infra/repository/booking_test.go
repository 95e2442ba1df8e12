//go:build unit

package repository

import (
	"testing"
	"time"

	"github.com/DanSBol/shareit/internal/domain/booking"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateConditions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	render := func(t *testing.T, conds []squirrel.Sqlizer) (string, []any) {
		t.Helper()
		builder := psql.Select("b.id").From("bookings b")
		for _, cond := range conds {
			builder = builder.Where(cond)
		}
		query, args, err := builder.ToSql()
		require.NoError(t, err)
		return query, args
	}

	testCases := []struct {
		name      string
		state     booking.State
		wantSQL   string
		wantArgs  []any
	}{
		{
			name:     "ALL adds no predicate",
			state:    booking.StateAll,
			wantSQL:  "SELECT b.id FROM bookings b",
			wantArgs: nil,
		},
		{
			name:     "CURRENT brackets now inclusively",
			state:    booking.StateCurrent,
			wantSQL:  "SELECT b.id FROM bookings b WHERE b.start_time <= $1 AND b.end_time >= $2",
			wantArgs: []any{now, now},
		},
		{
			name:     "FUTURE is a strict start comparison",
			state:    booking.StateFuture,
			wantSQL:  "SELECT b.id FROM bookings b WHERE b.start_time > $1",
			wantArgs: []any{now},
		},
		{
			name:     "PAST requires approval",
			state:    booking.StatePast,
			wantSQL:  "SELECT b.id FROM bookings b WHERE b.end_time < $1 AND b.status = $2",
			wantArgs: []any{now, "APPROVED"},
		},
		{
			name:     "WAITING matches status only",
			state:    booking.StateWaiting,
			wantSQL:  "SELECT b.id FROM bookings b WHERE b.status = $1",
			wantArgs: []any{"WAITING"},
		},
		{
			name:     "REJECTED matches status only",
			state:    booking.StateRejected,
			wantSQL:  "SELECT b.id FROM bookings b WHERE b.status = $1",
			wantArgs: []any{"REJECTED"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := render(t, stateConditions(tc.state, now))
			assert.Equal(t, tc.wantSQL, query)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}
