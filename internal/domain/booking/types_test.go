//go:build unit

package booking_test

import (
	"testing"

	"github.com/DanSBol/shareit/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	testCases := []struct {
		raw     string
		want    booking.State
		wantErr bool
	}{
		{raw: "ALL", want: booking.StateAll},
		{raw: "CURRENT", want: booking.StateCurrent},
		{raw: "FUTURE", want: booking.StateFuture},
		{raw: "PAST", want: booking.StatePast},
		{raw: "WAITING", want: booking.StateWaiting},
		{raw: "REJECTED", want: booking.StateRejected},
		{raw: "UNSUPPORTED_STATUS", wantErr: true},
		{raw: "all", wantErr: true},
		{raw: "APPROVED", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run("state "+tc.raw, func(t *testing.T) {
			got, err := booking.ParseState(tc.raw)

			if tc.wantErr {
				require.ErrorIs(t, err, booking.ErrUnknownState)
				assert.Contains(t, err.Error(), tc.raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, booking.StatusWaiting.IsValid())
	assert.True(t, booking.StatusApproved.IsValid())
	assert.True(t, booking.StatusRejected.IsValid())
	assert.False(t, booking.Status("CANCELLED").IsValid())
	assert.False(t, booking.Status("").IsValid())
}
