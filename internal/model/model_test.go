package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRentalMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RentalMode
		wantErr bool
	}{
		{in: "hourly", want: RentalModeHourly},
		{in: "Daily", want: RentalModeDaily},
		{in: " WEEKLY ", want: RentalModeWeekly},
		{in: "monthly", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRentalMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRentalMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRentalModeUnit(t *testing.T) {
	assert.Equal(t, time.Hour, RentalModeHourly.Unit())
	assert.Equal(t, 24*time.Hour, RentalModeDaily.Unit())
	assert.Equal(t, 168*time.Hour, RentalModeWeekly.Unit())
	assert.Zero(t, RentalMode("monthly").Unit())
}

func TestRateTable(t *testing.T) {
	rates := DefaultRates()
	require.NoError(t, rates.Validate())

	assert.Equal(t, 50.0, rates.For(RentalModeHourly))
	assert.Equal(t, 800.0, rates.For(RentalModeDaily))
	assert.Equal(t, 4000.0, rates.For(RentalModeWeekly))

	rates.Weekly = -1
	assert.Error(t, rates.Validate())
}

func TestRentalRecordDuration(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r := &RentalRecord{RentalTime: start}

	assert.Equal(t, time.Hour, r.Duration(start.Add(time.Hour)))

	end := start.Add(3 * time.Hour)
	r.ReturnTime = &end
	assert.Equal(t, 3*time.Hour, r.Duration(start.Add(10*time.Hour)))
}
