package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "0:00:00"},
		{name: "sub-second is dropped", d: 1500 * time.Millisecond, want: "0:00:01"},
		{name: "hours and minutes", d: 2*time.Hour + 5*time.Minute + 9*time.Second, want: "2:05:09"},
		{name: "one day", d: 26 * time.Hour, want: "1 day, 2:00:00"},
		{name: "several days", d: 9*24*time.Hour + 30*time.Minute, want: "9 days, 0:30:00"},
		{name: "negative clamps to zero", d: -time.Minute, want: "0:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹100.00", FormatAmount(100, DefaultCurrency))
	assert.Equal(t, "$0.13", FormatAmount(0.125001, "$"))
}

func TestFormat(t *testing.T) {
	want := "===== Rental Bill =====\n" +
		"Duration: 1:30:00\n" +
		"Amount: ₹75.00\n" +
		"=======================\n"

	assert.Equal(t, want, Format(75, 90*time.Minute, DefaultCurrency))
}
