package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_DurationMinutes(t *testing.T) {
	s := &Schedule{DepartureTime: "08:30", ArrivalTime: "14:00"}
	assert.Equal(t, 330, s.DurationMinutes())

	// Overnight trips roll over midnight.
	s = &Schedule{DepartureTime: "21:30", ArrivalTime: "05:45"}
	assert.Equal(t, 495, s.DurationMinutes())

	s = &Schedule{DepartureTime: "bad", ArrivalTime: "05:45"}
	assert.Equal(t, 0, s.DurationMinutes())
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("9:5:1"))
	assert.False(t, ValidClock(""))
}
