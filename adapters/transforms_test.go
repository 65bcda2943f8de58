package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransforms(t *testing.T) {
	tests := []struct {
		name string
		post Transform
		in   string
		want string
	}{
		{"first line", firstLine, "3.45\nETH", "3.45"},
		{"first word", firstWord, "1.2 ETH", "1.2"},
		{"spaces", removeSpaces, "12 345", "12345"},
		{"sol mark", removeSolMark, "42.1 ◎", "42.1"},
		{"strip", strip("ETH"), "0.5ETH", "0.5"},
		{"strip several", strip("results", " "), "1,024 results", "1,024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.post(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAbsentIf(t *testing.T) {
	_, ok := absentIf("N/A")(" N/A ")
	assert.False(t, ok)

	v, ok := absentIf("N/A")("120")
	assert.True(t, ok)
	assert.Equal(t, "120", v)
}

func TestDaysSince(t *testing.T) {
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return time.Date(2022, 6, 10, 1, 0, 0, 0, time.UTC) }

	got, ok := daysSince("2022/06/07 11:59:59.123 PM")
	assert.True(t, ok)
	assert.Equal(t, "3", got)

	got, _ = daysSince("2022/06/10 12:00:00.000 AM")
	assert.Equal(t, "0", got)

	got, ok = daysSince("yesterday")
	assert.True(t, ok)
	assert.Equal(t, "yesterday", got)
}
