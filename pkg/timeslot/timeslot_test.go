package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"13:00", 780, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"09-30", 0, true},
		{"", 0, true},
		{"abcde", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "09:05", TimeOfDay(545).String())
	assert.Equal(t, "23:59", TimeOfDay(1439).String())
}

func TestNewTimeOfDay(t *testing.T) {
	_, err := NewTimeOfDay(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)

	_, err = NewTimeOfDay(MinutesPerDay)
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)

	got, err := NewTimeOfDay(720)
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(720), got)
}

func TestNewInterval(t *testing.T) {
	_, err := NewInterval(600, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(700, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	i, err := NewInterval(600, 660)
	require.NoError(t, err)
	assert.Equal(t, 60, i.Duration())
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"identical", Interval{540, 600}, Interval{540, 600}, true},
		{"partial overlap", Interval{540, 600}, Interval{570, 630}, true},
		{"contained", Interval{540, 660}, Interval{570, 600}, true},
		// Граничащие интервалы не пересекаются: конец полуоткрытый
		{"touching end to start", Interval{540, 600}, Interval{600, 660}, false},
		{"touching start to end", Interval{600, 660}, Interval{540, 600}, false},
		{"disjoint", Interval{540, 600}, Interval{700, 760}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	i := Interval{Start: 540, End: 600}

	assert.True(t, i.Contains(540))
	assert.True(t, i.Contains(599))
	assert.False(t, i.Contains(600))
	assert.False(t, i.Contains(539))
}

func TestIntervalContainsInterval(t *testing.T) {
	window := Interval{Start: 540, End: 1080}

	assert.True(t, window.ContainsInterval(Interval{540, 600}))
	assert.True(t, window.ContainsInterval(Interval{1020, 1080}))
	assert.False(t, window.ContainsInterval(Interval{1050, 1110}))
	assert.False(t, window.ContainsInterval(Interval{500, 560}))
}
