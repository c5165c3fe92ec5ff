package timeslot

import (
	"errors"
	"fmt"
)

// MinutesPerDay количество минут в сутках, верхняя граница для TimeOfDay
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeOfDay возвращается для значений вне диапазона [0, 1440)
	ErrInvalidTimeOfDay = errors.New("timeslot: time of day out of range")

	// ErrInvalidTimeFormat возвращается при некорректном формате строки времени
	ErrInvalidTimeFormat = errors.New("timeslot: invalid time format, expected HH:MM")

	// ErrInvalidInterval возвращается, когда start >= end
	ErrInvalidInterval = errors.New("timeslot: interval start must be before end")
)

// TimeOfDay время суток в минутах от полуночи (0..1439).
// Хранится как целое число, чтобы арифметика слотов не зависела от time.Time.
type TimeOfDay int

// NewTimeOfDay создает TimeOfDay с проверкой диапазона
func NewTimeOfDay(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTimeOfDay, minutes)
	}
	return TimeOfDay(minutes), nil
}

// Parse парсит строку вида "09:30" в TimeOfDay
func Parse(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// String форматирует время как "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Add возвращает время, сдвинутое на minutes минут.
// Результат может выйти за пределы суток - вызывающий код проверяет границы сам
// (конец интервала [t, t+duration) сравнивается с временем закрытия).
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return TimeOfDay(int(t) + minutes)
}

// Before строгое сравнение t < other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// After строгое сравнение t > other
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t > other
}

// Interval полуоткрытый интервал [Start, End) в пределах одного дня.
// Интервал нулевой длины не конструируется - NewInterval это запрещает.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval создает интервал с проверкой start < end
func NewInterval(start, end TimeOfDay) (Interval, error) {
	if start >= end {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Граничащие интервалы ([9:00,10:00) и [10:00,11:00)) НЕ пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains проверяет, что точка лежит внутри интервала: Start <= point < End
func (i Interval) Contains(point TimeOfDay) bool {
	return i.Start <= point && point < i.End
}

// ContainsInterval проверяет, что other целиком лежит внутри i
func (i Interval) ContainsInterval(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}

// Duration длительность интервала в минутах
func (i Interval) Duration() int {
	return int(i.End) - int(i.Start)
}

// String форматирует интервал как "HH:MM-HH:MM"
func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
