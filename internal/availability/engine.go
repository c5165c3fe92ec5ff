// Package availability вычисляет доступные слоты для записи.
//
// Движок не хранит состояние: результат - чистая функция от правила дня,
// блокировок, активных бронирований и длительности услуги. Одни и те же
// входные данные всегда дают один и тот же список слотов.
package availability

import (
	"github.com/arentz1234-code/jrodstudios/internal/domain"
	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// Slots перечисляет доступные времена начала для услуги длительностью
// durationMinutes с шагом stepMinutes:
//
//  1. Рабочее окно дня берется из rule; закрытый или ненастроенный день дает
//     пустой список.
//  2. Перерыв (если настроен) вырезается из окна - окно распадается максимум
//     на два под-окна.
//  3. Блокировка на весь день дает пустой список независимо от правила.
//  4. Занятые интервалы - активные бронирования плюс частичные блокировки.
//  5. Кандидат t проходит, если интервал [t, t+duration) целиком лежит в одном
//     под-окне и не пересекает ни один занятый интервал.
//
// Результат отсортирован по возрастанию.
func Slots(
	rule *domain.DayRule,
	blocks []*domain.BlockedTime,
	bookings []*domain.Booking,
	durationMinutes int,
	stepMinutes int,
) []timeslot.TimeOfDay {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return []timeslot.TimeOfDay{}
	}

	if DateFullyBlocked(blocks) {
		return []timeslot.TimeOfDay{}
	}

	windows := OpenWindows(rule)
	if len(windows) == 0 {
		return []timeslot.TimeOfDay{}
	}

	occupied := Occupied(bookings, blocks)

	slots := make([]timeslot.TimeOfDay, 0)
	for _, window := range windows {
		for t := window.Start; !t.After(window.End); t = t.Add(stepMinutes) {
			candidate := timeslot.Interval{Start: t, End: t.Add(durationMinutes)}

			// Кандидат должен целиком поместиться в под-окно
			if !window.ContainsInterval(candidate) {
				continue
			}

			if overlapsAny(candidate, occupied) {
				continue
			}

			slots = append(slots, t)
		}
	}

	return slots
}

// OpenWindows возвращает рабочие под-окна дня: рабочее окно минус перерыв.
// Для закрытого дня возвращает пустой список.
func OpenWindows(rule *domain.DayRule) []timeslot.Interval {
	if rule == nil {
		return nil
	}

	window, ok := rule.Window()
	if !ok {
		return nil
	}

	breakInterval, ok := rule.Break()
	if !ok || !window.Overlaps(breakInterval) {
		return []timeslot.Interval{window}
	}

	windows := make([]timeslot.Interval, 0, 2)
	if window.Start.Before(breakInterval.Start) {
		windows = append(windows, timeslot.Interval{Start: window.Start, End: breakInterval.Start})
	}
	if breakInterval.End.Before(window.End) {
		windows = append(windows, timeslot.Interval{Start: breakInterval.End, End: window.End})
	}

	return windows
}

// DateFullyBlocked проверяет, закрыт ли день целиком блокировкой all-day
func DateFullyBlocked(blocks []*domain.BlockedTime) bool {
	for _, block := range blocks {
		if block.AllDay {
			return true
		}
	}
	return false
}

// Occupied собирает занятые интервалы: активные бронирования плюс частичные
// блокировки. Пересечения между ними не схлопываются - для проверки кандидата
// достаточно семантики объединения.
func Occupied(bookings []*domain.Booking, blocks []*domain.BlockedTime) []timeslot.Interval {
	occupied := make([]timeslot.Interval, 0, len(bookings)+len(blocks))

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		occupied = append(occupied, booking.Interval())
	}

	for _, block := range blocks {
		if interval, ok := block.Interval(); ok {
			occupied = append(occupied, interval)
		}
	}

	return occupied
}

// Contains проверяет, входит ли t в отсортированный список слотов
func Contains(slots []timeslot.TimeOfDay, t timeslot.TimeOfDay) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}

func overlapsAny(candidate timeslot.Interval, occupied []timeslot.Interval) bool {
	for _, interval := range occupied {
		if candidate.Overlaps(interval) {
			return true
		}
	}
	return false
}
