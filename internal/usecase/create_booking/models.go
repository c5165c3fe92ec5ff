package create_booking

import (
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID int64              // ID услуги
	Date      time.Time          // Дата бронирования (без времени)
	StartTime timeslot.TimeOfDay // Время начала слота
	Customer  domain.Customer    // Контакты клиента
	Notes     *string            // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       timeslot.TimeOfDay
	EndTime         timeslot.TimeOfDay
	DurationMinutes int
	Customer        domain.Customer
	Notes           *string
	Status          string

	// Снапшот услуги на момент создания
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
}
