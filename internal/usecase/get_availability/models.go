package get_availability

import (
	"time"

	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time            // Дата, на которую запрашивались слоты
	ServiceID       int64                // ID услуги
	DurationMinutes int                  // Длительность услуги в минутах
	Slots           []timeslot.TimeOfDay // Доступные времена начала по возрастанию
}
