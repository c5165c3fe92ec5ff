package domain

// Slot generation constants
const (
	// SlotStepMinutes шаг генерации кандидатов времени начала.
	// Фиксированный и не зависит от длительности услуги.
	SlotStepMinutes = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MaxNotesLength            = 500
	MaxReasonLength           = 500
	MaxCustomerNameLength     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
