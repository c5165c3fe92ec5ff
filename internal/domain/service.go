package domain

import "time"

// Service represents a bookable service in the catalog
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	IsActive        bool
	SortOrder       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceUpdate partial update of a service; nil fields are left unchanged
type ServiceUpdate struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	IsActive        *bool
	SortOrder       *int
}
