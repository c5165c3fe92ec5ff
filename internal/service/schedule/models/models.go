package models

import (
	"errors"
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidWeekday возвращается при недопустимом дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Request модели

// DayRuleRequest правило работы на один день недели (0=воскресенье .. 6=суббота)
type DayRuleRequest struct {
	Weekday    int     `json:"weekday"`
	IsOpen     bool    `json:"isOpen"`
	OpenTime   *string `json:"openTime,omitempty"`   // "09:00"
	CloseTime  *string `json:"closeTime,omitempty"`  // "18:00"
	BreakStart *string `json:"breakStart,omitempty"` // "13:00"
	BreakEnd   *string `json:"breakEnd,omitempty"`   // "14:00"
}

// ToDomain конвертирует request в domain модель обновления правила
func (r *DayRuleRequest) ToDomain() (domain.DayRuleUpdate, error) {
	if r.Weekday < 0 || r.Weekday > 6 {
		return domain.DayRuleUpdate{}, ErrInvalidWeekday
	}

	update := domain.DayRuleUpdate{
		Weekday: time.Weekday(r.Weekday),
		IsOpen:  r.IsOpen,
	}

	var err error
	if update.OpenTime, err = parseOptionalTime(r.OpenTime); err != nil {
		return domain.DayRuleUpdate{}, err
	}
	if update.CloseTime, err = parseOptionalTime(r.CloseTime); err != nil {
		return domain.DayRuleUpdate{}, err
	}
	if update.BreakStart, err = parseOptionalTime(r.BreakStart); err != nil {
		return domain.DayRuleUpdate{}, err
	}
	if update.BreakEnd, err = parseOptionalTime(r.BreakEnd); err != nil {
		return domain.DayRuleUpdate{}, err
	}

	return update, nil
}

// UpdateBusinessHoursRequest запрос на обновление недельного расписания
type UpdateBusinessHoursRequest struct {
	Rules []DayRuleRequest `json:"rules"`
}

// CreateBlockedTimeRequest запрос на создание блокировки
type CreateBlockedTimeRequest struct {
	Date      string  `json:"date"` // "2026-03-15"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	AllDay    bool    `json:"allDay,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ToDomain конвертирует request в domain модель блокировки
func (r *CreateBlockedTimeRequest) ToDomain() (*domain.BlockedTime, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	block := &domain.BlockedTime{
		Date:   date,
		AllDay: r.AllDay,
		Reason: r.Reason,
	}

	if block.StartTime, err = parseOptionalTime(r.StartTime); err != nil {
		return nil, err
	}
	if block.EndTime, err = parseOptionalTime(r.EndTime); err != nil {
		return nil, err
	}

	return block, nil
}

// Response модели

// DayRuleResponse правило работы на один день недели
type DayRuleResponse struct {
	Weekday    int     `json:"weekday"`
	IsOpen     bool    `json:"isOpen"`
	OpenTime   *string `json:"openTime,omitempty"`
	CloseTime  *string `json:"closeTime,omitempty"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// BusinessHoursResponse недельное расписание работы
type BusinessHoursResponse struct {
	Rules []DayRuleResponse `json:"rules"`
}

// BlockedTimeResponse ответ с данными блокировки
type BlockedTimeResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	AllDay    bool      `json:"allDay"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedTimeListResponse ответ со списком блокировок
type BlockedTimeListResponse struct {
	BlockedTimes []BlockedTimeResponse `json:"blockedTimes"`
}

// Методы конвертации

// FromDomainDayRule конвертирует domain модель в DTO
func FromDomainDayRule(r *domain.DayRule) *DayRuleResponse {
	if r == nil {
		return nil
	}

	return &DayRuleResponse{
		Weekday:    int(r.Weekday),
		IsOpen:     r.IsOpen,
		OpenTime:   formatOptionalTime(r.OpenTime),
		CloseTime:  formatOptionalTime(r.CloseTime),
		BreakStart: formatOptionalTime(r.BreakStart),
		BreakEnd:   formatOptionalTime(r.BreakEnd),
	}
}

// FromDomainDayRuleList конвертирует список правил в DTO
func FromDomainDayRuleList(rules []*domain.DayRule) *BusinessHoursResponse {
	resp := &BusinessHoursResponse{
		Rules: make([]DayRuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		if ruleResp := FromDomainDayRule(rule); ruleResp != nil {
			resp.Rules = append(resp.Rules, *ruleResp)
		}
	}

	return resp
}

// FromDomainBlockedTime конвертирует domain модель в DTO
func FromDomainBlockedTime(b *domain.BlockedTime) *BlockedTimeResponse {
	if b == nil {
		return nil
	}

	return &BlockedTimeResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: formatOptionalTime(b.StartTime),
		EndTime:   formatOptionalTime(b.EndTime),
		AllDay:    b.AllDay,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedTimeList конвертирует список блокировок в DTO
func FromDomainBlockedTimeList(blocks []*domain.BlockedTime) *BlockedTimeListResponse {
	resp := &BlockedTimeListResponse{
		BlockedTimes: make([]BlockedTimeResponse, 0, len(blocks)),
	}

	for _, block := range blocks {
		if blockResp := FromDomainBlockedTime(block); blockResp != nil {
			resp.BlockedTimes = append(resp.BlockedTimes, *blockResp)
		}
	}

	return resp
}

// Вспомогательные функции

func parseOptionalTime(s *string) (*timeslot.TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	t, err := timeslot.Parse(*s)
	if err != nil {
		return nil, ErrInvalidTime
	}
	return &t, nil
}

func formatOptionalTime(t *timeslot.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
