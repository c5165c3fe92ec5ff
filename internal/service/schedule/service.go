package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	blockedRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/blockedtime"
	"github.com/arentz1234-code/jrodstudios/internal/service/schedule/models"
)

// Service сервис управления расписанием: недельные часы работы и блокировки
type Service struct {
	hoursRepo   HoursRepository
	blockedRepo BlockedTimeRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(hoursRepo HoursRepository, blockedRepo BlockedTimeRepository, logger Logger) *Service {
	return &Service{
		hoursRepo:   hoursRepo,
		blockedRepo: blockedRepo,
		logger:      logger,
	}
}

// GetBusinessHours получает недельное расписание работы
func (s *Service) GetBusinessHours(ctx context.Context) (*models.BusinessHoursResponse, error) {
	s.logger.Info("GetBusinessHours: fetching weekly schedule")

	rules, err := s.hoursRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBusinessHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDayRuleList(rules), nil
}

// UpdateBusinessHours обновляет недельное расписание.
// Правила применяются по одному (upsert по дню недели); дни, не вошедшие
// в запрос, остаются без изменений. Существующие бронирования не
// пересматриваются - изменение действует только на новые запросы.
func (s *Service) UpdateBusinessHours(ctx context.Context, req *models.UpdateBusinessHoursRequest) (*models.BusinessHoursResponse, error) {
	s.logger.Info("UpdateBusinessHours: updating %d day rules", len(req.Rules))

	if len(req.Rules) == 0 {
		return nil, fmt.Errorf("%w: rules are required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(req.Rules))
	updates := make([]domain.DayRuleUpdate, 0, len(req.Rules))

	for _, ruleReq := range req.Rules {
		if seen[ruleReq.Weekday] {
			s.logger.Warn("UpdateBusinessHours: duplicate weekday=%d", ruleReq.Weekday)
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, ruleReq.Weekday)
		}
		seen[ruleReq.Weekday] = true

		update, err := ruleReq.ToDomain()
		if err != nil {
			s.logger.Warn("UpdateBusinessHours: invalid rule for weekday=%d: %v", ruleReq.Weekday, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := validateDayRule(update); err != nil {
			s.logger.Warn("UpdateBusinessHours: validation failed for weekday=%d: %v", ruleReq.Weekday, err)
			return nil, err
		}

		updates = append(updates, update)
	}

	for _, update := range updates {
		if _, err := s.hoursRepo.Upsert(ctx, update); err != nil {
			s.logger.Error("UpdateBusinessHours: repository error for weekday=%d: %v", update.Weekday, err)
			return nil, fmt.Errorf("%w: UpdateBusinessHours - repository error: %v", ErrInternal, err)
		}
	}

	rules, err := s.hoursRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("UpdateBusinessHours: failed to reload schedule: %v", err)
		return nil, fmt.Errorf("%w: UpdateBusinessHours - failed to reload schedule: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBusinessHours: successfully updated %d day rules", len(updates))
	return models.FromDomainDayRuleList(rules), nil
}

// CreateBlockedTime создает блокировку времени.
// Блокировка либо закрывает весь день (allDay), либо несет интервал.
// Уже существующие бронирования в заблокированном интервале не отменяются.
func (s *Service) CreateBlockedTime(ctx context.Context, req *models.CreateBlockedTimeRequest) (*models.BlockedTimeResponse, error) {
	s.logger.Info("CreateBlockedTime: date=%s, allDay=%v", req.Date, req.AllDay)

	block, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateBlockedTime: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateBlockedTime(block); err != nil {
		s.logger.Warn("CreateBlockedTime: validation failed: %v", err)
		return nil, err
	}

	created, err := s.blockedRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlockedTime: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedTime - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedTime: successfully created block id=%d", created.ID)
	return models.FromDomainBlockedTime(created), nil
}

// ListBlockedTimes получает блокировки начиная с указанной даты.
// from=nil возвращает все блокировки.
func (s *Service) ListBlockedTimes(ctx context.Context, from *time.Time) (*models.BlockedTimeListResponse, error) {
	s.logger.Info("ListBlockedTimes: fetching blocks, from=%v", from)

	blocks, err := s.blockedRepo.List(ctx, from)
	if err != nil {
		s.logger.Error("ListBlockedTimes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedTimes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlockedTimes: successfully fetched %d blocks", len(blocks))
	return models.FromDomainBlockedTimeList(blocks), nil
}

// DeleteBlockedTime удаляет блокировку
func (s *Service) DeleteBlockedTime(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlockedTime: deleting block id=%d", id)

	if err := s.blockedRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlockedTime: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlockedTime: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedTime - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedTime: successfully deleted block id=%d", id)
	return nil
}

// Валидация

// validateDayRule проверяет согласованность правила одного дня.
// Для открытого дня обязательны open/close, open < close; перерыв
// опционален, но если задан - целиком внутри рабочего окна.
func validateDayRule(rule domain.DayRuleUpdate) error {
	if !rule.IsOpen {
		return nil
	}

	if rule.OpenTime == nil || rule.CloseTime == nil {
		return fmt.Errorf("%w: open day requires openTime and closeTime", ErrInvalidInput)
	}
	if !rule.OpenTime.Before(*rule.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if rule.BreakStart == nil && rule.BreakEnd == nil {
		return nil
	}
	if rule.BreakStart == nil || rule.BreakEnd == nil {
		return fmt.Errorf("%w: break requires both breakStart and breakEnd", ErrInvalidInput)
	}
	if !rule.BreakStart.Before(*rule.BreakEnd) {
		return fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidInput)
	}
	if rule.BreakStart.Before(*rule.OpenTime) || rule.CloseTime.Before(*rule.BreakEnd) {
		return fmt.Errorf("%w: break must be within working hours", ErrInvalidInput)
	}

	return nil
}

// validateBlockedTime проверяет согласованность блокировки
func validateBlockedTime(block *domain.BlockedTime) error {
	if block.AllDay {
		if block.StartTime != nil || block.EndTime != nil {
			return fmt.Errorf("%w: all-day block must not carry an interval", ErrInvalidInput)
		}
	} else {
		if block.StartTime == nil || block.EndTime == nil {
			return fmt.Errorf("%w: partial block requires startTime and endTime", ErrInvalidInput)
		}
		if !block.StartTime.Before(*block.EndTime) {
			return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
	}

	if block.Reason != nil && len(*block.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
