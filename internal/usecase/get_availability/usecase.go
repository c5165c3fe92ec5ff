package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/arentz1234-code/jrodstudios/internal/availability"
	"github.com/arentz1234-code/jrodstudios/internal/domain"
	hoursRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/hours"
	serviceRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/service"
	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// UseCase use case для получения доступных слотов для записи.
// Чтение выполняется без блокировок: слегка устаревшие данные допустимы,
// финальная проверка происходит при создании бронирования.
type UseCase struct {
	bookingRepo BookingRepository
	hoursRepo   HoursRepository
	blockedRepo BlockedTimeRepository
	serviceRepo ServiceRepository
	stepMinutes int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	hoursRepo HoursRepository,
	blockedRepo BlockedTimeRepository,
	serviceRepo ServiceRepository,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.SlotStepMinutes
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		hoursRepo:   hoursRepo,
		blockedRepo: blockedRepo,
		serviceRepo: serviceRepo,
		stepMinutes: stepMinutes,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailability: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 3. Получаем правило дня недели.
	// Отсутствие правила - ошибка конфигурации, трактуем как "закрыто".
	rule, err := uc.hoursRepo.GetByWeekday(ctx, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, hoursRepo.ErrRuleNotFound) {
			uc.logger.Warn("GetAvailability: no day rule configured for weekday=%d, treating as closed",
				req.Date.Weekday())
			return uc.emptyResponse(req, service), nil
		}
		uc.logger.Error("GetAvailability: failed to get day rule: %v", err)
		return nil, fmt.Errorf("%w: failed to get day rule: %v", ErrInternal, err)
	}

	// 4. Получаем блокировки на дату
	blocks, err := uc.blockedRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blocked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
	}

	// 5. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступные слоты
	slots := availability.Slots(rule, blocks, bookings, service.DurationMinutes, uc.stepMinutes)

	uc.logger.Info("GetAvailability: %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, service *domain.Service) *Response {
	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []timeslot.TimeOfDay{},
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
