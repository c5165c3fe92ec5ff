package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/availability"
	"github.com/arentz1234-code/jrodstudios/internal/domain"
	hoursRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/hours"
	serviceRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/service"
)

// UseCase use case для создания бронирования.
// Пересчет доступности, проверка выбранного слота и вставка выполняются как
// одна сериализуемая транзакция: два конкурентных запроса на пересекающиеся
// интервалы одной даты не могут оба завершиться успехом.
type UseCase struct {
	bookingRepo  BookingRepository
	hoursRepo    HoursRepository
	blockedRepo  BlockedTimeRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	stepMinutes  int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	hoursRepo HoursRepository,
	blockedRepo BlockedTimeRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	location *time.Location,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if stepMinutes <= 0 {
		stepMinutes = domain.SlotStepMinutes
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		hoursRepo:    hoursRepo,
		blockedRepo:  blockedRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		stepMinutes:  stepMinutes,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, customer=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Customer.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом (в таймзоне студии)
	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 4. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Правило дня недели; ненастроенный день трактуем как закрытый
		rule, err := uc.hoursRepo.GetByWeekday(txCtx, req.Date.Weekday())
		if err != nil {
			if errors.Is(err, hoursRepo.ErrRuleNotFound) {
				uc.logger.Warn("CreateBooking: no day rule for weekday=%d, treating as closed",
					req.Date.Weekday())
				return ErrClosed
			}
			uc.logger.Error("CreateBooking: failed to get day rule: %v", err)
			return fmt.Errorf("%w: failed to get day rule: %w", ErrInternal, err)
		}

		// 4.2. Блокировки на дату
		blocks, err := uc.blockedRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked times: %v", err)
			return fmt.Errorf("%w: failed to get blocked times: %w", ErrInternal, err)
		}

		// 4.3. Активные бронирования дня с блокировкой строк (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.4. Пересчитываем доступность и проверяем выбранный слот.
		// Список, который видел клиент, мог устареть - проверка здесь финальная.
		slots := availability.Slots(rule, blocks, bookings, service.DurationMinutes, uc.stepMinutes)
		if !availability.Contains(slots, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s not available on %s",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 4.5. Создаем бронирование со снапшотом услуги.
		// Длительность фиксируется на момент создания и не пересчитывается
		// при последующих изменениях услуги.
		booking := &domain.Booking{
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Customer:        req.Customer,
			Notes:           req.Notes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.StartTime.Add(result.DurationMinutes),
		DurationMinutes: result.DurationMinutes,
		Customer:        result.Customer,
		Notes:           result.Notes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CreatedAt:       result.CreatedAt,
	}, nil
}
