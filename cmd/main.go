package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBlockedTimeHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/create_blocked_time"
	createBookingHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/create_booking"
	createServiceHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/create_service"
	deleteBlockedTimeHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/delete_blocked_time"
	deleteServiceHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/delete_service"
	getAvailabilityHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/get_availability"
	getBookingHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/get_business_hours"
	listBlockedTimesHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/list_blocked_times"
	listBookingsHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/list_services"
	updateBookingStatusHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/update_booking_status"
	updateBusinessHoursHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/update_business_hours"
	updateServiceHandler "github.com/arentz1234-code/jrodstudios/internal/api/handlers/update_service"
	"github.com/arentz1234-code/jrodstudios/internal/api/middleware"
	"github.com/arentz1234-code/jrodstudios/internal/config"
	blockedRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/blockedtime"
	bookingRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/booking"
	hoursRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/hours"
	serviceRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/service"
	bookingsService "github.com/arentz1234-code/jrodstudios/internal/service/bookings"
	catalogService "github.com/arentz1234-code/jrodstudios/internal/service/catalog"
	scheduleService "github.com/arentz1234-code/jrodstudios/internal/service/schedule"
	createBookingUC "github.com/arentz1234-code/jrodstudios/internal/usecase/create_booking"
	getAvailabilityUC "github.com/arentz1234-code/jrodstudios/internal/usecase/get_availability"
	"github.com/arentz1234-code/jrodstudios/pkg/dbmetrics"
	"github.com/arentz1234-code/jrodstudios/pkg/logger"
	"github.com/arentz1234-code/jrodstudios/pkg/metrics"
	"github.com/arentz1234-code/jrodstudios/pkg/simpletxmanager"
	"github.com/arentz1234-code/jrodstudios/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting jrodstudios booking service...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона студии: все даты бронирований интерпретируются в ней
	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}
	log.Info("Business timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		hoursRepository   *hoursRepo.Repository
		blockedRepository *blockedRepo.Repository
		serviceRepository *serviceRepo.Repository
	)

	// Интерфейс transaction manager для usecases
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		hoursRepository = hoursRepo.NewRepository(wrappedDB)
		blockedRepository = blockedRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		hoursRepository = hoursRepo.NewRepository(db)
		blockedRepository = blockedRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	scheduleSvc := scheduleService.NewService(hoursRepository, blockedRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		hoursRepository,
		blockedRepository,
		serviceRepository,
		txMgr,
		location,
		cfg.Business.SlotStepMinutes,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		hoursRepository,
		blockedRepository,
		serviceRepository,
		cfg.Business.SlotStepMinutes,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, true, log)

	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(scheduleSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(scheduleSvc, log)
	listBlockedTimes := listBlockedTimesHandler.NewHandler(scheduleSvc, log)
	createBlockedTime := createBlockedTimeHandler.NewHandler(scheduleSvc, log)
	deleteBlockedTime := deleteBlockedTimeHandler.NewHandler(scheduleSvc, log)
	listAllServices := listServicesHandler.NewHandler(catalogSvc, false, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Витрина услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID (страница подтверждения)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Business.AdminToken))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание работы ---
	admin.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)

	// --- Блокировки времени ---
	admin.HandleFunc("/blocked-times", listBlockedTimes.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-times", createBlockedTime.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-times/{blockId}", deleteBlockedTime.Handle).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	admin.HandleFunc("/services", listAllServices.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
