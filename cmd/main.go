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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelHoldHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/cancel_hold"
	confirmBookingHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/confirm_booking"
	createHoldHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/create_hold"
	getAvailabilityHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/get_availability"
	getDayBookingsHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/get_day_bookings"
	joinWaitlistHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/join_waitlist"
	manageCancelHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/manage_cancel"
	manageSettingsHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/manage_settings"
	manageTablesHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/manage_tables"
	manageWaitlistHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/manage_waitlist"
	moveBookingHandler "github.com/akimovs/TRS-TableService/internal/api/handlers/move_booking"
	"github.com/akimovs/TRS-TableService/internal/api/middleware"
	"github.com/akimovs/TRS-TableService/internal/config"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
	customerRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/customer"
	ruleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/rule"
	scheduleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/schedule"
	tableRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/table"
	waitlistRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/waitlist"
	mailerClient "github.com/akimovs/TRS-TableService/internal/integrations/mailer"
	bookingsService "github.com/akimovs/TRS-TableService/internal/service/bookings"
	settingsService "github.com/akimovs/TRS-TableService/internal/service/settings"
	tablesService "github.com/akimovs/TRS-TableService/internal/service/tables"
	waitlistService "github.com/akimovs/TRS-TableService/internal/service/waitlist"
	confirmBookingUC "github.com/akimovs/TRS-TableService/internal/usecase/confirm_booking"
	createHoldUC "github.com/akimovs/TRS-TableService/internal/usecase/create_hold"
	getAvailabilityUC "github.com/akimovs/TRS-TableService/internal/usecase/get_availability"
	moveBookingUC "github.com/akimovs/TRS-TableService/internal/usecase/move_booking"
	"github.com/akimovs/TRS-TableService/internal/workers/reminder"
	"github.com/akimovs/TRS-TableService/internal/workers/waitlistnotifier"
	"github.com/akimovs/TRS-TableService/pkg/dbmetrics"
	"github.com/akimovs/TRS-TableService/pkg/logger"
	"github.com/akimovs/TRS-TableService/pkg/metrics"
	"github.com/akimovs/TRS-TableService/pkg/simpletxmanager"
	"github.com/akimovs/TRS-TableService/pkg/txmanager"
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

	log.Info("Starting TRS-TableService...")
	log.Info("Configuration loaded from config.toml")

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

	// Применяем миграции
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)

	// Инициализируем клиент почтового сервиса
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer client initialized (url=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		tableRepository    *tableRepo.Repository
		ruleRepository     *ruleRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		customerRepository *customerRepo.Repository
		waitlistRepository *waitlistRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		tableRepository = tableRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		tableRepository = tableRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		customerRepository,
		mailer,
		txMgr,
		log,
	)
	tablesSvc := tablesService.NewService(
		tableRepository,
		txMgr,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		log,
	)
	settingsSvc := settingsService.NewService(
		ruleRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		ruleRepository,
		tableRepository,
		scheduleRepository,
		bookingRepository,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		bookingRepository,
		ruleRepository,
		tableRepository,
		txMgr,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		mailer,
		txMgr,
		log,
	)

	moveBookingUseCase := moveBookingUC.NewUseCase(
		bookingRepository,
		tableRepository,
		ruleRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	cancelHold := cancelHoldHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	manageCancel := manageCancelHandler.NewHandler(bookingSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	moveBooking := moveBookingHandler.NewHandler(moveBookingUseCase, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	manageTables := manageTablesHandler.NewHandler(tablesSvc, log)
	manageSettings := manageSettingsHandler.NewHandler(settingsSvc, log)
	manageWaitlist := manageWaitlistHandler.NewHandler(waitlistSvc, log)

	// Запускаем фоновые воркеры
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	waitlistWorker := waitlistnotifier.NewWorker(
		waitlistRepository,
		getAvailabilityUseCase,
		mailer,
		time.Duration(cfg.Workers.WaitlistIntervalMinutes)*time.Minute,
		log,
	)
	go waitlistWorker.Start(workerCtx)

	reminderWorker := reminder.NewWorker(
		bookingRepository,
		customerRepository,
		mailer,
		time.Duration(cfg.Workers.ReminderIntervalMinutes)*time.Minute,
		log,
	)
	go reminderWorker.Start(workerCtx)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (гостевой поток бронирования)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Холд столов на слот
	api.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)

	// Отмена холда до подтверждения
	api.HandleFunc("/holds/{bookingId}/cancel", cancelHold.Handle).Methods(http.MethodPost)

	// Подтверждение холда контактными данными гостя
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Самостоятельная отмена по manage-токену из письма
	api.HandleFunc("/manage/{token}/cancel", manageCancel.Handle).Methods(http.MethodPost)

	// Постановка в лист ожидания
	api.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (для персонала, требуют X-Staff-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.StaffAuth)

	// --- Бронирования ---
	// Список бронирований на день
	admin.HandleFunc("/bookings", getDayBookings.Handle).Methods(http.MethodGet)

	// Перенос бронирования на другой стол или время
	admin.HandleFunc("/bookings/{bookingId}/move", moveBooking.Handle).Methods(http.MethodPost)

	// --- Столы ---
	admin.HandleFunc("/tables", manageTables.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/tables", manageTables.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/tables/{tableId}", manageTables.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/tables/{tableId}", manageTables.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/tables/{tableId}/deactivate", manageTables.HandleDeactivate).Methods(http.MethodPost)
	admin.HandleFunc("/tables/{tableId}/activate", manageTables.HandleActivate).Methods(http.MethodPost)

	// --- Настройки ---
	admin.HandleFunc("/settings/rule", manageSettings.HandleGetRule).Methods(http.MethodGet)
	admin.HandleFunc("/settings/rule", manageSettings.HandleUpdateRule).Methods(http.MethodPut)
	admin.HandleFunc("/settings/hours", manageSettings.HandleGetHours).Methods(http.MethodGet)
	admin.HandleFunc("/settings/hours", manageSettings.HandleReplaceHours).Methods(http.MethodPut)
	admin.HandleFunc("/settings/special-hours", manageSettings.HandleUpsertSpecialHours).Methods(http.MethodPut)
	admin.HandleFunc("/settings/blackouts", manageSettings.HandleCreateBlackout).Methods(http.MethodPost)
	admin.HandleFunc("/settings/blackouts/{blackoutId}", manageSettings.HandleDeleteBlackout).Methods(http.MethodDelete)

	// --- Лист ожидания ---
	admin.HandleFunc("/waitlist", manageWaitlist.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/waitlist/{entryId}/cancel", manageWaitlist.HandleCancel).Methods(http.MethodPost)

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

	// Останавливаем фоновые воркеры
	stopWorkers()

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
