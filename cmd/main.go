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
	"github.com/redis/go-redis/v9"

	advanceRefundHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/advance_refund"
	cancelAppointmentHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/check_availability"
	completeAppointmentHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/complete_appointment"
	confirmPaymentHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/confirm_payment"
	createAppointmentHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/create_appointment"
	declareUnavailabilityHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/declare_unavailability"
	deleteUnavailabilityHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/delete_unavailability"
	getAppointmentHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/get_appointment"
	getClientAppointmentsHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/get_client_appointments"
	getRefundHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/get_refund"
	getScheduleHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/get_schedule"
	listRefundsHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/list_refunds"
	listUnavailabilityDaysHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/list_unavailability_days"
	rejectPaymentHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/reject_payment"
	submitPaymentReferenceHandler "github.com/BlackLex29/RLfursure-sub000/internal/api/handlers/submit_payment_reference"
	"github.com/BlackLex29/RLfursure-sub000/internal/api/middleware"
	"github.com/BlackLex29/RLfursure-sub000/internal/config"
	"github.com/BlackLex29/RLfursure-sub000/internal/infra/events"
	appointmentRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/appointment"
	refundRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/refund"
	unavailabilityRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/unavailability"
	medicalRecordsClient "github.com/BlackLex29/RLfursure-sub000/internal/integrations/medicalrecords"
	petRegistryClient "github.com/BlackLex29/RLfursure-sub000/internal/integrations/petregistry"
	appointmentsService "github.com/BlackLex29/RLfursure-sub000/internal/service/appointments"
	refundsService "github.com/BlackLex29/RLfursure-sub000/internal/service/refunds"
	unavailabilityService "github.com/BlackLex29/RLfursure-sub000/internal/service/unavailability"
	checkAvailabilityUC "github.com/BlackLex29/RLfursure-sub000/internal/usecase/check_availability"
	declareUnavailabilityUC "github.com/BlackLex29/RLfursure-sub000/internal/usecase/declare_unavailability"
	reserveAppointmentUC "github.com/BlackLex29/RLfursure-sub000/internal/usecase/reserve_appointment"
	"github.com/BlackLex29/RLfursure-sub000/pkg/dbmetrics"
	"github.com/BlackLex29/RLfursure-sub000/pkg/logger"
	"github.com/BlackLex29/RLfursure-sub000/pkg/metrics"
	"github.com/BlackLex29/RLfursure-sub000/pkg/simpletxmanager"
	"github.com/BlackLex29/RLfursure-sub000/pkg/txmanager"
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

	log.Info("Starting FurSure-AppointmentService...")
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

	// Подключаемся к redis для ленты изменений (если включен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		log.Info("Redis disabled, events will not be published")
	}
	publisher := events.NewPublisher(redisClient, metricsCollector, log)

	// Инициализируем интеграционных клиентов
	petClient := petRegistryClient.NewClient(
		cfg.PetService.URL,
		time.Duration(cfg.PetService.Timeout)*time.Second,
		log,
	)
	medClient := medicalRecordsClient.NewClient(
		cfg.MedicalRecords.URL,
		time.Duration(cfg.MedicalRecords.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PetService=%s timeout=%ds, MedicalRecords=%s timeout=%ds)",
		cfg.PetService.URL, cfg.PetService.Timeout, cfg.MedicalRecords.URL, cfg.MedicalRecords.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository    *appointmentRepo.Repository
		unavailabilityRepository *unavailabilityRepo.Repository
		refundRepository         *refundRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		unavailabilityRepository = unavailabilityRepo.NewRepository(wrappedDB)
		refundRepository = refundRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		unavailabilityRepository = unavailabilityRepo.NewRepository(db)
		refundRepository = refundRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		refundRepository,
		medClient,
		publisher,
		txMgr,
		log,
	)
	refundSvc := refundsService.NewService(
		refundRepository,
		publisher,
		log,
	)
	unavailabilitySvc := unavailabilityService.NewService(
		unavailabilityRepository,
		log,
	)

	// Инициализируем use cases
	reserveAppointmentUseCase := reserveAppointmentUC.NewUseCase(
		appointmentRepository,
		unavailabilityRepository,
		petClient,
		publisher,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		appointmentRepository,
		unavailabilityRepository,
		log,
	)
	declareUnavailabilityUseCase := declareUnavailabilityUC.NewUseCase(
		unavailabilityRepository,
		publisher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	listUnavailabilityDays := listUnavailabilityDaysHandler.NewHandler(unavailabilitySvc, log)
	createAppointment := createAppointmentHandler.NewHandler(reserveAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSchedule := getScheduleHandler.NewHandler(appointmentSvc, log)
	submitPaymentReference := submitPaymentReferenceHandler.NewHandler(appointmentSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(appointmentSvc, log)
	rejectPayment := rejectPaymentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	declareUnavailability := declareUnavailabilityHandler.NewHandler(declareUnavailabilityUseCase, log)
	deleteUnavailability := deleteUnavailabilityHandler.NewHandler(unavailabilitySvc, log)
	listRefunds := listRefundsHandler.NewHandler(refundSvc, log)
	getRefund := getRefundHandler.NewHandler(refundSvc, log)
	advanceRefund := advanceRefundHandler.NewHandler(refundSvc, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Дни недоступности ветеринаров за период (публичный календарь)
	api.HandleFunc("/unavailability", listUnavailabilityDays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Отправка референса GCash платежа владельцем записи
	protected.HandleFunc("/appointments/{appointmentId}/payment/reference",
		submitPaymentReference.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// STAFF ROUTES (требуют X-User-Role: staff)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	// Расписание клиники на дату или период
	staff.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Верификация GCash платежа
	staff.HandleFunc("/appointments/{appointmentId}/payment/confirm", confirmPayment.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{appointmentId}/payment/reject", rejectPayment.Handle).Methods(http.MethodPatch)

	// Завершение приёма
	staff.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// Управление недоступностью ветеринаров
	staff.HandleFunc("/unavailability", declareUnavailability.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/unavailability/{recordId}", deleteUnavailability.Handle).Methods(http.MethodDelete)

	// Обработка заявок на возврат
	staff.HandleFunc("/refunds", listRefunds.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/refunds/{refundId}", getRefund.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/refunds/{refundId}/advance", advanceRefund.Handle).Methods(http.MethodPatch)

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
