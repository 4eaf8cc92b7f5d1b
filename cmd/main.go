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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	appointmentActionsHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/appointment_actions"
	cancelAppointmentHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/complete_appointment"
	deleteDoctorScheduleHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/delete_doctor_schedule"
	getAppointmentHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/get_available_slots"
	getDoctorAppointmentsHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/get_doctor_appointments"
	getDoctorScheduleHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/get_doctor_schedule"
	sweepHoldsHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/sweep_holds"
	updateDoctorScheduleHandler "github.com/clinicdesk/reservation-service/internal/api/handlers/update_doctor_schedule"
	"github.com/clinicdesk/reservation-service/internal/api/middleware"
	"github.com/clinicdesk/reservation-service/internal/config"
	appointmentRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/appointment"
	holdRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/hold"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
	clinicServiceClient "github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
	reminderServiceClient "github.com/clinicdesk/reservation-service/internal/integrations/reminderservice"
	appointmentsService "github.com/clinicdesk/reservation-service/internal/service/appointments"
	sweeperService "github.com/clinicdesk/reservation-service/internal/service/sweeper"
	bookAppointmentUC "github.com/clinicdesk/reservation-service/internal/usecase/book_appointment"
	createHoldUC "github.com/clinicdesk/reservation-service/internal/usecase/create_hold"
	getAvailableSlotsUC "github.com/clinicdesk/reservation-service/internal/usecase/get_available_slots"
	releaseHoldUC "github.com/clinicdesk/reservation-service/internal/usecase/release_hold"
	rescheduleAppointmentUC "github.com/clinicdesk/reservation-service/internal/usecase/reschedule_appointment"
	"github.com/clinicdesk/reservation-service/pkg/dbmetrics"
	"github.com/clinicdesk/reservation-service/pkg/logger"
	"github.com/clinicdesk/reservation-service/pkg/metrics"
	"github.com/clinicdesk/reservation-service/pkg/simpletxmanager"
	"github.com/clinicdesk/reservation-service/pkg/txmanager"
)

func main() {
	// .env опционален, локальная разработка
	_ = godotenv.Load()

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

	log.Info("Starting reservation-service...")
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

	// Инициализируем интеграционных клиентов
	clinicClient := clinicServiceClient.NewClient(
		cfg.ClinicService.URL,
		time.Duration(cfg.ClinicService.Timeout)*time.Second,
		log,
	)
	reminderClient := reminderServiceClient.NewClient(
		cfg.ReminderService.URL,
		time.Duration(cfg.ReminderService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ClinicService=%s timeout=%ds, ReminderService=%s timeout=%ds)",
		cfg.ClinicService.URL, cfg.ClinicService.Timeout, cfg.ReminderService.URL, cfg.ReminderService.Timeout)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		holdRepository        *holdRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		holdRepository = holdRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		holdRepository = holdRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	var holdsCreatedCounter, holdsSweptCounter prometheus.Counter
	if metricsCollector != nil {
		holdsCreatedCounter = metricsCollector.HoldsCreated
		holdsSweptCounter = metricsCollector.HoldsSwept
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	sweeperSvc := sweeperService.NewService(holdRepository, holdsSweptCounter, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		holdRepository,
		scheduleRepository,
		clinicClient,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		holdRepository,
		appointmentRepository,
		scheduleRepository,
		clinicClient,
		txMgr,
		cfg.Holds.DefaultLeaseMinutes,
		holdsCreatedCounter,
		log,
	)

	releaseHoldUseCase := releaseHoldUC.NewUseCase(holdRepository, log)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		holdRepository,
		appointmentRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		holdRepository,
		appointmentRepository,
		reminderClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	appointmentActions := appointmentActionsHandler.NewHandler(
		createHoldUseCase,
		releaseHoldUseCase,
		bookAppointmentUseCase,
		rescheduleAppointmentUseCase,
		log,
	)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	getDoctorSchedule := getDoctorScheduleHandler.NewHandler(scheduleRepository, log)
	updateDoctorSchedule := updateDoctorScheduleHandler.NewHandler(scheduleRepository, clinicClient, log)
	deleteDoctorSchedule := deleteDoctorScheduleHandler.NewHandler(scheduleRepository, log)
	sweepHolds := sweepHoldsHandler.NewHandler(sweeperSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты доктора на дату
	r.HandleFunc("/appointments", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Рабочее расписание доктора
	r.HandleFunc("/clinics/{clinicId}/doctors/{doctorId}/schedule",
		getDoctorSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Действия над слотами и записями: block / unblock / book / reschedule
	protected.HandleFunc("/appointments", appointmentActions.Handle).Methods(http.MethodPost)

	// Запись по ID
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// Завершение записи
	protected.HandleFunc("/appointments/{id}/complete", completeAppointment.Handle).Methods(http.MethodPost)

	// Список записей доктора с фильтрацией по периоду и статусу
	protected.HandleFunc("/clinics/{clinicId}/doctors/{doctorId}/appointments",
		getDoctorAppointments.Handle).Methods(http.MethodGet)

	// Обновление расписания доктора
	protected.HandleFunc("/clinics/{clinicId}/doctors/{doctorId}/schedule",
		updateDoctorSchedule.Handle).Methods(http.MethodPut)

	// Сброс расписания доктора к расписанию по умолчанию
	protected.HandleFunc("/clinics/{clinicId}/doctors/{doctorId}/schedule",
		deleteDoctorSchedule.Handle).Methods(http.MethodDelete)

	// Ручной запуск уборки истёкших холдов
	protected.HandleFunc("/maintenance/sweep", sweepHolds.Handle).Methods(http.MethodPost)

	// Планировщик уборки истёкших холдов
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Holds.SweepSchedule, func() {
		if _, err := sweeperSvc.Sweep(context.Background()); err != nil {
			log.Error("Scheduled sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Failed to schedule hold sweeper: %v", err)
	}
	scheduler.Start()
	log.Info("Hold sweeper scheduled with %q", cfg.Holds.SweepSchedule)

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

	// Останавливаем планировщик и сбор метрик
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

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

	log.Info("Server exited")
}
