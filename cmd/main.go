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

	cancelReservationHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/get_user_reservations"
	getVenueConfigHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/get_venue_config"
	getVenueReservationsHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/get_venue_reservations"
	previewShiftHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/preview_shift"
	updateReservationStatusHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/update_reservation_status"
	updateVenueConfigHandler "github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers/update_venue_config"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/api/middleware"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/config"
	configRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/config"
	reservationRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/reservation"
	venueServiceClient "github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
	configService "github.com/zeusvenues/Zeus-SchedulingService/internal/service/config"
	reservationsService "github.com/zeusvenues/Zeus-SchedulingService/internal/service/reservations"
	checkAvailabilityUC "github.com/zeusvenues/Zeus-SchedulingService/internal/usecase/check_availability"
	createReservationUC "github.com/zeusvenues/Zeus-SchedulingService/internal/usecase/create_reservation"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/dbmetrics"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/logger"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/metrics"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/simpletxmanager"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/txmanager"
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

	log.Info("Starting Zeus-SchedulingService...")
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

	// Инициализируем интеграционного клиента
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (VenueService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		configRepository      *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		configRepository,
		venueClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		venueClient,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		configRepository,
		venueClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		venueClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getVenueReservations := getVenueReservationsHandler.NewHandler(reservationSvc, log)
	previewShift := previewShiftHandler.NewHandler(reservationSvc, log)
	getVenueConfig := getVenueConfigHandler.NewHandler(configSvc, log)
	updateVenueConfig := updateVenueConfigHandler.NewHandler(configSvc, log)

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

	// Проверка доступности слота с конфликтами и альтернативами
	api.HandleFunc("/venues/{venueId}/spaces/{spaceId}/availability-check",
		checkAvailability.Handle).Methods(http.MethodPost)

	// Получение конфигурации расписания площадки
	api.HandleFunc("/venues/{venueId}/config",
		getVenueConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (разового или блочного)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для менеджеров)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для менеджеров) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/reservations", getVenueReservations.Handle).Methods(http.MethodGet)

	// Обновление конфигурации расписания
	protected.HandleFunc("/venues/{venueId}/config", updateVenueConfig.Handle).Methods(http.MethodPut)

	// Предпросмотр сдвига расписания пространства
	protected.HandleFunc("/venues/{venueId}/spaces/{spaceId}/shift-preview", previewShift.Handle).Methods(http.MethodPost)

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
