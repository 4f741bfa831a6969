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

	cancelReservationHandler "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers/get_availability"
	getReservationHandler "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers/get_user_reservations"
	getVenueReservationsHandler "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers/get_venue_reservations"
	updatePaymentHandler "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers/update_payment"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/middleware"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/config"
	reservationRepo "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/infra/storage/reservation"
	venueServiceClient "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
	maintenanceService "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/service/maintenance"
	reservationsService "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/service/reservations"
	createReservationUC "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/usecase/get_availability"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/logger"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/metrics"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/txmanager"
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

	log.Info("Starting Xperience-Gaming reservation service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем клиент VenueService
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (VenueService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Инициализируем репозиторий и transaction manager
	repository := reservationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		repository,
		venueClient,
		log,
	)

	maintenanceSvc := maintenanceService.NewService(
		repository,
		time.Duration(cfg.Maintenance.PaymentTimeout)*time.Minute,
		cfg.Maintenance.ExpireSchedule,
		cfg.Maintenance.CompleteSchedule,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		repository,
		venueClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		repository,
		venueClient,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updatePayment := updatePaymentHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getVenueReservations := getVenueReservationsHandler.NewHandler(reservationSvc, log)

	// Запускаем фоновые задачи обслуживания броней
	if err := maintenanceSvc.Start(); err != nil {
		log.Fatal("Failed to start maintenance scheduler: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
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

	// Расчёт свободных юнитов заведения на интервал
	api.HandleFunc("/venues/{venueId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Создание брони
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Платёжный переход брони
	protected.HandleFunc("/reservations/{reservationId}/payment", updatePayment.Handle).Methods(http.MethodPatch)

	// История броней пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление заведением (для владельцев) ---
	// Список броней заведения
	protected.HandleFunc("/venues/{venueId}/reservations", getVenueReservations.Handle).Methods(http.MethodGet)

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

	// Останавливаем планировщик обслуживания
	maintenanceSvc.Stop()
	log.Info("Maintenance scheduler stopped")

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
