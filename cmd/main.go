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

	bookVisitHandler "github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers/book_visit"
	cancelBookingHandler "github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers/get_booking"
	getWorkerBookingsHandler "github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers/get_worker_bookings"
	rescheduleBookingHandler "github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers/reschedule_booking"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/middleware"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/config"
	bookingRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/booking"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	catalogRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/catalog"
	workerRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/worker"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/observer"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	bookingsService "github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings"
	commitService "github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
	bookVisitUC "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/book_visit"
	createBookingUC "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/reschedule_booking"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/daylock"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/dbmetrics"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/logger"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/metrics"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/txmanager"
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

	log.Info("Starting salon scheduling service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Без метрик обертка только прокидывает транзакцию через контекст
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Проверяем соединение
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = wrappedDB.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка дня мастера в Redis (опционально)
	var locker *daylock.Locker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisCtx, cancelRedis := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(redisCtx).Err()
		cancelRedis()
		if err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		locker = daylock.New(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second)
		log.Info("Day locks enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.LockTTL)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	workerRepository := workerRepo.NewRepository(wrappedDB)

	// Движок расписания
	engine := scheduling.NewEngine(observer.New(log, metricsCollector))

	// Инициализируем сервисы
	committer := commitService.NewService(
		bookingRepository,
		workerRepository,
		txMgr,
		locker,
		engine,
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		businessRepository,
		catalogRepository,
		workerRepository,
		engine,
		getAvailableSlotsUC.Settings{
			DefaultGranularity: cfg.Scheduling.DefaultGranularity,
			DefaultTimezone:    cfg.Scheduling.DefaultTimezone,
			MaxAdvanceDays:     cfg.Scheduling.MaxAdvanceDays,
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		businessRepository,
		catalogRepository,
		committer,
		createBookingUC.Settings{
			DefaultGranularity: cfg.Scheduling.DefaultGranularity,
			DefaultTimezone:    cfg.Scheduling.DefaultTimezone,
			MaxAdvanceDays:     cfg.Scheduling.MaxAdvanceDays,
		},
		log,
	)

	bookVisitUseCase := bookVisitUC.NewUseCase(
		businessRepository,
		catalogRepository,
		committer,
		bookVisitUC.Settings{
			DefaultGranularity: cfg.Scheduling.DefaultGranularity,
			DefaultTimezone:    cfg.Scheduling.DefaultTimezone,
			MaxAdvanceDays:     cfg.Scheduling.MaxAdvanceDays,
		},
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		catalogRepository,
		committer,
		rescheduleBookingUC.Settings{
			DefaultGranularity: cfg.Scheduling.DefaultGranularity,
			DefaultTimezone:    cfg.Scheduling.DefaultTimezone,
			MaxAdvanceDays:     cfg.Scheduling.MaxAdvanceDays,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	bookVisit := bookVisitHandler.NewHandler(bookVisitUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getWorkerBookings := getWorkerBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1/businesses/{businessId}").Subrouter()

	// --- Свободное время ---
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Запись ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/visits", bookVisit.Handle).Methods(http.MethodPost)

	// --- Управление бронированием ---
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Календарь мастера ---
	api.HandleFunc("/workers/{workerId}/bookings", getWorkerBookings.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
