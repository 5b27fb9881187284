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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/deskhive/RoomBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/deskhive/RoomBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/deskhive/RoomBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/deskhive/RoomBookingService/internal/api/handlers/get_user_bookings"
	listAvailableRoomsHandler "github.com/deskhive/RoomBookingService/internal/api/handlers/list_available_rooms"
	"github.com/deskhive/RoomBookingService/internal/api/middleware"
	"github.com/deskhive/RoomBookingService/internal/config"
	"github.com/deskhive/RoomBookingService/internal/infra/cache"
	"github.com/deskhive/RoomBookingService/internal/infra/events"
	bookingRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/room"
	rosterServiceClient "github.com/deskhive/RoomBookingService/internal/integrations/rosterservice"
	"github.com/deskhive/RoomBookingService/internal/service/bookings"
	"github.com/deskhive/RoomBookingService/internal/slotcalendar"
	createBookingUC "github.com/deskhive/RoomBookingService/internal/usecase/create_booking"
	listAvailableRoomsUC "github.com/deskhive/RoomBookingService/internal/usecase/list_available_rooms"
	"github.com/deskhive/RoomBookingService/pkg/dbmetrics"
	"github.com/deskhive/RoomBookingService/pkg/logger"
	"github.com/deskhive/RoomBookingService/pkg/metrics"
	"github.com/deskhive/RoomBookingService/pkg/simpletxmanager"
	"github.com/deskhive/RoomBookingService/pkg/txmanager"
)

func main() {
	// Переменные окружения из .env (секреты поверх config.toml)
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

	log.Info("Starting RoomBookingService...")
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

	// Календарь слотов из конфигурации
	calendar, err := slotcalendar.New(cfg.Calendar.OpenHour, cfg.Calendar.CloseHour)
	if err != nil {
		log.Fatal("Failed to build slot calendar: %v", err)
	}
	log.Info("Slot calendar initialized (%02d:00-%02d:00, %d slots)",
		cfg.Calendar.OpenHour, cfg.Calendar.CloseHour, len(calendar.Slots()))

	// Клиент RosterService (справочник команд)
	rosterClient := rosterServiceClient.NewClient(
		cfg.RosterService.URL,
		time.Duration(cfg.RosterService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (RosterService=%s timeout=%ds)",
		cfg.RosterService.URL, cfg.RosterService.Timeout)

	// Кеш доступности (опционален: при недоступном Redis работаем без кеша)
	var availCache *cache.Cache
	if cfg.Cache.Enabled {
		availCache, err = cache.New(
			cfg.Cache.Addr,
			cfg.Cache.Password,
			cfg.Cache.DB,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
		if err != nil {
			log.Warn("Availability cache disabled: %v", err)
			availCache = nil
		} else {
			defer availCache.Close()
			log.Info("Availability cache connected (redis=%s)", cfg.Cache.Addr)
		}
	}

	// Публикация событий бронирования (опциональна по той же схеме)
	var eventsPub *events.Publisher
	if cfg.Events.Enabled {
		eventsPub, err = events.New(cfg.Events.URL, log)
		if err != nil {
			log.Warn("Event publishing disabled: %v", err)
			eventsPub = nil
		} else {
			defer eventsPub.Close()
			log.Info("Event publisher connected (rabbitmq)")
		}
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		roomRepository    *roomRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Опциональные зависимости передаются интерфейсными переменными,
	// чтобы не завернуть типизированный nil в непустой интерфейс
	var (
		createEvents createBookingUC.EventPublisher
		createCache  createBookingUC.AvailabilityCache
		listCache    listAvailableRoomsUC.Cache
		svcEvents    bookings.EventPublisher
		svcCache     bookings.AvailabilityCache
	)
	if eventsPub != nil {
		createEvents = eventsPub
		svcEvents = eventsPub
	}
	if availCache != nil {
		createCache = availCache
		listCache = availCache
		svcCache = availCache
	}

	// Инициализируем сервисы и use cases
	bookingSvc := bookings.NewService(
		bookingRepository,
		roomRepository,
		svcEvents,
		svcCache,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		rosterClient,
		txMgr,
		createEvents,
		createCache,
		log,
	)

	listAvailableRoomsUseCase := listAvailableRoomsUC.NewUseCase(
		roomRepository,
		bookingRepository,
		listCache,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, calendar, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listAvailableRooms := listAvailableRoomsHandler.NewHandler(listAvailableRoomsUseCase, calendar, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все ручки API требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Комнаты ---
	api.HandleFunc("/rooms/available", listAvailableRooms.Handle).Methods(http.MethodGet)

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
