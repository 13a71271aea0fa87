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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/barber-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/barber-booking/internal/api/handlers/create_booking"
	evaluateAvailabilityHandler "github.com/m04kA/barber-booking/internal/api/handlers/evaluate_availability"
	getAvailableSlotsHandler "github.com/m04kA/barber-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/barber-booking/internal/api/handlers/get_booking"
	getDayCapacityHandler "github.com/m04kA/barber-booking/internal/api/handlers/get_day_capacity"
	getShopRulesHandler "github.com/m04kA/barber-booking/internal/api/handlers/get_shop_rules"
	listShopBookingsHandler "github.com/m04kA/barber-booking/internal/api/handlers/list_shop_bookings"
	resetShopRulesHandler "github.com/m04kA/barber-booking/internal/api/handlers/reset_shop_rules"
	updateBookingStatusHandler "github.com/m04kA/barber-booking/internal/api/handlers/update_booking_status"
	updateShopRulesHandler "github.com/m04kA/barber-booking/internal/api/handlers/update_shop_rules"
	"github.com/m04kA/barber-booking/internal/api/middleware"
	"github.com/m04kA/barber-booking/internal/config"
	rulesCache "github.com/m04kA/barber-booking/internal/infra/cache/rules"
	bookingRepo "github.com/m04kA/barber-booking/internal/infra/storage/booking"
	rulesRepo "github.com/m04kA/barber-booking/internal/infra/storage/rules"
	catalogServiceClient "github.com/m04kA/barber-booking/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/barber-booking/internal/service/bookings"
	rulesService "github.com/m04kA/barber-booking/internal/service/rules"
	createBookingUC "github.com/m04kA/barber-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/barber-booking/internal/usecase/get_available_slots"
	getDayCapacityUC "github.com/m04kA/barber-booking/internal/usecase/get_day_capacity"
	"github.com/m04kA/barber-booking/pkg/dbmetrics"
	"github.com/m04kA/barber-booking/pkg/logger"
	"github.com/m04kA/barber-booking/pkg/metrics"
	"github.com/m04kA/barber-booking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting barber-booking...")
	log.Info("Configuration loaded from %s", configPath)

	// Правила по умолчанию и часовой пояс барбершопов (проверены в config.Validate)
	baseRules, err := cfg.Booking.Rules()
	if err != nil {
		log.Fatal("Invalid booking rules: %v", err)
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	log.Info("Booking rules: days=%s hours=%02d-%02d step=%dm tz=%s",
		baseRules.WorkingDays, baseRules.StartHour, baseRules.EndHour, baseRules.IntervalMinutes, location)

	// Инициализируем метрики (если включены). Все методы *metrics.Metrics безопасны для nil
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш правил (если настроен Redis). Недоступный Redis не мешает старту
	var cache rulesService.RulesCache
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, rules cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache = rulesCache.New(rdb, cfg.Redis.TTLDuration())
			log.Info("Rules cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTLDuration())
		}
		cancel()
	}

	// Клиент каталога услуг (если настроен)
	var (
		slotsCatalog  getAvailableSlotsUC.CatalogClient
		createCatalog createBookingUC.CatalogClient
	)
	if cfg.CatalogService.URL != "" {
		catalogClient := catalogServiceClient.NewClient(
			cfg.CatalogService.URL,
			time.Duration(cfg.CatalogService.Timeout)*time.Second,
			log,
		)
		slotsCatalog = catalogClient
		createCatalog = catalogClient
		log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)
	} else {
		log.Warn("Catalog service URL is not set, service durations come from requests and rules")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	rulesRepository := rulesRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	rulesSvc := rulesService.NewService(rulesRepository, cache, baseRules, metricsCollector, log)
	bookingSvc := bookingsService.NewService(bookingRepository, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		rulesSvc,
		createCatalog,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		rulesSvc,
		slotsCatalog,
		metricsCollector,
		location,
		log,
	)
	getDayCapacityUseCase := getDayCapacityUC.NewUseCase(
		bookingRepository,
		rulesSvc,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getDayCapacity := getDayCapacityHandler.NewHandler(getDayCapacityUseCase, log)
	evaluateAvailability := evaluateAvailabilityHandler.NewHandler(baseRules, location, metricsCollector, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listShopBookings := listShopBookingsHandler.NewHandler(bookingSvc, log)
	getShopRules := getShopRulesHandler.NewHandler(rulesSvc, log)
	updateShopRules := updateShopRulesHandler.NewHandler(rulesSvc, log)
	resetShopRules := resetShopRulesHandler.NewHandler(rulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.RPS > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy).Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d, trust proxy %t", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
	}

	// --- Доступность ---
	api.HandleFunc("/shops/{shopId}/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/barbers/{barberId}/capacity",
		getDayCapacity.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/evaluate", evaluateAvailability.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/shops/{shopId}/bookings", listShopBookings.Handle).Methods(http.MethodGet)

	// --- Правила барбершопа ---
	api.HandleFunc("/shops/{shopId}/rules", getShopRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/rules", updateShopRules.Handle).Methods(http.MethodPut)
	api.HandleFunc("/shops/{shopId}/rules", resetShopRules.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
