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

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/api"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	bookingStorage "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/amqppublisher"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/redispublisher"
	"github.com/m04kA/SMC-ParkingService/internal/service/broadcast"
	"github.com/m04kA/SMC-ParkingService/internal/service/expiry"
	"github.com/m04kA/SMC-ParkingService/internal/service/ledger"
	"github.com/m04kA/SMC-ParkingService/internal/service/occupancy"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

func main() {
	startedAt := time.Now()

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

	log.Info("Starting SMC-ParkingService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище реестра
	store, closeStore := openStore(cfg, log)
	defer closeStore()

	hours, _ := cfg.Booking.Hours()
	location, _ := cfg.Booking.Location()
	layout := cfg.Board.Layout()

	// Сервисы
	var (
		schedulerMetrics expiry.Metrics
		hubMetrics       broadcast.Metrics
		serviceMetrics   reservations.Metrics
	)
	if metricsCollector != nil {
		schedulerMetrics = metricsCollector
		hubMetrics = metricsCollector
		serviceMetrics = metricsCollector
	}

	hub := broadcast.NewHub(broadcast.DefaultQueueSize, log, hubMetrics)
	scheduler := expiry.NewScheduler(schedulerMetrics)
	svc := reservations.NewService(
		ledger.New(store, log),
		occupancy.NewStore(layout, time.Now()),
		scheduler,
		hub,
		reservations.Options{
			PaymentWindow: cfg.Booking.PaymentWindow(),
			ClockSkew:     cfg.Booking.ClockSkew(),
			Hours:         hours,
			Location:      location,
		},
		log,
		serviceMetrics,
	)

	if err := svc.Start(context.Background()); err != nil {
		log.Fatal("Failed to start reservation service: %v", err)
	}
	log.Info("Reservation service started (buildings=%v, slots=%d, payment_window=%s, hours=%s-%s, tz=%s)",
		layout.Buildings, layout.SlotsPerBuilding, cfg.Booking.PaymentWindow(),
		cfg.Booking.OpenTime, cfg.Booking.CloseTime, location)

	// Внешние получатели событий
	sinksCtx, stopSinks := context.WithCancel(context.Background())
	defer stopSinks()
	startSinks(sinksCtx, cfg, svc, log)

	// HTTP
	handler := api.NewRouter(api.Deps{
		Service:        svc,
		Logger:         log,
		Metrics:        metricsCollector,
		MetricsPath:    cfg.Metrics.Path,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StartedAt:      startedAt,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Сначала таймеры: после Stop просроченные бронирования останутся pending и будут обработаны при следующем старте
	svc.Stop()
	stopSinks()
	hub.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// openStore выбирает хранилище реестра по storage.driver
func openStore(cfg *config.Config, log *logger.Logger) (ledger.Store, func()) {
	switch cfg.Storage.Driver {
	case "postgres":
		dbCfg := cfg.Storage.Database

		db, err := sql.Open("postgres", dbCfg.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(dbCfg.ConnMaxLifetime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}

		store := bookingStorage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare bookings table: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", dbCfg.Host, dbCfg.Port, dbCfg.DBName)

		return store, func() { _ = db.Close() }

	default:
		store := bookingStorage.NewFileStore(cfg.Storage.File)
		log.Info("Bookings are stored in file %s", store.Path())
		return store, func() {}
	}
}

// startSinks держит AMQP и Redis подписанными на поток событий
// Недоступный брокер не мешает запуску: подключение повторяется в фоне, пока ctx не отменён
func startSinks(ctx context.Context, cfg *config.Config, svc *reservations.Service, log *logger.Logger) {
	if amqpCfg := cfg.Events.AMQP; amqpCfg.Enabled {
		dial := func(context.Context) (broadcast.Writer, error) {
			return amqppublisher.Dial(amqpCfg.URL, amqpCfg.Exchange, log)
		}
		go broadcast.KeepSubscribed(ctx, svc, "amqp:"+amqpCfg.Exchange, dial, broadcast.DefaultSinkRetry, log)
		log.Info("AMQP sink enabled: exchange=%s", amqpCfg.Exchange)
	}

	if redisCfg := cfg.Events.Redis; redisCfg.Enabled {
		opts := redispublisher.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
			Channel:  redisCfg.Channel,
		}
		dial := func(ctx context.Context) (broadcast.Writer, error) {
			return redispublisher.Connect(ctx, opts, log)
		}
		go broadcast.KeepSubscribed(ctx, svc, "redis:"+redisCfg.Channel, dial, broadcast.DefaultSinkRetry, log)
		log.Info("Redis sink enabled: channel=%s", redisCfg.Channel)
	}
}
