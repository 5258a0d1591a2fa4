package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripflow/config"
	"github.com/Domenick1991/tripflow/internal/bootstrap"
	"github.com/Domenick1991/tripflow/internal/catalog"
	"github.com/Domenick1991/tripflow/internal/kafka"
	"github.com/Domenick1991/tripflow/internal/repository"
	"github.com/Domenick1991/tripflow/internal/service/auth"
	"github.com/Domenick1991/tripflow/internal/service/checkout"
	"github.com/Domenick1991/tripflow/internal/service/ledger"
	"github.com/Domenick1991/tripflow/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := newLedgerStore(ctx, cfg)

	var ledgerOpts []ledger.ServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		ledgerOpts = append(ledgerOpts,
			ledger.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			ledger.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	ledgerService := ledger.NewService(store, ledgerOpts...)

	if err := ledgerService.EnsureSeed(ctx); err != nil {
		log.Fatalf("seed ledger: %v", err)
	}

	var offersCache catalog.Cache
	var sessions session.Store = session.NewMemoryStore(cfg.Session.TTL())
	if cfg.Redis.Addr != "" {
		offersCache = catalog.NewRedisCache(cfg.Redis, cfg.Catalog.CacheTTL())
		sessions = session.NewRedisStore(cfg.Redis, cfg.Session.TTL())
	}

	catalogService := catalog.NewService(catalog.DemoOffers(), offersCache)
	authService := auth.NewService(ledgerService, sessions)
	checkoutService := checkout.NewService(catalogService, ledgerService, cfg.HTTP.BaseURL, cfg.Checkout.PaymentDuration(), cfg.Checkout.MaxQuantity)

	slog.Info("starting tripflow", "address", cfg.HTTP.Address, "storage", cfg.Storage.Driver)
	if err := bootstrap.Run(ctx, cfg, catalogService, ledgerService, authService, checkoutService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func loadConfig() *config.Config {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		if _, err := os.Stat("config.yaml"); err != nil {
			slog.Info("no config file, using defaults")
			return config.Default()
		}
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

func newLedgerStore(ctx context.Context, cfg *config.Config) repository.LedgerStore {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Storage.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		store, err := repository.NewPGLedgerStore(ctx, pool)
		if err != nil {
			log.Fatalf("init postgres store: %v", err)
		}
		return store
	case "memory":
		return repository.NewMemoryLedgerStore()
	default:
		store, err := repository.NewSQLiteLedgerStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("open sqlite store: %v", err)
		}
		return store
	}
}
