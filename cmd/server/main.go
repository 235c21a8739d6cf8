package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"cna/internal/audit"
	httpapi "cna/internal/http"
	"cna/internal/narrative"
	"cna/internal/platform/config"
	"cna/internal/platform/httpserver"
	"cna/internal/platform/kafka"
	"cna/internal/platform/logger"
	"cna/internal/platform/redis"
	"cna/internal/workforce/handler"
	wfmetrics "cna/internal/workforce/metrics"
	"cna/internal/workforce/ports"
	"cna/internal/workforce/service"
	"cna/internal/workforce/store/dataset"
	"cna/internal/workforce/store/snapshot"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Dataset store: postgres when configured, in-memory otherwise.
	var datasets ports.DatasetStore
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			return err
		}
		defer db.Close()
		if err := dataset.Migrate(ctx, db); err != nil {
			log.Error("migrate database", "error", err)
			return err
		}
		datasets = dataset.NewPostgres(db)
		log.Info("dataset store ready", "backend", "postgres")
	} else {
		datasets = dataset.NewInMemory()
		log.Info("dataset store ready", "backend", "memory")
	}

	// Snapshot cache is optional.
	var cache ports.SnapshotCache
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = snapshot.NewRedisCache(redisClient.Client, cfg.Redis.SnapshotTTL)
		log.Info("snapshot cache ready", "ttl", cfg.Redis.SnapshotTTL)
	}

	// Audit pipeline: events go through a buffered channel to a worker so
	// request handling never waits on the sink.
	var sink audit.Publisher = audit.NewLogPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			return err
		}
		defer producer.Close()
		sink = audit.NewKafkaPublisher(producer)
		log.Info("audit publisher ready", "topic", cfg.KafkaAuditTopic)
	}
	publisher := audit.NewChannelPublisher(256, log)
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	generator, err := narrative.NewGenerator(ctx, cfg.Narrative,
		narrative.WithLogger(log),
		narrative.WithMetrics(narrative.NewMetrics()),
	)
	if err != nil {
		log.Error("init narrative generator", "error", err)
		return err
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(wfmetrics.New()),
	}
	if cache != nil {
		opts = append(opts, service.WithSnapshotCache(cache))
	}
	if generator != nil {
		opts = append(opts, service.WithNarrativeGenerator(generator))
		log.Info("narrative generator ready", "model", cfg.Narrative.Model)
	}

	svc, err := service.New(datasets, opts...)
	if err != nil {
		log.Error("init service", "error", err)
		return err
	}

	router := httpapi.NewRouter(handler.New(svc, log), httpapi.RouterConfig{
		AdminToken: cfg.AdminToken,
		Logger:     log,
		Audit:      publisher,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting cna server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
