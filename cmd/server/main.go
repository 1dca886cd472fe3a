package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	jwttoken "vetting/internal/jwt_token"
	"vetting/internal/platform/config"
	"vetting/internal/platform/httpserver"
	"vetting/internal/platform/kafka"
	"vetting/internal/platform/logger"
	platformmetrics "vetting/internal/platform/metrics"
	"vetting/internal/platform/postgres"
	redisclient "vetting/internal/platform/redis"
	"vetting/internal/vetting/adapters"
	"vetting/internal/vetting/fixtures"
	"vetting/internal/vetting/handler"
	vettingmetrics "vetting/internal/vetting/metrics"
	"vetting/internal/vetting/ports"
	"vetting/internal/vetting/service"
	categorystore "vetting/internal/vetting/store/category"
	nomineestore "vetting/internal/vetting/store/nominee"
	audit "vetting/pkg/platform/audit"
	auditconsumer "vetting/pkg/platform/audit/consumer"
	auditpublisher "vetting/pkg/platform/audit/publisher"
	kafkaaudit "vetting/pkg/platform/audit/store/kafka"
	auditmemory "vetting/pkg/platform/audit/store/memory"
	auditpostgres "vetting/pkg/platform/audit/store/postgres"
	auditworker "vetting/pkg/platform/audit/worker"
	authmw "vetting/pkg/platform/middleware/auth"
	"vetting/pkg/platform/middleware/request"
)

// main wires configuration, storage, the audit pipeline and the HTTP router,
// then runs until SIGINT or SIGTERM. Business logic lives in internal/vetting.
func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("vetting server stopped", "error", err)
		os.Exit(1)
	}
}

type nomineeBackend interface {
	nomineestore.Lookup
	nomineestore.TxRunner
}

type stores struct {
	db         *sql.DB
	nominees   nomineeBackend
	categories ports.CategoryDirectory
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	var lookup ports.NomineeLookup = st.nominees
	submitterOpts := []adapters.SubmitterOption{adapters.WithSubmitterLogger(log)}
	cacheClient, err := redisclient.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if cacheClient != nil {
		defer cacheClient.Close()
		cache := nomineestore.NewRedisCache(cacheClient, st.nominees,
			nomineestore.WithCacheTTL(cfg.Redis.CacheTTL),
			nomineestore.WithCacheLogger(log),
		)
		lookup = cache
		submitterOpts = append(submitterOpts, adapters.WithCacheInvalidator(cache))
		log.Info("nominee cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	auditStore, projector, closeAudit, err := openAudit(ctx, cfg, st.db, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	publisher := auditpublisher.NewPublisher(auditStore,
		auditpublisher.WithAsyncBuffer(cfg.Kafka.AuditBuffer),
		auditpublisher.WithLogger(log),
	)
	defer publisher.Close()

	submitter, err := adapters.NewStoreSubmitter(st.nominees,
		append(submitterOpts, adapters.WithAuditPublisher(publisher))...,
	)
	if err != nil {
		return err
	}
	svc, err := service.New(lookup, st.categories, submitter,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(vettingmetrics.New()),
		service.WithTracer(otel.Tracer("vetting/review")),
	)
	if err != nil {
		return err
	}

	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	httpMetrics := platformmetrics.New()

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(httpMetrics.Middleware)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireReviewer(tokens, log))
		handler.New(svc, log).Register(r)
	})

	srv := httpserver.New(cfg.Server, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	if projector != nil {
		g.Go(func() error {
			log.Info("audit projector running", "topic", cfg.Kafka.AuditTopic, "group", cfg.Kafka.ConsumerGroup)
			if err := projector.Run(gctx); err != nil && gctx.Err() == nil {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// openStores selects PostgreSQL when a database URL is configured and the
// in-memory stores otherwise.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*stores, error) {
	if cfg.Database.URL == "" {
		nominees := nomineestore.NewInMemoryStore()
		categories := categorystore.NewInMemoryStore()
		if cfg.FixturesPath != "" {
			file, err := fixtures.LoadFile(cfg.FixturesPath)
			if err != nil {
				return nil, err
			}
			sum, err := file.Apply(ctx, categories, nominees)
			if err != nil {
				return nil, err
			}
			log.Info("loaded fixtures", "path", cfg.FixturesPath, "categories", sum.Categories, "nominees", sum.Nominees)
		}
		log.Warn("no database configured, using in-memory stores")
		return &stores{nominees: nominees, categories: categories}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &stores{
		db:         db,
		nominees:   nomineestore.NewPostgres(db),
		categories: categorystore.NewPostgres(db),
	}, nil
}

// openAudit picks the audit sink. With brokers configured events go to Kafka,
// and when a database is also present a projector copies them into
// PostgreSQL. Without brokers events are written directly to PostgreSQL, or
// kept in memory.
func openAudit(ctx context.Context, cfg config.Config, db *sql.DB, log *slog.Logger) (audit.Store, *auditworker.Worker, func(), error) {
	noop := func() {}
	if len(cfg.Kafka.Brokers) == 0 {
		if db != nil {
			return auditpostgres.New(db), nil, noop, nil
		}
		return auditmemory.NewInMemoryStore(), nil, noop, nil
	}

	producer, err := kafka.NewClient(ctx, cfg.Kafka)
	if err != nil {
		return nil, nil, noop, err
	}
	if err := kafkaaudit.EnsureTopic(ctx, producer, cfg.Kafka.AuditTopic, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
		producer.Close()
		return nil, nil, noop, err
	}
	store := kafkaaudit.New(producer, cfg.Kafka.AuditTopic)
	if db == nil {
		return store, nil, producer.Close, nil
	}

	consumer, err := kafka.NewConsumer(ctx, cfg.Kafka)
	if err != nil {
		producer.Close()
		return nil, nil, noop, err
	}
	router := auditconsumer.NewRouter(log, nil)
	router.Register(cfg.Kafka.AuditTopic, auditconsumer.NewProjectionHandler(auditpostgres.New(db), log))
	closeAll := func() {
		consumer.Close()
		producer.Close()
	}
	return store, auditworker.NewWorker(consumer, router, log), closeAll, nil
}
