package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	config "github.com/niholbooks/shop-bot/internal/cfg"
	v1Http "github.com/niholbooks/shop-bot/internal/delivery/v1/http"
	"github.com/niholbooks/shop-bot/internal/infrastructure/chatgw"
	"github.com/niholbooks/shop-bot/internal/infrastructure/kafka"
	"github.com/niholbooks/shop-bot/internal/repository/jsonstore"
	"github.com/niholbooks/shop-bot/internal/repository/memory"
	s3Repo "github.com/niholbooks/shop-bot/internal/repository/minio"
	redisRepo "github.com/niholbooks/shop-bot/internal/repository/redis"
	"github.com/niholbooks/shop-bot/internal/usecase"
	"github.com/niholbooks/shop-bot/pkg/clients"
	"github.com/niholbooks/shop-bot/pkg/closer"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// Run собирает приложение и блокируется до сигнала остановки.
func Run() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	cl := closer.NewCloser(0)

	catalogStore := jsonstore.NewCatalogStore(cfg.Store.Dir, log)
	cartStore := jsonstore.NewCartStore(cfg.Store.Dir, log)
	userStore := jsonstore.NewUserStore(cfg.Store.Dir, log)
	analyticsStore := jsonstore.NewAnalyticsStore(cfg.Store.Dir, log)

	sessions, err := initSessions(cfg, cl, log)
	if err != nil {
		log.Errorf(err, "failed to initialize session store")
		os.Exit(1)
	}

	var producer usecase.EventProducer
	if cfg.Kafka != nil {
		kafkaProducer, err := kafka.NewProducer(log, cfg.Kafka)
		if err != nil {
			log.Errorf(err, "failed to initialize kafka producer")
			os.Exit(1)
		}
		if err := kafkaProducer.EnsureTopic(10 * time.Second); err != nil {
			log.Errorf(err, "failed to ensure kafka topic")
			os.Exit(1)
		}
		cl.Add(func(context.Context) error { return kafkaProducer.Close() })
		producer = kafkaProducer
	}

	var media usecase.MediaArchive
	if cfg.Minio != nil {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			log.Errorf(err, "failed to initialize minio client")
			os.Exit(1)
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
			minioCancel()
			log.Errorf(err, "failed to initialize MinIO bucket")
			os.Exit(1)
		}
		minioCancel()

		media = s3Repo.NewReceiptRepo(minioClient, cfg.Minio)
	}

	transport := chatgw.NewClient(cfg.Gateway, cfg.Bot)
	analytics := usecase.NewAnalytics(analyticsStore, producer, log)

	workflow := usecase.NewWorkflow(
		catalogStore,
		cartStore,
		userStore,
		analytics,
		sessions,
		transport,
		media,
		cfg.Bot.AdminIDs,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(workflow)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	workflow.NotifyStartup(startupCtx)
	startupCancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	workflow.NotifyShutdown(shutdownCtx)

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		log.Errorf(err, "HTTP server shutdown error")
	} else {
		log.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		log.Warnf("resource shutdown: %v", err)
	}

	log.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

// initSessions выбирает хранилище сессий: Redis, если он настроен,
// иначе процессная память с тем же TTL.
func initSessions(cfg *config.Config, cl *closer.Closer, log logger.Logger) (usecase.SessionRepository, error) {
	if cfg.Redis == nil {
		store := memory.NewSessionStore(cfg.Session.TTL)
		cl.Add(func(context.Context) error {
			store.Close()
			return nil
		})
		return store, nil
	}

	redisClient := clients.NewRedisClient(cfg.Redis)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := redisClient.Ping(pingCtx); err != nil {
		return nil, err
	}

	cl.Add(func(context.Context) error { return redisClient.Client.Close() })

	return redisRepo.NewSessionRepo(redisClient, cfg.Session.TTL, log), nil
}
