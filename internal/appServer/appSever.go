// launching the server, storage, kafka, poller
package appServer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferixdi/kie-studio/config"
	"github.com/ferixdi/kie-studio/internal/database"
	"github.com/ferixdi/kie-studio/internal/pkg/kafka"
	"github.com/ferixdi/kie-studio/internal/pkg/kie"
	"github.com/ferixdi/kie-studio/internal/pkg/kvstore"
	"github.com/ferixdi/kie-studio/internal/pkg/poller"
	"github.com/ferixdi/kie-studio/internal/service"
	"github.com/ferixdi/kie-studio/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	store := newStore(cfg)
	historyRepo := database.NewHistoryRepository(store)
	walletRepo := database.NewWalletRepository(store, cfg.Wallet.StartBalance)

	kieClient := kie.NewClient(cfg.Kie.BaseURL, cfg.Kie.Timeout)
	taskPoller := poller.New(poller.Policy{
		Interval:    cfg.Polling.Interval,
		MaxAttempts: cfg.Polling.MaxAttempts,
	})
	producer := kafka.NewProducer(config.GetEnv("KAFKA_BROKERS", cfg.Kafka.Brokers))

	apiKey := config.GetEnv("KIE_API_KEY", cfg.Kie.APIKey)
	taskService := service.NewTaskService(historyRepo, walletRepo, kieClient, taskPoller, producer, apiKey)
	walletService := service.NewWalletService(walletRepo)
	handler := transport.NewHandler(taskService, walletService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	taskPoller.StopAll()
	if err := producer.Close(); err != nil {
		logrus.Errorf("error occured on closing kafka producer: %s", err.Error())
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}

// newStore выбирает бэкенд kv-хранилища; при недоступном redis
// откатываемся на файловое хранилище, чтобы сервис оставался рабочим.
func newStore(cfg *config.Config) kvstore.Store {
	if cfg.Storage.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := kvstore.NewRedisStore(client)
		if err == nil {
			logrus.Print("Successfully connected to Redis")
			return store
		}
		logrus.Warnf("Redis connection failed: %s, falling back to file storage", err.Error())
	}

	store, err := kvstore.NewFileStore(cfg.Storage.FilePath)
	if err != nil {
		logrus.Fatalf("failed to init file storage: %s", err.Error())
	}
	return store
}
