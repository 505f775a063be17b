package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventhub/eventhub-api/config"
	repository "github.com/eventhub/eventhub-api/internal/database/postgres"
	rediscache "github.com/eventhub/eventhub-api/internal/database/redis"
	"github.com/eventhub/eventhub-api/internal/service"
	"github.com/eventhub/eventhub-api/internal/transport"

	"github.com/eventhub/eventhub-api/pkg/auth"
	"github.com/eventhub/eventhub-api/pkg/postgres"
	"github.com/eventhub/eventhub-api/pkg/redis"

	"github.com/gin-gonic/gin"
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
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Optional event cache
	var eventCache service.EventCache
	if cfg.Cache.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		eventCache = rediscache.NewEventCache(redisClient, cfg.Cache.EventTTL)
		logrus.Info("Event cache initialized")
	} else {
		logrus.Warn("Event cache disabled, serving lookups from the database")
	}

	// Token manager
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Initialize services
	eventService := service.NewEventService(eventRepo, userRepo, registrationRepo, eventCache)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo)
	authService := service.NewAuthService(userRepo, tokens)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService)
	eventHandler := transport.NewEventHandler(eventService)
	registrationHandler := transport.NewRegistrationHandler(registrationService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(tokens, authHandler, eventHandler, registrationHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
