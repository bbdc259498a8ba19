package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SehatCare/config"
	db "SehatCare/config/db"
	"SehatCare/config/logger"
	redis "SehatCare/config/redis"
	"SehatCare/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Options struct {
	MongoEnabled     bool
	CacheEnabled     bool
	WebServerEnabled bool
	WebServerPort    string

	JobsEnabled bool
	JobsHandler func()

	MigrationEnabled bool
	MigrationHandler func()

	WebServerPreHandler func(r *gin.Engine)
}

const shutdownTimeout = 15 * time.Second

func GetDefaultOptions() Options {
	cfg := config.Get()
	return Options{
		MongoEnabled:     true,
		CacheEnabled:     cfg.RedisAddr != "",
		WebServerEnabled: true,
		WebServerPort:    cfg.Port,
	}
}

// NewEngine builds the gin engine with the request logger and panic recovery.
func NewEngine(production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery())
	return r
}

/*
* Connect to Mongo and Redis when enabled
* Run migrations, then jobs
* Serve until SIGINT/SIGTERM and drain in-flight requests
 */
func Start(opts Options) {
	cfg := config.Get()
	logger.Setup(cfg.IsProduction())
	ctx := context.Background()

	if opts.MongoEnabled {
		if err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase); err != nil {
			log.Fatal().Err(err).Msg("Error connecting to MongoDB")
		}
		defer db.Disconnect(context.Background())
	}
	if opts.CacheEnabled {
		redis.TTL = cfg.CacheTTL
		if err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, using in-process cache")
		} else {
			defer redis.Close()
		}
	}
	if opts.MigrationEnabled && opts.MigrationHandler != nil {
		opts.MigrationHandler()
	}
	if opts.JobsEnabled && opts.JobsHandler != nil {
		opts.JobsHandler()
	}
	if !opts.WebServerEnabled {
		return
	}

	r := NewEngine(cfg.IsProduction())
	if opts.WebServerPreHandler != nil {
		opts.WebServerPreHandler(r)
	}

	srv := &http.Server{
		Addr:              ":" + opts.WebServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", opts.WebServerPort).Msg("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}
