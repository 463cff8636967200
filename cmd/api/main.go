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
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	_ "orderdesk/docs"
	"orderdesk/internal/api"
	"orderdesk/internal/config"
	"orderdesk/internal/metrics"
	"orderdesk/internal/otelx"
	"orderdesk/internal/store"
	boltstore "orderdesk/internal/store/bolt"
	"orderdesk/internal/store/memory"
	mongostore "orderdesk/internal/store/mongo"
	pgstore "orderdesk/internal/store/postgres"
	redisstore "orderdesk/internal/store/redis"
)

// @title Orderdesk API
// @version 1.0
// @description CRUD and reporting service for clients, products and orders
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	logger := log.WithField("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otelx.InitTracing(ctx, cfg.OTELHost)
	if err != nil {
		logger.WithError(err).Fatal("init tracing")
	}
	defer shutdownTracing(context.Background())

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("open store")
	}
	defer st.Close()
	logger.WithField("backend", cfg.Backend).Info("store ready")

	h := api.NewHandler(st)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(metrics.New()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("listening")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- err
			return
		}
		done <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("shutdown")
		}
		<-done
	case err := <-done:
		if err != nil {
			logger.WithError(err).Fatal("server closed")
		}
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendBolt:
		return boltstore.New(cfg.BoltPath)
	case config.BackendMongo:
		return mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
	case config.BackendRedis:
		cli := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := cli.Ping(ctx).Err(); err != nil {
			cli.Close()
			return nil, err
		}
		return redisstore.New(cli), nil
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return pgstore.New(db)
	}
	return nil, errors.New("unknown backend " + cfg.Backend)
}
