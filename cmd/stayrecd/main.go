package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/stayrec/config"
	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/service"
	"github.com/rushteam/stayrec/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file (yaml)")
	flag.Parse()

	cfg := config.Default()
	cfg.ApplyEnv()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			boot := zerolog.New(os.Stderr)
			boot.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("stayrecd exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	docs, err := store.NewMongoDocStore(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer docs.Close()
	log.Info().Str("database", cfg.Mongo.Database).Msg("document store connected")

	// 工件存储：Redis 未配置时退回内存（重启后冷训练）
	var kv core.Store
	if cfg.Redis.Addr != "" {
		kv, err = store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.ArtifactTTL.Std())
		if err != nil {
			return err
		}
	} else {
		kv = store.NewMemoryStore()
		log.Warn().Msg("redis not configured, model artifacts will not survive restarts")
	}
	defer kv.Close()

	engine := service.NewEngine(docs, store.NewArtifacts(kv), service.Options{
		Weights:             cfg.Engine.Weights,
		MaxFeatures:         cfg.Engine.MaxFeatures,
		RecallTimeout:       cfg.Engine.RecallTimeout.Std(),
		DiversityMaxPerType: cfg.Engine.DiversityMaxPerType,
	}, log)

	if err := engine.LoadArtifacts(ctx); err != nil {
		log.Warn().Err(err).Msg("artifact restore failed, falling back to cold training")
	}
	if !engine.Ready() {
		log.Info().Msg("no serving generation, training on startup")
		if _, err := engine.Retrain(ctx, service.ScopeAll); err != nil {
			return err
		}
	}

	go engine.RetrainLoop(ctx, cfg.Engine.RetrainInterval.Std())

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           service.NewHandler(engine, log).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
