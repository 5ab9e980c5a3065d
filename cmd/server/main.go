package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/accounthub/account-service/internal/api"
	"github.com/accounthub/account-service/internal/core/service"
	mongodb "github.com/accounthub/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/accounthub/account-service/internal/infrastructure/db/redis"
	"github.com/accounthub/account-service/internal/infrastructure/queue"
	"github.com/accounthub/account-service/internal/pkg/config"
	"github.com/accounthub/account-service/pkg/logger"
	"github.com/accounthub/account-service/pkg/signature"
)

// @title                       Account Service API
// @version                     1.0
// @description                 Accounts, session tokens, profile alerts and the signed service endpoint.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @securityDefinitions.apikey  ServiceSignature
// @in                          header
// @name                        serverlessSignature
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "account-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "account-service",
	})

	tokens, err := service.NewTokenAuthority([]byte(cfg.Token.Secret), cfg.Token.TTL, service.WithIssuer(cfg.Token.Issuer))
	if err != nil {
		return fmt.Errorf("token authority: %w", err)
	}
	signatures, err := signature.New(signature.StaticSecret(cfg.Signature.Secret), signature.WithMaxSkew(cfg.Signature.MaxSkew))
	if err != nil {
		return fmt.Errorf("signature authority: %w", err)
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewAlertRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.Signature.ReplayGuard {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	activity := queue.NewDispatcher(
		cfg.Activity.Workers,
		service.NewActivityService(mongodb.NewActivityRepository(db), logger.Component("activity")),
		logger.Component("activity"),
	)

	e := api.NewRouter(api.Dependencies{
		DB:         db,
		Redis:      rdb,
		Tokens:     tokens,
		Signatures: signatures,
		Signature:  cfg.Signature,
		Activity:   activity,
		Log:        log,
	})

	address := ":" + cfg.Port
	log.Info().Str("address", address).Msg("starting account service")

	g, gCtx := errgroup.WithContext(ctx)

	activity.Start(gCtx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info().Msg("server exited properly")
	return nil
}
