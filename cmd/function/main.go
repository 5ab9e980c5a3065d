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

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/accounthub/account-service/internal/pkg/config"
	"github.com/accounthub/account-service/internal/serverless"
	"github.com/accounthub/account-service/pkg/logger"
	"github.com/accounthub/account-service/pkg/signature"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "users-function: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// FUNCTIONS_CUSTOMHANDLER_PORT is set by the functions host for custom handlers.
	lookuper := envconfig.MultiLookuper(
		envconfig.PrefixLookuper("FUNCTIONS_CUSTOMHANDLER_", envconfig.OsLookuper()),
		envconfig.OsLookuper(),
	)
	cfg, err := config.LoadFunction(ctx, lookuper)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "users-function",
	})

	signer, err := signature.New(signature.StaticSecret(cfg.Secret))
	if err != nil {
		return fmt.Errorf("signature authority: %w", err)
	}

	client := serverless.NewBackendClient(cfg.BackendURL, signer, cfg.Timeout)
	e := serverless.NewServer(serverless.NewHandler(client, log))

	address := ":" + cfg.Port
	log.Info().Str("address", address).Str("backend", cfg.BackendURL).Msg("starting users function")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
