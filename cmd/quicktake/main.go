// Command quicktake serves the exchange balance snapshot endpoints.
//
// Configuration comes from the environment (a .env file is honored when
// present):
//
//	QUICKTAKE_ADDR       listen address, default ":8080"
//	QUICKTAKE_TIMEOUT    outbound request timeout, default "10s"
//	QUICKTAKE_LOG_LEVEL  debug|info|warn|error, default "info"
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/crypto-terminal/crypto-quicktake-lambda/internal/handler"
	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/exchange"
	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/exchange/binanceus"
	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/exchange/gemini"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quicktake: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger, err := newLogger(envOr("QUICKTAKE_LOG_LEVEL", "info"))
	if err != nil {
		return err
	}

	timeout, err := time.ParseDuration(envOr("QUICKTAKE_TIMEOUT", "10s"))
	if err != nil {
		return fmt.Errorf("parse QUICKTAKE_TIMEOUT: %w", err)
	}

	container := exchange.NewContainer()
	defer container.Close()

	binanceCfg := core.DefaultConfig("binanceus").WithTimeout(timeout)
	if err := binanceus.Register(container, binanceCfg, binanceus.WithLogger(logger)); err != nil {
		return err
	}

	geminiCfg := core.DefaultConfig("gemini").WithTimeout(timeout)
	if err := gemini.Register(container, geminiCfg, gemini.WithLogger(logger)); err != nil {
		return err
	}

	mux := http.NewServeMux()
	for _, name := range container.Names() {
		ex, err := container.Get(name)
		if err != nil {
			return err
		}
		route := "/api/v1/" + name + "/balances"
		mux.Handle(route, handler.NewBalanceHandler(ex, logger))
		logger.Info().Str("route", route).Msg("endpoint registered")
	}

	addr := envOr("QUICKTAKE_ADDR", ":8080")
	logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, mux)
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse QUICKTAKE_LOG_LEVEL: %w", err)
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger(), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
