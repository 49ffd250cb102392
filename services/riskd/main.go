package riskd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"caucion/native/risk"
	"caucion/observability/logging"
	telemetry "caucion/observability/otel"
	"caucion/services/riskd/server"
	"caucion/services/riskd/source"
)

// Main initialises and runs the risk daemon.
func Main() error {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "services/riskd/config.yaml", "path to riskd configuration")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("CAUCION_ENV"))
	logger := logging.Setup("riskd", env)
	otlpEndpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	otlpHeaders := telemetry.ParseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	insecure := true
	if value := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			insecure = parsed
		}
	}
	shutdownTelemetry, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName: "riskd",
		Environment: env,
		Endpoint:    otlpEndpoint,
		Insecure:    insecure,
		Headers:     otlpHeaders,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if shutdownTelemetry != nil {
			_ = shutdownTelemetry(context.Background())
		}
	}()

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var thresholds risk.Thresholds
	if cfg.RiskParamsPath != "" {
		thresholds, err = risk.LoadThresholds(cfg.RiskParamsPath)
		if err != nil {
			return fmt.Errorf("load risk params: %w", err)
		}
	} else {
		thresholds.EnsureDefaults()
	}
	engine := risk.NewEngine(risk.DefaultMarketConfig(), thresholds)

	var vaultSource source.VaultSource
	switch cfg.Mode {
	case ModeOnchain:
		dialCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		onchain, err := source.DialOnchain(dialCtx, cfg.Chain.RPCURL, cfg.Chain.VaultManager, cfg.Chain.Oracle, cfg.Chain.Owners)
		cancel()
		if err != nil {
			return fmt.Errorf("dial chain: %w", err)
		}
		defer onchain.Close()
		vaultSource = onchain
	default:
		vaultSource = source.NewDemoSource()
	}

	srv := server.New(logger, vaultSource, engine)
	httpServer := &http.Server{
		Addr: cfg.ListenAddress,
		Handler: srv.Handler(server.Config{
			CORS:            server.CORSConfig{AllowedOrigins: cfg.AllowedOrigins},
			RateLimitPerMin: cfg.RateLimitPerMin,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info("riskd listening", "addr", cfg.ListenAddress, "mode", cfg.Mode)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case <-stopCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			_ = httpServer.Close()
			return err
		}
		return nil
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
