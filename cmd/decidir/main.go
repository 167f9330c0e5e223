package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kevin07696/decidir-go/internal/config"
	"github.com/kevin07696/decidir-go/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	var (
		envFile         = flag.String("env-file", ".env", "Optional .env file loaded before reading the environment")
		action          = flag.String("action", "", "Action to perform (see usage)")
		jsonFile        = flag.String("json", "", "JSON file with the request body")
		paymentID       = flag.Int64("payment-id", 0, "Payment ID")
		refundID        = flag.Int64("refund-id", 0, "Refund ID")
		amount          = flag.String("amount", "", "Amount in major units (e.g. 150.25)")
		userID          = flag.String("user-id", "", "Site user ID owning the card tokens")
		cardToken       = flag.String("token", "", "Card token")
		username        = flag.String("username", "", "Consumer username for 3DS instructions")
		siteID          = flag.String("site-id", "", "Site ID for batch closures")
		date            = flag.String("date", "", "Closure date for batch closures")
		offset          = flag.Int64("offset", 0, "Listing offset")
		pageSize        = flag.Int64("page-size", 0, "Listing page size")
		siteOperationID = flag.String("site-operation-id", "", "Filter listings by site operation ID")
		merchantID      = flag.String("merchant-id", "", "Filter listings by merchant ID")
		interval        = flag.Duration("interval", 30*time.Second, "Health probe interval for monitor")
	)
	flag.Parse()

	if *action == "" {
		printUsage()
		os.Exit(1)
	}

	if err := config.LoadEnvFile(*envFile); err != nil {
		log.Fatal("Failed to load env file:", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logger := initLogger(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	creds, err := resolveCredentials(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to resolve Decidir credentials", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	connector, err := newConnector(cfg.Decidir, creds, logger, registry)
	if err != nil {
		logger.Fatal("Failed to create Decidir connector", zap.Error(err))
	}

	cli := &DecidirCLI{
		ctx:       ctx,
		connector: connector,
		out:       os.Stdout,
	}

	args := actionArgs{
		jsonFile:  *jsonFile,
		paymentID: *paymentID,
		refundID:  *refundID,
		amount:    *amount,
		userID:    *userID,
		cardToken: *cardToken,
		username:  *username,
		siteID:    *siteID,
		date:      *date,
		offset:    *offset,
		pageSize:  *pageSize,
		siteOpID:  *siteOperationID,
		merchant:  *merchantID,
	}

	if *action == "monitor" {
		runMonitor(ctx, cli, cfg.Metrics.Port, *interval, registry, logger)
		return
	}

	server := startMetrics(cfg.Metrics.Port, registry, nil, logger)
	err = cli.Run(*action, args)
	if server != nil {
		if shutdownErr := observability.ShutdownMetricsServer(server); shutdownErr != nil {
			logger.Error("Metrics server shutdown error", zap.Error(shutdownErr))
		}
	}
	if err != nil {
		if reported := cli.reportError(err); !reported {
			logger.Error("Action failed", zap.String("action", *action), zap.Error(err))
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: decidir -action=<action> [options]")
	fmt.Println("Actions:")
	fmt.Println("  healthcheck         - Check the Decidir API status")
	fmt.Println("  payment             - Submit a payment (-json, optional -amount)")
	fmt.Println("  instruction-3ds     - Continue a 3DS challenge (-json, -username)")
	fmt.Println("  payment-info        - Show a payment (-payment-id)")
	fmt.Println("  list-payments       - List payments (-offset, -page-size, -site-operation-id, -merchant-id)")
	fmt.Println("  capture             - Capture a pre-approved payment (-payment-id, -amount)")
	fmt.Println("  refund              - Refund a payment in full (-payment-id)")
	fmt.Println("  partial-refund      - Refund part of a payment (-payment-id, -amount)")
	fmt.Println("  refund-sub-payment  - Refund legs of a distributed payment (-payment-id, -json)")
	fmt.Println("  delete-refund       - Cancel a refund (-payment-id, -refund-id)")
	fmt.Println("  token               - Tokenize a card (-json)")
	fmt.Println("  internal-token      - Request a network token (-json)")
	fmt.Println("  cryptogram          - Request a network token cryptogram (-json)")
	fmt.Println("  validate            - Validate a payment form (-json)")
	fmt.Println("  card-tokens         - List the card tokens of a user (-user-id)")
	fmt.Println("  delete-card-token   - Delete a card token (-token)")
	fmt.Println("  batch-closure       - Run a batch closure (-site-id, -date)")
	fmt.Println("  monitor             - Probe the API periodically and serve /metrics and /health")
}

func startMetrics(port int, registry *prometheus.Registry, health *observability.HealthChecker, logger *zap.Logger) *http.Server {
	if port == 0 {
		return nil
	}
	return observability.StartMetricsServer(port, registry, health, logger)
}

// runMonitor probes the healthcheck endpoint until the context is cancelled
func runMonitor(ctx context.Context, cli *DecidirCLI, port int, interval time.Duration, registry *prometheus.Registry, logger *zap.Logger) {
	if port == 0 {
		logger.Fatal("METRICS_PORT is required for monitor")
	}

	health := observability.NewHealthChecker(10 * time.Second)
	health.Register("decidir", func(ctx context.Context) error {
		_, err := cli.connector.HealthCheck(ctx)
		return err
	})

	server := startMetrics(port, registry, health, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status := health.Check(ctx)
		logger.Info("Decidir health probe", zap.String("status", status.Status))

		select {
		case <-ctx.Done():
			logger.Info("Shutting down monitor...")
			if err := observability.ShutdownMetricsServer(server); err != nil {
				logger.Error("Metrics server shutdown error", zap.Error(err))
			}
			return
		case <-ticker.C:
		}
	}
}
