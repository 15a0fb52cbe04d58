package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpGoServer "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/i2y/graphqlmcp/configs"
	"github.com/i2y/graphqlmcp/internal/adapter/inbound/mcphttp"
	"github.com/i2y/graphqlmcp/internal/adapter/inbound/mcptools"
	"github.com/i2y/graphqlmcp/internal/adapter/outbound/catalog"
	"github.com/i2y/graphqlmcp/internal/adapter/outbound/gqlvalidator"
	"github.com/i2y/graphqlmcp/internal/adapter/outbound/introspection"
	"github.com/i2y/graphqlmcp/internal/adapter/outbound/schemacache"
	"github.com/i2y/graphqlmcp/internal/adapter/outbound/usage"
	"github.com/i2y/graphqlmcp/internal/usecase"
)

const (
	serverName    = "graphqlmcp"
	serverVersion = "0.1.0"
)

func main() {
	// === Command Line Flags ===
	var transport string
	flag.StringVar(&transport, "transport", "stdio", "Transport mode: sse or stdio")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Configuration ===
	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// === Logging ===
	logLevel := cfg.ParsedLogLevel()
	var logger *slog.Logger

	if transport == "stdio" {
		// stdout carries the protocol; logs go to a file.
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
		} else {
			defer logFile.Close()
			logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel}))
		}
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	}

	slog.SetDefault(logger)
	logger.Info("Logger initialized.", slog.String("level", logLevel.String()), slog.String("transport", transport))

	// === OpenTelemetry Initialization ===
	shutdownOtel, err := initOtelProvider(cfg)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// === MCP Server (mark3labs/mcp-go) ===
	mcpSrv := mcpGoServer.NewMCPServer(serverName, serverVersion)

	// === Dependency Injection ===
	logger.Info("Initializing dependencies...")

	httpClient := &http.Client{
		Timeout: cfg.HTTPClientTimeout,
	}
	logger.Debug("HTTP Client configured.", slog.Duration("timeout", cfg.HTTPClientTimeout))

	// --- Outbound adapters ---
	catalogFetcher := catalog.NewFetcher(httpClient, cfg.CatalogURL, logger)

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = schemacache.DefaultDir()
	}
	schemaCache, err := schemacache.New(httpClient, cacheDir, logger)
	if err != nil {
		logger.Error("Failed to initialize schema cache.", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Debug("Schema cache initialized.", slog.String("dir", schemaCache.Dir()))

	decoder := introspection.Decoder{}
	validator, err := gqlvalidator.New(schemaCache, decoder, cfg.ParsedSchemaCacheSize, logger)
	if err != nil {
		logger.Error("Failed to initialize operation validator.", slog.Any("error", err))
		os.Exit(1)
	}

	recorder := usage.New(httpClient, cfg.UsageURL, cfg.UsageTimeout, logger)
	defer recorder.Wait()

	// === Use Cases ===
	introspectUC := usecase.NewIntrospectSchemaUseCase(schemaCache, decoder, logger)
	validateUC := usecase.NewValidateOperationUseCase(validator, logger)
	listUC := usecase.NewListSchemasUseCase(catalogFetcher, logger)
	warmUC := usecase.NewWarmSchemaUseCase(catalogFetcher, schemaCache, logger, validator)

	// === Tool Registration ===
	tools := mcptools.NewHandlers(catalogFetcher, introspectUC, validateUC, listUC, recorder, cfg.DefaultAPI, logger)
	tools.Register(mcpSrv)

	// === Transport Mode Selection ===
	switch transport {
	case "stdio":
		logger.Info("Starting in STDIO mode")

		stdioServer := mcpGoServer.NewStdioServer(mcpSrv)
		if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("STDIO server error", slog.Any("error", err))
			os.Exit(1)
		}

	case "sse":
		logger.Info("Starting in SSE mode")

		sseServer := mcpGoServer.NewSSEServer(mcpSrv, mcpGoServer.WithBaseURL("http://"+cfg.ListenAddr))
		logger.Info("MCP SSE server initialized.", slog.String("address", cfg.ListenAddr))

		// === Admin HTTP Server Setup ===
		adminMux := http.NewServeMux()
		adminHandlers := mcphttp.NewHandlers(listUC, warmUC, logger)
		adminHandlers.RegisterAdminRoutes(adminMux)
		adminServer := &http.Server{
			Addr:    cfg.AdminAddr,
			Handler: adminMux,
		}
		go func() {
			logger.Info("Admin HTTP server starting.", slog.String("address", adminServer.Addr))
			if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Admin HTTP server failed to start.", slog.Any("error", err))
			}
		}()

		go func() {
			logger.Info("MCP SSE server starting.", slog.String("address", cfg.ListenAddr))
			if err := sseServer.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP SSE server failed to start.", slog.Any("error", err))
				stop()
			}
		}()

		<-ctx.Done()

		// === Server Shutdown ===
		logger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := adminServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Admin HTTP server graceful shutdown failed.", slog.Any("error", err))
		}
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP SSE server graceful shutdown failed.", slog.Any("error", err))
		}

		logger.Info("Servers shut down gracefully.")

	default:
		logger.Error("Invalid transport mode", slog.String("transport", transport))
		os.Exit(1)
	}
}

// initOtelProvider initializes the OpenTelemetry SDK and sets up the OTLP trace exporter.
// It returns a shutdown function to be called on application exit.
func initOtelProvider(cfg *configs.Config) (func(context.Context) error, error) {
	ctx := context.Background()

	if cfg.OtelExporterOtlpEndpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, OpenTelemetry tracing disabled.")
		return func(context.Context) error { return nil }, nil
	}

	slog.Info("Initializing OTLP exporter.", slog.String("endpoint", cfg.OtelExporterOtlpEndpoint))

	grpcOpts := []grpc.DialOption{}
	if cfg.OtelExporterOtlpInsecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		slog.Warn("Using insecure connection for OTLP exporter.")
	}

	conn, err := grpc.NewClient(cfg.OtelExporterOtlpEndpoint, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serverName),
			semconv.ServiceVersionKey.String(serverVersion),
		),
	)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("OpenTelemetry TracerProvider configured.")

	return func(ctx context.Context) error {
		providerErr := tp.Shutdown(ctx)
		connErr := conn.Close()
		return errors.Join(providerErr, connErr)
	}, nil
}
