package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/codec"
	"github.com/goodnatureofminers/farmtrace-backend/internal/identifier"
	"github.com/goodnatureofminers/farmtrace-backend/internal/metrics"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry/clickhouse"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry/memory"
	"github.com/goodnatureofminers/farmtrace-backend/internal/transport"
	"github.com/goodnatureofminers/farmtrace-backend/internal/verification"
	"github.com/goodnatureofminers/farmtrace-backend/pkg/batcher"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

type config struct {
	Addr          string `long:"addr" env:"API_GATEWAY_ADDR" description:"gRPC listen address" default:":8000"`
	RestAddr      string `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"REST and metrics listen address" default:":8001"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"API_GATEWAY_CLICKHOUSE_DSN" description:"ClickHouse DSN; the in-memory store is used when empty"`
	Fixtures      string `long:"fixtures" env:"API_GATEWAY_FIXTURES" description:"YAML file of batches to seed the in-memory store with"`

	SymbolLevel string `long:"symbol-level" env:"API_GATEWAY_SYMBOL_LEVEL" description:"default QR error correction level (L, M, Q, H)" default:"M"`
	SymbolSize  int    `long:"symbol-size" env:"API_GATEWAY_SYMBOL_SIZE" description:"default label edge in pixels" default:"256"`

	ScanFlushSize     int           `long:"scan-flush-size" env:"API_GATEWAY_SCAN_FLUSH_SIZE" description:"scan records per write" default:"500"`
	ScanFlushInterval time.Duration `long:"scan-flush-interval" env:"API_GATEWAY_SCAN_FLUSH_INTERVAL" description:"max delay before scan records are written" default:"2s"`
	ScanFlushRPS      int           `long:"scan-flush-rps" env:"API_GATEWAY_SCAN_FLUSH_RPS" description:"max scan record writes per second" default:"10"`

	PriceJumpRatio      float64 `long:"price-jump-ratio" env:"API_GATEWAY_PRICE_JUMP_RATIO" description:"retail over farm-gate price ratio flagged as a jump" default:"3"`
	MaxTemperatureDelta float64 `long:"max-temperature-delta" env:"API_GATEWAY_MAX_TEMPERATURE_DELTA" description:"temperature change between readings flagged as anomalous" default:"8"`
	MaxHumidity         float64 `long:"max-humidity" env:"API_GATEWAY_MAX_HUMIDITY" description:"humidity above which a reading is anomalous" default:"95"`
}

// store is satisfied by both the in-memory and the ClickHouse store.
type store interface {
	registry.Store
	registry.ScanStore
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api gateway failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	queue := batcher.New[model.ScanRecord](
		logger.Named("scan_queue"),
		st.InsertScans,
		cfg.ScanFlushSize,
		cfg.ScanFlushInterval,
		cfg.ScanFlushRPS,
	).WithMetrics(metrics.NewScanQueue())
	queue.Start(ctx)
	defer queue.Stop()

	issuer, err := identifier.NewIssuer()
	if err != nil {
		return fmt.Errorf("init issuer: %w", err)
	}
	svc, err := registry.NewService(st, st, queue, issuer, metrics.NewRegistry(), logger.Named("registry"))
	if err != nil {
		return fmt.Errorf("init registry: %w", err)
	}

	level, err := codec.ParseLevel(cfg.SymbolLevel)
	if err != nil {
		return fmt.Errorf("parse symbol level: %w", err)
	}
	symbols, err := codec.New(codec.Config{Level: level, Size: cfg.SymbolSize})
	if err != nil {
		return fmt.Errorf("init codec: %w", err)
	}
	presenter := verification.NewPresenter(verification.Config{
		PriceJumpRatio:      cfg.PriceJumpRatio,
		MaxTemperatureDelta: cfg.MaxTemperatureDelta,
		MaxHumidity:         cfg.MaxHumidity,
	})

	handler, err := transport.NewRegistryHandler(svc, symbols, presenter, logger.Named("transport"))
	if err != nil {
		return fmt.Errorf("init handler: %w", err)
	}

	grpcServer, err := serveGRPC(ctx, cfg.Addr, handler, logger)
	if err != nil {
		return err
	}
	defer grpcServer.GracefulStop()

	return serveREST(ctx, cfg.RestAddr, handler, logger)
}

func openStore(ctx context.Context, cfg config, logger *zap.Logger) (store, func(), error) {
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, nil, fmt.Errorf("init repository: %w", err)
		}
		logger.Info("using clickhouse store")
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Error("close repository", zap.Error(err))
			}
		}, nil
	}

	mem := memory.New()
	if cfg.Fixtures != "" {
		n, err := mem.LoadFile(ctx, cfg.Fixtures)
		if err != nil {
			return nil, nil, fmt.Errorf("load fixtures: %w", err)
		}
		logger.Info("fixtures loaded", zap.String("path", cfg.Fixtures), zap.Int("batches", n))
	}
	logger.Warn("using in-memory store, data is lost on exit")
	return mem, func() {}, nil
}

func serveGRPC(ctx context.Context, addr string, handler transport.BatchRegistryServer, logger *zap.Logger) (*grpc.Server, error) {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	transport.RegisterBatchRegistryServer(grpcServer, handler)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	go func() {
		logger.Info("Starting gRPC server", zap.String("addr", addr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()
	return grpcServer, nil
}

func serveREST(ctx context.Context, addr string, handler transport.BatchRegistryServer, logger *zap.Logger) error {
	gw, err := transport.NewGateway(handler)
	if err != nil {
		return fmt.Errorf("init gateway: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}
