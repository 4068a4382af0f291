package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/identifier"
	"github.com/goodnatureofminers/farmtrace-backend/internal/metrics"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/transport"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Registry string        `long:"registry" env:"LABELER_REGISTRY_ADDR" description:"registry gRPC address" default:"localhost:8000"`
	Timeout  time.Duration `long:"timeout" env:"LABELER_TIMEOUT" description:"timeout of one registry call" default:"10s"`
	Out      string        `long:"out" env:"LABELER_OUT" description:"directory labels are written to" default:"labels"`
	Size     int           `long:"size" env:"LABELER_SIZE" description:"label edge in pixels; 0 uses the registry default"`
	Level    string        `long:"level" env:"LABELER_LEVEL" description:"QR error correction level (L, M, Q, H); empty uses the registry default"`
	Workers  int           `long:"workers" env:"LABELER_WORKERS" description:"concurrent exports" default:"4"`
	Register string        `long:"register" description:"YAML file of batches to register before exporting their labels"`

	Args struct {
		IDs []string `positional-arg-name:"batch-id" description:"registered batches to export labels for"`
	} `positional-args:"yes"`
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

	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("labeler failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	ids := make([]model.BatchID, 0, len(cfg.Args.IDs))
	for _, raw := range cfg.Args.IDs {
		id := identifier.Normalize(raw)
		if !identifier.Valid(id) {
			return fmt.Errorf("invalid batch id %q", raw)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 && cfg.Register == "" {
		return errors.New("nothing to do: pass batch ids or --register")
	}

	client, conn, err := transport.Dial(cfg.Registry, metrics.NewRPCClient(cfg.Registry), cfg.Timeout)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	e := &exporter{
		client:  client,
		metrics: metrics.NewLabeler(),
		logger:  logger,
		dir:     cfg.Out,
		size:    cfg.Size,
		level:   cfg.Level,
		workers: cfg.Workers,
	}

	if cfg.Register != "" {
		f, err := os.Open(cfg.Register)
		if err != nil {
			return fmt.Errorf("open registrations: %w", err)
		}
		regs, err := readRegistrations(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		registered, err := e.register(ctx, regs)
		if err != nil {
			return err
		}
		ids = append(ids, registered...)
	}

	paths, err := e.export(ctx, ids)
	if err != nil {
		return err
	}
	for i, path := range paths {
		fmt.Printf("%s\t%s\n", ids[i], path)
	}
	return nil
}
