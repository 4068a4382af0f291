package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/codec"
	"github.com/goodnatureofminers/farmtrace-backend/internal/metrics"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/internal/scanner"
	"github.com/goodnatureofminers/farmtrace-backend/internal/transport"
	"github.com/goodnatureofminers/farmtrace-backend/internal/verification"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

const lookupQueueDepth = 8

type config struct {
	Registry string        `long:"registry" env:"SCANNER_REGISTRY_ADDR" description:"registry gRPC address" default:"localhost:8000"`
	Timeout  time.Duration `long:"timeout" env:"SCANNER_TIMEOUT" description:"timeout of one registry call" default:"5s"`
	Attempts int           `long:"attempts" env:"SCANNER_ATTEMPTS" description:"lookup attempts on transport failures" default:"3"`
	Backoff  time.Duration `long:"backoff" env:"SCANNER_BACKOFF" description:"initial delay between lookup attempts" default:"200ms"`

	Code       string        `long:"code" description:"verify a typed identifier or pasted payload instead of scanning"`
	Dir        string        `long:"dir" env:"SCANNER_FRAME_DIR" description:"directory the camera helper writes frames to"`
	Image      string        `long:"image" description:"scan a single image file"`
	Region     region        `long:"region" description:"decode only x0,y0,x1,y1 of each frame"`
	Interval   time.Duration `long:"interval" env:"SCANNER_SAMPLE_INTERVAL" description:"pause between samples" default:"100ms"`
	Debounce   time.Duration `long:"debounce" env:"SCANNER_DEBOUNCE" description:"ignore the same symbol within this window" default:"2s"`
	Continuous bool          `long:"continuous" description:"keep scanning after the first symbol"`
}

// region is an image.Rectangle given as x0,y0,x1,y1.
type region image.Rectangle

func (r *region) UnmarshalFlag(value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return fmt.Errorf("region %q: want x0,y0,x1,y1", value)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("region %q: %w", value, err)
		}
		n[i] = v
	}
	rect := image.Rect(n[0], n[1], n[2], n[3])
	if rect.Empty() {
		return fmt.Errorf("region %q is empty", value)
	}
	*r = region(rect)
	return nil
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

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("scanner failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	symbols, err := codec.New(codec.Config{})
	if err != nil {
		return fmt.Errorf("init codec: %w", err)
	}

	client, conn, err := transport.Dial(cfg.Registry, metrics.NewRPCClient(cfg.Registry), cfg.Timeout)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	v := &verifier{
		resolver:  registry.NewRetryingResolver(client, cfg.Attempts, cfg.Backoff, logger.Named("resolver")),
		recorder:  client,
		presenter: verification.NewPresenter(verification.Config{}),
		logger:    logger,
		out:       os.Stdout,
	}

	if cfg.Code != "" {
		summary, err := symbols.DecodeText(cfg.Code)
		if err != nil {
			return err
		}
		v.verify(ctx, summary.BatchID, model.ScanSourceManual)
		return nil
	}

	device, name, err := openDevice(cfg)
	if err != nil {
		return err
	}
	s, err := scanner.New(scanner.Exclusive(device), symbols, metrics.NewScanner(name), logger.Named("scanner"), scanner.Config{
		SampleInterval: cfg.Interval,
		DebounceWindow: cfg.Debounce,
		Region:         image.Rectangle(cfg.Region),
		Continuous:     cfg.Continuous,
	})
	if err != nil {
		return fmt.Errorf("init scanner: %w", err)
	}

	events, err := s.Start(ctx)
	if err != nil {
		return err
	}
	defer s.Stop()

	lookups := v.startQueue(ctx, model.ScanSourceCamera, lookupQueueDepth)
	logger.Info("scanning", zap.String("device", name))
	for ev := range events {
		switch ev.Kind {
		case scanner.EventDecoded:
			lookups.offer(ev.Summary.BatchID)
		case scanner.EventFailed:
			logger.Warn("scan failed", zap.String("raw", ev.Raw), zap.Error(ev.Err))
		}
	}
	lookups.close()

	if state := s.State(); state == scanner.StateFailed {
		return fmt.Errorf("scanner stopped in state %s", state)
	}
	return nil
}

func openDevice(cfg config) (scanner.Device, string, error) {
	switch {
	case cfg.Dir != "" && cfg.Image != "":
		return nil, "", errors.New("--dir and --image are mutually exclusive")
	case cfg.Dir != "":
		return scanner.DirDevice{Dir: cfg.Dir}, "dir", nil
	case cfg.Image != "":
		f, err := os.Open(cfg.Image)
		if err != nil {
			return nil, "", fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		img, err := codec.ReadImage(f)
		if err != nil {
			return nil, "", fmt.Errorf("decode image %s: %w", cfg.Image, err)
		}
		return scanner.ImageDevice{Frames: []image.Image{img}}, "image", nil
	default:
		return nil, "", errors.New("one of --code, --dir or --image is required")
	}
}
