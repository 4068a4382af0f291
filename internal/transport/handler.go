package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/farmtrace-backend/internal/codec"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/internal/verification"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// MaxLabelSize bounds the edge of exported labels in pixels.
	MaxLabelSize = 4096
	// MaxModulePixels bounds negative label sizes (pixels per module).
	MaxModulePixels = 64
	// MaxImageBytes bounds images submitted for decoding.
	MaxImageBytes = codec.MaxImageBytes
	// DefaultOverviewLimit is how many recent batches admin views sample.
	DefaultOverviewLimit = 200

	healthServing = "SERVING"
)

// RegistryHandler implements BatchRegistryServer.
type RegistryHandler struct {
	registry  Registry
	codec     *codec.Codec
	presenter *verification.Presenter
	logger    *zap.Logger
}

// NewRegistryHandler returns a RegistryHandler instance.
func NewRegistryHandler(reg Registry, c *codec.Codec, presenter *verification.Presenter, logger *zap.Logger) (*RegistryHandler, error) {
	if reg == nil {
		return nil, errors.New("registry is required")
	}
	if c == nil {
		return nil, errors.New("codec is required")
	}
	if presenter == nil {
		presenter = verification.NewPresenter(verification.Config{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryHandler{registry: reg, codec: c, presenter: presenter, logger: logger}, nil
}

// RegisterBatch registers a batch and returns it with its symbol payload.
func (h *RegistryHandler) RegisterBatch(ctx context.Context, req *RegisterBatchRequest) (*RegisterBatchResponse, error) {
	batch, err := h.registry.Register(ctx, req.Registration)
	if err != nil {
		return nil, toStatus(err)
	}
	symbol, err := h.codec.Encode(batch.Summary())
	if err != nil {
		return nil, toStatus(fmt.Errorf("encode symbol: %w", err))
	}
	return &RegisterBatchResponse{Batch: batch, Payload: symbol.Content()}, nil
}

func (h *RegistryHandler) AppendEvent(ctx context.Context, req *AppendEventRequest) (*AppendEventResponse, error) {
	event, err := h.registry.Append(ctx, model.BatchID(req.BatchID), req.Event)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AppendEventResponse{Event: event}, nil
}

func (h *RegistryHandler) GradeBatch(ctx context.Context, req *GradeBatchRequest) (*GradeBatchResponse, error) {
	if err := h.registry.Grade(ctx, model.BatchID(req.BatchID), req.Grade); err != nil {
		return nil, toStatus(err)
	}
	return &GradeBatchResponse{}, nil
}

func (h *RegistryHandler) ResolveBatch(ctx context.Context, req *ResolveBatchRequest) (*ResolveBatchResponse, error) {
	p, err := h.registry.Resolve(ctx, model.BatchID(req.BatchID))
	if err != nil {
		return nil, toStatus(err)
	}
	return &ResolveBatchResponse{Provenance: *p}, nil
}

// VerifyBatch resolves a batch, builds its verification view and records the
// scan. A failed audit write does not fail the verification.
func (h *RegistryHandler) VerifyBatch(ctx context.Context, req *VerifyBatchRequest) (*VerifyBatchResponse, error) {
	id := model.BatchID(req.BatchID)
	source := req.Source
	if source == "" {
		source = model.ScanSourceAPI
	}

	p, err := h.registry.Resolve(ctx, id)
	var view *verification.View
	if err == nil {
		view, _ = h.presenter.Present(p)
	}

	rec := model.ScanRecord{
		BatchID:  id,
		Source:   source,
		Outcome:  registry.OutcomeOf(err),
		Verified: view != nil && view.Verified && !view.Tampered,
	}
	if recErr := h.registry.RecordScan(ctx, rec); recErr != nil {
		h.logger.Warn("scan not recorded", zap.String("batch_id", req.BatchID), zap.Error(recErr))
	}

	if err != nil {
		return nil, toStatus(err)
	}
	return &VerifyBatchResponse{View: view}, nil
}

// DecodeSymbol decodes text or an image. It never consults the registry.
func (h *RegistryHandler) DecodeSymbol(_ context.Context, req *DecodeSymbolRequest) (*DecodeSymbolResponse, error) {
	var (
		summary model.Summary
		err     error
	)
	switch {
	case len(req.Image) > MaxImageBytes:
		return nil, status.Errorf(codes.InvalidArgument, "image larger than %d bytes", MaxImageBytes)
	case len(req.Image) > 0:
		img, readErr := codec.ReadImage(bytes.NewReader(req.Image))
		if readErr != nil {
			return nil, toStatus(readErr)
		}
		summary, err = h.codec.DecodeImage(img)
	case req.Text != "":
		summary, err = h.codec.DecodeText(req.Text)
	default:
		return nil, status.Error(codes.InvalidArgument, "text or image is required")
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return &DecodeSymbolResponse{Summary: summary}, nil
}

// ExportLabel renders the PNG label of a registered batch.
func (h *RegistryHandler) ExportLabel(ctx context.Context, req *ExportLabelRequest) (*ExportLabelResponse, error) {
	if req.Size > MaxLabelSize || req.Size < -MaxModulePixels {
		return nil, status.Errorf(codes.InvalidArgument, "label size %d outside [%d, %d]", req.Size, -MaxModulePixels, MaxLabelSize)
	}
	level := h.codec.Level()
	if req.Level != "" {
		parsed, err := codec.ParseLevel(req.Level)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		level = parsed
	}

	p, err := h.registry.Resolve(ctx, model.BatchID(req.BatchID))
	if err != nil {
		return nil, toStatus(err)
	}
	symbol, err := h.codec.EncodeWithLevel(p.Batch.Summary(), level)
	if err != nil {
		return nil, toStatus(err)
	}
	png, err := symbol.PNG(req.Size)
	if err != nil {
		return nil, toStatus(err)
	}

	return &ExportLabelResponse{
		FileName: symbol.FileName(),
		Payload:  symbol.Content(),
		Level:    string(symbol.Level()),
		Version:  symbol.Version(),
		PNG:      png,
	}, nil
}

func (h *RegistryHandler) RecordScan(ctx context.Context, req *RecordScanRequest) (*RecordScanResponse, error) {
	err := h.registry.RecordScan(ctx, model.ScanRecord{
		BatchID:   model.BatchID(req.BatchID),
		Source:    req.Source,
		Outcome:   req.Outcome,
		Verified:  req.Verified,
		ScannedAt: req.ScannedAt,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &RecordScanResponse{}, nil
}

func (h *RegistryHandler) ScanStats(ctx context.Context, _ *ScanStatsRequest) (*ScanStatsResponse, error) {
	stats, err := h.registry.ScanStats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ScanStatsResponse{Stats: stats}, nil
}

// ListAnomalies presents the most recent batches and returns their anomaly
// flags.
func (h *RegistryHandler) ListAnomalies(ctx context.Context, req *ListAnomaliesRequest) (*ListAnomaliesResponse, error) {
	severity, err := verification.ParseSeverity(req.Severity)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	ps, err := h.registry.Recent(ctx, overviewLimit(req.Limit))
	if err != nil {
		return nil, toStatus(err)
	}
	entries := h.presenter.Anomalies(ps, verification.AnomalyFilter{Severity: severity, Search: req.Search})
	return &ListAnomaliesResponse{Anomalies: entries}, nil
}

// RegistryOverview returns registry totals with verification figures over the
// most recent batches.
func (h *RegistryHandler) RegistryOverview(ctx context.Context, req *RegistryOverviewRequest) (*RegistryOverviewResponse, error) {
	stats, err := h.registry.RegistryStats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	ps, err := h.registry.Recent(ctx, overviewLimit(req.Limit))
	if err != nil {
		return nil, toStatus(err)
	}
	return &RegistryOverviewResponse{Overview: h.presenter.Summarize(stats, ps)}, nil
}

func overviewLimit(limit int) int {
	if limit == 0 {
		return DefaultOverviewLimit
	}
	return limit
}

// Health reports server health.
func (h *RegistryHandler) Health(_ context.Context, _ *HealthRequest) (*HealthResponse, error) {
	return &HealthResponse{Status: healthServing}, nil
}
