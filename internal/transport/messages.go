package transport

import (
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/internal/verification"
)

type (
	RegisterBatchRequest struct {
		registry.Registration
	}
	RegisterBatchResponse struct {
		Batch model.Batch `json:"batch"`
		// Payload is the text carried by the batch symbol.
		Payload string `json:"payload"`
	}

	AppendEventRequest struct {
		BatchID string              `json:"batchId"`
		Event   registry.EventInput `json:"event"`
	}
	AppendEventResponse struct {
		Event model.TimelineEvent `json:"event"`
	}

	GradeBatchRequest struct {
		BatchID string      `json:"batchId"`
		Grade   model.Grade `json:"grade"`
	}
	GradeBatchResponse struct{}

	ResolveBatchRequest struct {
		BatchID string `json:"batchId"`
	}
	ResolveBatchResponse struct {
		Provenance model.Provenance `json:"provenance"`
	}

	// VerifyBatchRequest asks for the verification view of a scanned batch.
	// Source defaults to api and is recorded with the scan outcome.
	VerifyBatchRequest struct {
		BatchID string           `json:"batchId"`
		Source  model.ScanSource `json:"source,omitempty"`
	}
	VerifyBatchResponse struct {
		View *verification.View `json:"view"`
	}

	// DecodeSymbolRequest carries either text read from a symbol or an
	// encoded PNG/JPEG/GIF image holding one.
	DecodeSymbolRequest struct {
		Text  string `json:"text,omitempty"`
		Image []byte `json:"image,omitempty"`
	}
	DecodeSymbolResponse struct {
		Summary model.Summary `json:"summary"`
	}

	ExportLabelRequest struct {
		BatchID string `json:"batchId"`
		Size    int    `json:"size,omitempty"`
		Level   string `json:"level,omitempty"`
	}
	ExportLabelResponse struct {
		FileName string `json:"fileName"`
		Payload  string `json:"payload"`
		Level    string `json:"level"`
		Version  int    `json:"version"`
		PNG      []byte `json:"png"`
	}

	RecordScanRequest struct {
		BatchID   string            `json:"batchId"`
		Source    model.ScanSource  `json:"source"`
		Outcome   model.ScanOutcome `json:"outcome"`
		Verified  bool              `json:"verified"`
		ScannedAt time.Time         `json:"scannedAt,omitempty"`
	}
	RecordScanResponse struct{}

	ScanStatsRequest  struct{}
	ScanStatsResponse struct {
		Stats model.ScanStats `json:"stats"`
	}

	// ListAnomaliesRequest scans the Limit most recent batches. Severity and
	// Search narrow the feed.
	ListAnomaliesRequest struct {
		Severity string `json:"severity,omitempty"`
		Search   string `json:"search,omitempty"`
		Limit    int    `json:"limit,omitempty"`
	}
	ListAnomaliesResponse struct {
		Anomalies []verification.AnomalyEntry `json:"anomalies"`
	}

	RegistryOverviewRequest struct {
		Limit int `json:"limit,omitempty"`
	}
	RegistryOverviewResponse struct {
		Overview *verification.Overview `json:"overview"`
	}

	HealthRequest  struct{}
	HealthResponse struct {
		Status string `json:"status"`
	}
)
