package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/internal/transport"
	"github.com/goodnatureofminers/farmtrace-backend/pkg/workerpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const labelFormat = "png"

type labelClient interface {
	RegisterBatch(ctx context.Context, req *transport.RegisterBatchRequest) (*transport.RegisterBatchResponse, error)
	ExportLabel(ctx context.Context, req *transport.ExportLabelRequest) (*transport.ExportLabelResponse, error)
}

type exportMetrics interface {
	ObserveExport(format string, err error, started time.Time)
}

// registrations is the YAML file of batches to register before export.
type registrations struct {
	Batches []struct {
		FarmerName  string   `yaml:"farmerName"`
		CropType    string   `yaml:"cropType"`
		Location    string   `yaml:"location"`
		HarvestDate string   `yaml:"harvestDate"`
		QuantityKg  string   `yaml:"quantityKg"`
		PricePerKg  string   `yaml:"pricePerKg"`
		Temperature *float64 `yaml:"temperature"`
		Humidity    *float64 `yaml:"humidity"`
	} `yaml:"batches"`
}

func readRegistrations(r io.Reader) ([]registry.Registration, error) {
	var file registrations
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}

	out := make([]registry.Registration, 0, len(file.Batches))
	for i, b := range file.Batches {
		reg := registry.Registration{
			FarmerName:  b.FarmerName,
			CropType:    b.CropType,
			Location:    b.Location,
			Temperature: b.Temperature,
			Humidity:    b.Humidity,
		}
		if b.HarvestDate != "" {
			d, err := time.Parse(time.DateOnly, b.HarvestDate)
			if err != nil {
				return nil, fmt.Errorf("batch %d: harvest date: %w", i, err)
			}
			reg.HarvestDate = &d
		}
		var err error
		if reg.QuantityKg, err = optionalDecimal(b.QuantityKg); err != nil {
			return nil, fmt.Errorf("batch %d: quantity: %w", i, err)
		}
		if reg.PricePerKg, err = optionalDecimal(b.PricePerKg); err != nil {
			return nil, fmt.Errorf("batch %d: price: %w", i, err)
		}
		out = append(out, reg)
	}
	return out, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// exporter writes labels for many batches concurrently.
type exporter struct {
	client  labelClient
	metrics exportMetrics
	logger  *zap.Logger
	dir     string
	size    int
	level   string
	workers int
}

// register registers every batch and returns the issued identifiers in input order.
func (e *exporter) register(ctx context.Context, regs []registry.Registration) ([]model.BatchID, error) {
	return workerpool.Map(ctx, e.workers, regs, func(ctx context.Context, reg registry.Registration) (model.BatchID, error) {
		resp, err := e.client.RegisterBatch(ctx, &transport.RegisterBatchRequest{Registration: reg})
		if err != nil {
			return "", err
		}
		e.logger.Info("batch registered", zap.Stringer("batch_id", resp.Batch.ID))
		return resp.Batch.ID, nil
	})
}

// export writes one PNG per batch into dir and returns the paths in input order.
func (e *exporter) export(ctx context.Context, ids []model.BatchID) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return workerpool.Map(ctx, e.workers, ids, e.exportOne)
}

func (e *exporter) exportOne(ctx context.Context, id model.BatchID) (path string, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveExport(labelFormat, err, started)
	}()

	label, err := e.client.ExportLabel(ctx, &transport.ExportLabelRequest{
		BatchID: string(id),
		Size:    e.size,
		Level:   e.level,
	})
	if err != nil {
		return "", err
	}
	path = filepath.Join(e.dir, filepath.Base(label.FileName))
	if err = os.WriteFile(path, label.PNG, 0o644); err != nil {
		return "", fmt.Errorf("write label %s: %w", path, err)
	}
	e.logger.Debug("label exported", zap.Stringer("batch_id", id), zap.String("path", path), zap.Int("version", label.Version))
	return path, nil
}
