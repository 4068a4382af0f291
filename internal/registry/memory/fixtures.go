package memory

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/identifier"
	"github.com/goodnatureofminers/farmtrace-backend/internal/ledger"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Batches []fixtureBatch `yaml:"batches"`
}

type fixtureBatch struct {
	ID           string         `yaml:"batchId"`
	FarmerName   string         `yaml:"farmerName"`
	CropType     string         `yaml:"cropType"`
	Location     string         `yaml:"location"`
	HarvestDate  string         `yaml:"harvestDate"`
	QuantityKg   string         `yaml:"quantityKg"`
	Grade        *model.Grade   `yaml:"grade"`
	RegisteredAt time.Time      `yaml:"registeredAt"`
	Events       []fixtureEvent `yaml:"events"`
}

type fixtureEvent struct {
	Stage       string    `yaml:"stage"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Timestamp   time.Time `yaml:"timestamp"`
	Location    string    `yaml:"location"`
	Temperature *float64  `yaml:"temperature"`
	Humidity    *float64  `yaml:"humidity"`
	PricePerKg  string    `yaml:"pricePerKg"`
	Verified    bool      `yaml:"verified"`
	Anomaly     bool      `yaml:"anomaly"`
}

// LoadFile seeds the store from a fixtures file.
func (s *Store) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open fixtures: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return s.Load(ctx, f)
}

// Load seeds the store from YAML. Event hashes are computed on load, so
// fixtures list events without them. It returns the number of batches loaded.
func (s *Store) Load(ctx context.Context, r io.Reader) (int, error) {
	var file fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return 0, fmt.Errorf("decode fixtures: %w", err)
	}

	for i, fb := range file.Batches {
		batch, err := fb.batch()
		if err != nil {
			return i, fmt.Errorf("fixture batch %d: %w", i, err)
		}
		if err := s.InsertBatch(ctx, batch); err != nil {
			return i, err
		}

		var chain []model.TimelineEvent
		for j, fe := range fb.Events {
			event, err := fe.event(batch.ID)
			if err != nil {
				return i, fmt.Errorf("fixture batch %s event %d: %w", batch.ID, j, err)
			}
			linked, err := ledger.Link(chain, event)
			if err != nil {
				return i, fmt.Errorf("fixture batch %s event %d: %w", batch.ID, j, err)
			}
			if err := s.InsertEvent(ctx, linked); err != nil {
				return i, err
			}
			chain = append(chain, linked)
		}
	}
	return len(file.Batches), nil
}

func (fb fixtureBatch) batch() (model.Batch, error) {
	id := identifier.Normalize(fb.ID)
	if !identifier.Valid(id) {
		return model.Batch{}, fmt.Errorf("invalid batch id %q", fb.ID)
	}
	batch := model.Batch{
		ID:           id,
		FarmerName:   fb.FarmerName,
		CropType:     fb.CropType,
		Location:     fb.Location,
		Grade:        fb.Grade,
		RegisteredAt: fb.RegisteredAt.UTC(),
	}
	if fb.HarvestDate != "" {
		d, err := time.Parse(time.DateOnly, fb.HarvestDate)
		if err != nil {
			return model.Batch{}, fmt.Errorf("parse harvest date: %w", err)
		}
		batch.HarvestDate = &d
	}
	if fb.QuantityKg != "" {
		q, err := decimal.NewFromString(fb.QuantityKg)
		if err != nil {
			return model.Batch{}, fmt.Errorf("parse quantity: %w", err)
		}
		batch.QuantityKg = &q
	}
	return batch, nil
}

func (fe fixtureEvent) event(id model.BatchID) (model.TimelineEvent, error) {
	stage := model.Stage(fe.Stage)
	if !stage.Valid() {
		return model.TimelineEvent{}, fmt.Errorf("unknown stage %q", fe.Stage)
	}
	event := model.TimelineEvent{
		BatchID:     id,
		Stage:       stage,
		Title:       fe.Title,
		Description: fe.Description,
		Timestamp:   fe.Timestamp,
		Location:    fe.Location,
		Temperature: fe.Temperature,
		Humidity:    fe.Humidity,
		Verified:    fe.Verified,
		Anomaly:     fe.Anomaly,
	}
	if fe.PricePerKg != "" {
		p, err := decimal.NewFromString(fe.PricePerKg)
		if err != nil {
			return model.TimelineEvent{}, fmt.Errorf("parse price: %w", err)
		}
		event.PricePerKg = &p
	}
	return event, nil
}
