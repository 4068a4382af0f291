package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/codec"
	"github.com/goodnatureofminers/farmtrace-backend/internal/identifier"
	"github.com/goodnatureofminers/farmtrace-backend/internal/ledger"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/pkg/workerpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// maxClockSkew is how far ahead of the registry clock an event may be stamped.
	maxClockSkew = 5 * time.Minute

	// MaxRecent bounds one listing of recent batches.
	MaxRecent     = 1000
	recentLoaders = 4
)

// Registration is what a farmer submits for a new batch.
type Registration struct {
	FarmerName  string           `json:"farmerName"`
	CropType    string           `json:"cropType"`
	Location    string           `json:"location"`
	HarvestDate *time.Time       `json:"harvestDate,omitempty"`
	QuantityKg  *decimal.Decimal `json:"quantityKg,omitempty"`
	// PricePerKg is the farm-gate price recorded on the harvest event.
	PricePerKg  *decimal.Decimal `json:"pricePerKg,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
	Humidity    *float64         `json:"humidity,omitempty"`
}

// EventInput is a touchpoint reported by a supply-chain party.
type EventInput struct {
	Stage       model.Stage      `json:"stage"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
	Location    string           `json:"location"`
	Temperature *float64         `json:"temperature,omitempty"`
	Humidity    *float64         `json:"humidity,omitempty"`
	PricePerKg  *decimal.Decimal `json:"pricePerKg,omitempty"`
	Verified    bool             `json:"verified"`
	Anomaly     bool             `json:"anomaly"`
}

// Service is the batch registry.
type Service struct {
	store   Store
	scans   ScanStore
	queue   ScanQueue
	issuer  Issuer
	metrics Metrics
	logger  *zap.Logger
	locks   *batchLocks
	now     func() time.Time
}

func NewService(store Store, scans ScanStore, queue ScanQueue, issuer Issuer, metrics Metrics, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("registry store is required")
	}
	if scans == nil {
		return nil, errors.New("registry scan store is required")
	}
	if queue == nil {
		return nil, errors.New("registry scan queue is required")
	}
	if issuer == nil {
		return nil, errors.New("registry issuer is required")
	}
	if metrics == nil {
		return nil, errors.New("registry metrics is required")
	}

	return &Service{
		store:   store,
		scans:   scans,
		queue:   queue,
		issuer:  issuer,
		metrics: metrics,
		logger:  logger,
		locks:   newBatchLocks(),
		now:     time.Now,
	}, nil
}

// Register issues an identifier, stores the batch and opens its timeline with
// the harvest event.
func (s *Service) Register(ctx context.Context, reg Registration) (batch model.Batch, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("register", err, started)
	}()

	if reg.QuantityKg != nil && !reg.QuantityKg.IsPositive() {
		return model.Batch{}, invalid("quantity must be positive")
	}
	if err = validateReadings(reg.Temperature, reg.Humidity, reg.PricePerKg); err != nil {
		return model.Batch{}, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	batch = model.Batch{
		ID:           s.issuer.Issue(),
		FarmerName:   strings.TrimSpace(reg.FarmerName),
		CropType:     strings.TrimSpace(reg.CropType),
		Location:     strings.TrimSpace(reg.Location),
		HarvestDate:  reg.HarvestDate,
		QuantityKg:   reg.QuantityKg,
		RegisteredAt: now,
	}
	if err = codec.Validate(batch.Summary()); err != nil {
		return model.Batch{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	harvestedAt := now
	if reg.HarvestDate != nil {
		if reg.HarvestDate.After(now) {
			return model.Batch{}, invalid("harvest date %s is in the future", reg.HarvestDate.Format(time.DateOnly))
		}
		harvestedAt = *reg.HarvestDate
	}

	description := fmt.Sprintf("%s harvested by %s", batch.CropType, batch.FarmerName)
	if batch.QuantityKg != nil {
		description = fmt.Sprintf("%s kg of %s", batch.QuantityKg.String(), description)
	}
	genesis, err := ledger.Link(nil, model.TimelineEvent{
		BatchID:     batch.ID,
		Stage:       model.StageFarm,
		Title:       "Harvested",
		Description: description,
		Timestamp:   harvestedAt,
		Location:    batch.Location,
		Temperature: reg.Temperature,
		Humidity:    reg.Humidity,
		PricePerKg:  reg.PricePerKg,
		Verified:    true,
	})
	if err != nil {
		return model.Batch{}, fmt.Errorf("link harvest event: %w", err)
	}

	unlock := s.locks.lock(batch.ID)
	defer unlock()

	// a batch stored without its harvest event stays unresolvable, see load
	if err = s.store.InsertBatch(ctx, batch); err != nil {
		return model.Batch{}, fmt.Errorf("insert batch %s: %w", batch.ID, err)
	}
	if err = s.insertLinked(ctx, genesis); err != nil {
		return model.Batch{}, err
	}

	s.logger.Info("batch registered", zap.Stringer("batch_id", batch.ID), zap.String("crop", batch.CropType))
	return batch, nil
}

// Grade attaches a quality assessment and records it on the timeline as an
// aggregator quality check.
func (s *Service) Grade(ctx context.Context, id model.BatchID, grade model.Grade) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("grade", err, started)
	}()

	id = identifier.Normalize(string(id))
	grade.Label = strings.TrimSpace(grade.Label)
	if grade.Label == "" {
		return invalid("grade label is required")
	}
	if grade.Confidence < 0 || grade.Confidence > 1 {
		return invalid("grade confidence %.2f outside [0, 1]", grade.Confidence)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	batch, events, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	description := fmt.Sprintf("Grade %s (confidence %.0f%%)", grade.Label, grade.Confidence*100)
	if grade.Defects != "" {
		description += ": " + grade.Defects
	}
	// the chained event is the record of the grade; the batch field follows it
	if _, err = s.appendLocked(ctx, events, model.TimelineEvent{
		BatchID:     id,
		Stage:       model.StageAggregator,
		Title:       "Quality Check",
		Description: description,
		Timestamp:   s.now(),
		Location:    batch.Location,
		Verified:    true,
	}); err != nil {
		return err
	}
	if err = s.store.UpdateGrade(ctx, id, grade); err != nil {
		return fmt.Errorf("update grade of %s: %w", id, err)
	}
	return nil
}

// Append adds a touchpoint to the timeline of id. Appends to one batch are
// serialized; an event older than the last one is rejected.
func (s *Service) Append(ctx context.Context, id model.BatchID, in EventInput) (event model.TimelineEvent, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("append", err, started)
	}()

	id = identifier.Normalize(string(id))
	if err = validateEvent(in); err != nil {
		return model.TimelineEvent{}, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	now := s.now()
	if in.Timestamp.IsZero() {
		in.Timestamp = now
	}
	if in.Timestamp.After(now.Add(maxClockSkew)) {
		return model.TimelineEvent{}, invalid("event timestamp %s is in the future", in.Timestamp.Format(time.RFC3339))
	}

	_, events, err := s.load(ctx, id)
	if err != nil {
		return model.TimelineEvent{}, err
	}

	return s.appendLocked(ctx, events, model.TimelineEvent{
		BatchID:     id,
		Stage:       in.Stage,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Timestamp:   in.Timestamp,
		Location:    strings.TrimSpace(in.Location),
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		PricePerKg:  in.PricePerKg,
		Verified:    in.Verified,
		Anomaly:     in.Anomaly,
	})
}

func (s *Service) appendLocked(ctx context.Context, chain []model.TimelineEvent, e model.TimelineEvent) (model.TimelineEvent, error) {
	linked, err := ledger.Link(chain, e)
	if err != nil {
		return model.TimelineEvent{}, fmt.Errorf("link event: %w", err)
	}
	if err := s.insertLinked(ctx, linked); err != nil {
		return model.TimelineEvent{}, err
	}
	return linked, nil
}

func (s *Service) insertLinked(ctx context.Context, linked model.TimelineEvent) error {
	if err := s.store.InsertEvent(ctx, linked); err != nil {
		return fmt.Errorf("insert event %d of %s: %w", linked.Sequence, linked.BatchID, err)
	}
	s.logger.Debug("event appended",
		zap.Stringer("batch_id", linked.BatchID),
		zap.Uint32("sequence", linked.Sequence),
		zap.String("stage", string(linked.Stage)),
	)
	return nil
}

// load reads a batch and its timeline. A batch without its harvest event is a
// registration that failed halfway and is reported as not found.
func (s *Service) load(ctx context.Context, id model.BatchID) (model.Batch, []model.TimelineEvent, error) {
	batch, err := s.store.Batch(ctx, id)
	if err != nil {
		return model.Batch{}, nil, lookupError(id, err)
	}
	events, err := s.store.Events(ctx, id)
	if err != nil {
		return model.Batch{}, nil, lookupError(id, err)
	}
	if len(events) == 0 {
		s.logger.Warn("batch stored without harvest event", zap.Stringer("batch_id", id))
		return model.Batch{}, nil, notFound(id)
	}
	return batch, events, nil
}

// Resolve returns the batch and its ordered timeline. Malformed identifiers
// resolve to not-found.
func (s *Service) Resolve(ctx context.Context, id model.BatchID) (p *model.Provenance, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("resolve", err, started)
	}()

	id = identifier.Normalize(string(id))
	if !identifier.Valid(id) {
		return nil, notFound(id)
	}

	batch, events, err := s.load(ctx, id)
	if err != nil {
		s.logLookup(id, err)
		return nil, err
	}

	return &model.Provenance{Batch: batch, Events: events}, nil
}

func (s *Service) logLookup(id model.BatchID, err error) {
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("batch not found", zap.Stringer("batch_id", id))
		return
	}
	s.logger.Error("resolve batch", zap.Stringer("batch_id", id), zap.Error(err))
}

// Recent returns up to limit of the most recently registered batches with
// their timelines. Batches still missing their harvest event are skipped.
func (s *Service) Recent(ctx context.Context, limit int) (ps []*model.Provenance, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("recent", err, started)
	}()

	if limit < 1 || limit > MaxRecent {
		return nil, invalid("limit %d outside [1, %d]", limit, MaxRecent)
	}
	batches, err := s.store.ListBatches(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	loaded, err := workerpool.Map(ctx, recentLoaders, batches, func(ctx context.Context, b model.Batch) (*model.Provenance, error) {
		events, err := s.store.Events(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("events of %s: %w", b.ID, err)
		}
		if len(events) == 0 {
			return nil, nil
		}
		return &model.Provenance{Batch: b, Events: events}, nil
	})
	if err != nil {
		return nil, err
	}

	ps = make([]*model.Provenance, 0, len(loaded))
	for _, p := range loaded {
		if p != nil {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

// RegistryStats aggregates registered batches.
func (s *Service) RegistryStats(ctx context.Context) (stats model.RegistryStats, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("registry_stats", err, started)
	}()

	stats, err = s.store.RegistryStats(ctx)
	if err != nil {
		return model.RegistryStats{}, fmt.Errorf("registry stats: %w", err)
	}
	return stats, nil
}

// RecordScan queues an audit record of a verification attempt.
func (s *Service) RecordScan(ctx context.Context, rec model.ScanRecord) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("record_scan", err, started)
	}()

	rec.BatchID = identifier.Normalize(string(rec.BatchID))
	switch rec.Source {
	case model.ScanSourceCamera, model.ScanSourceManual, model.ScanSourceAPI:
	default:
		return invalid("unknown scan source %q", rec.Source)
	}
	switch rec.Outcome {
	case model.ScanFound, model.ScanNotFound, model.ScanTransportFailure:
	default:
		return invalid("unknown scan outcome %q", rec.Outcome)
	}
	if rec.ScannedAt.IsZero() {
		rec.ScannedAt = s.now()
	}
	rec.ScannedAt = rec.ScannedAt.UTC().Truncate(time.Millisecond)

	if err = s.queue.Add(ctx, rec); err != nil {
		return fmt.Errorf("queue scan record: %w", err)
	}
	return nil
}

// ScanStats aggregates recorded scans.
func (s *Service) ScanStats(ctx context.Context) (stats model.ScanStats, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("scan_stats", err, started)
	}()

	stats, err = s.scans.ScanStats(ctx)
	if err != nil {
		return model.ScanStats{}, fmt.Errorf("scan stats: %w", err)
	}
	return stats, nil
}

// OutcomeOf classifies a Resolve error for a scan record.
func OutcomeOf(err error) model.ScanOutcome {
	switch {
	case err == nil:
		return model.ScanFound
	case errors.Is(err, ErrNotFound):
		return model.ScanNotFound
	default:
		return model.ScanTransportFailure
	}
}

func validateEvent(in EventInput) error {
	if !in.Stage.Valid() {
		return invalid("unknown stage %q", in.Stage)
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid("event title is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return invalid("event location is required")
	}
	return validateReadings(in.Temperature, in.Humidity, in.PricePerKg)
}

func validateReadings(temperature, humidity *float64, price *decimal.Decimal) error {
	if temperature != nil && (*temperature < -60 || *temperature > 70) {
		return invalid("temperature %.1f°C out of range", *temperature)
	}
	if humidity != nil && (*humidity < 0 || *humidity > 100) {
		return invalid("humidity %.1f%% out of range", *humidity)
	}
	if price != nil && price.IsNegative() {
		return invalid("price per kg must not be negative")
	}
	return nil
}
