// Package verification turns a batch and its timeline into the view shown to
// whoever scanned the batch.
package verification

import (
	"github.com/goodnatureofminers/farmtrace-backend/internal/ledger"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

const (
	DefaultPriceJumpRatio      = 3.0
	DefaultMaxTemperatureDelta = 8.0
	DefaultMaxHumidity         = 95.0
)

// Config holds anomaly thresholds. Zero values take the defaults.
type Config struct {
	PriceJumpRatio      float64
	MaxTemperatureDelta float64
	MaxHumidity         float64
}

// View is what a consumer sees after a successful lookup.
type View struct {
	Batch          model.Batch           `json:"batch"`
	Verified       bool                  `json:"verified"`
	Tampered       bool                  `json:"tampered"`
	AnomalyFlags   []AnomalyFlag         `json:"anomalyFlags"`
	Timeline       []model.TimelineEvent `json:"timeline"`
	PriceBreakdown *PriceBreakdown       `json:"priceBreakdown,omitempty"`
	Seal           string                `json:"seal,omitempty"`
}

// Kinds returns the distinct anomaly kinds in flag order.
func (v *View) Kinds() []AnomalyKind {
	seen := make(map[AnomalyKind]struct{}, len(v.AnomalyFlags))
	var kinds []AnomalyKind
	for _, f := range v.AnomalyFlags {
		if _, ok := seen[f.Kind]; ok {
			continue
		}
		seen[f.Kind] = struct{}{}
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

// Presenter builds views. It holds no state besides its thresholds.
type Presenter struct {
	cfg Config
}

func NewPresenter(cfg Config) *Presenter {
	if cfg.PriceJumpRatio <= 0 {
		cfg.PriceJumpRatio = DefaultPriceJumpRatio
	}
	if cfg.MaxTemperatureDelta <= 0 {
		cfg.MaxTemperatureDelta = DefaultMaxTemperatureDelta
	}
	if cfg.MaxHumidity <= 0 {
		cfg.MaxHumidity = DefaultMaxHumidity
	}
	return &Presenter{cfg: cfg}
}

var defaultPresenter = NewPresenter(Config{})

// Present builds a view with the default thresholds.
func Present(p *model.Provenance) (*View, bool) {
	return defaultPresenter.Present(p)
}

// Present returns (nil, false) when there is no record to show.
//
// Verified is true iff every event is verified and none carries the anomaly
// flag; derived anomalies and tampering are reported separately and do not
// change it.
func (pr *Presenter) Present(p *model.Provenance) (*View, bool) {
	if p == nil {
		return nil, false
	}

	events := make([]model.TimelineEvent, len(p.Events))
	copy(events, p.Events)

	verified := true
	for _, e := range events {
		verified = verified && e.Verified && !e.Anomaly
	}

	view := &View{
		Batch:          p.Batch,
		Verified:       verified,
		Timeline:       events,
		PriceBreakdown: breakdown(events),
		AnomalyFlags:   []AnomalyFlag{},
	}

	if err := ledger.Verify(p.Batch.ID, events); err != nil {
		view.Tampered = true
		view.AnomalyFlags = append(view.AnomalyFlags, AnomalyFlag{
			Kind:     AnomalyTampered,
			Severity: SeverityHigh,
			Detail:   err.Error(),
		})
	} else if head, err := ledger.Head(p.Batch.ID, events); err == nil {
		if seal, err := ledger.Seal(head); err == nil {
			view.Seal = seal
		}
	}

	view.AnomalyFlags = append(view.AnomalyFlags, flaggedEvents(events)...)
	view.AnomalyFlags = append(view.AnomalyFlags, priceJumps(events, pr.cfg.PriceJumpRatio)...)
	view.AnomalyFlags = append(view.AnomalyFlags, weatherAnomalies(events, pr.cfg.MaxTemperatureDelta, pr.cfg.MaxHumidity)...)
	view.AnomalyFlags = append(view.AnomalyFlags, geoMismatch(p.Batch, events)...)
	sortFlags(view.AnomalyFlags)

	return view, true
}
