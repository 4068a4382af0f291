package verification

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/shopspring/decimal"
)

// AnomalyKind names a reason a batch deserves a closer look.
type AnomalyKind string

const (
	AnomalyFlagged     AnomalyKind = "flagged"
	AnomalyPriceJump   AnomalyKind = "price_jump"
	AnomalyWeather     AnomalyKind = "weather_anomaly"
	AnomalyGeoMismatch AnomalyKind = "geo_mismatch"
	AnomalyTampered    AnomalyKind = "tampered"
)

// Severity ranks anomaly flags for display.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// AnomalyFlag is one detected anomaly. Sequence is nil for batch-level flags.
type AnomalyFlag struct {
	Kind     AnomalyKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Sequence *uint32     `json:"sequence,omitempty"`
	Detail   string      `json:"detail"`
}

func eventFlag(kind AnomalyKind, sev Severity, e model.TimelineEvent, detail string) AnomalyFlag {
	seq := e.Sequence
	return AnomalyFlag{Kind: kind, Severity: sev, Sequence: &seq, Detail: detail}
}

func flaggedEvents(events []model.TimelineEvent) []AnomalyFlag {
	var flags []AnomalyFlag
	for _, e := range events {
		if e.Anomaly {
			flags = append(flags, eventFlag(AnomalyFlagged, SeverityHigh, e, fmt.Sprintf("%s at %s flagged", e.Title, e.Location)))
		}
	}
	return flags
}

func priceJumps(events []model.TimelineEvent, ratio float64) []AnomalyFlag {
	if ratio <= 0 {
		return nil
	}
	farm, ok := farmGatePrice(events)
	if !ok || !farm.IsPositive() {
		return nil
	}
	limit := farm.Mul(decimal.NewFromFloat(ratio))

	var flags []AnomalyFlag
	for _, e := range events {
		if e.Stage != model.StageRetailer || e.PricePerKg == nil {
			continue
		}
		if e.PricePerKg.GreaterThan(limit) {
			flags = append(flags, eventFlag(AnomalyPriceJump, SeverityHigh, e,
				fmt.Sprintf("retail price %s is %sx the farm-gate price %s",
					e.PricePerKg.StringFixed(2), e.PricePerKg.Div(farm).StringFixed(1), farm.StringFixed(2))))
		}
	}
	return flags
}

func weatherAnomalies(events []model.TimelineEvent, maxDelta, maxHumidity float64) []AnomalyFlag {
	var (
		flags    []AnomalyFlag
		lastTemp *float64
	)
	for _, e := range events {
		if e.Temperature != nil {
			if lastTemp != nil && maxDelta > 0 {
				delta := *e.Temperature - *lastTemp
				if delta < 0 {
					delta = -delta
				}
				if delta > maxDelta {
					flags = append(flags, eventFlag(AnomalyWeather, SeverityMedium, e,
						fmt.Sprintf("temperature changed by %.1f°C", delta)))
				}
			}
			lastTemp = e.Temperature
		}
		if e.Humidity != nil && maxHumidity > 0 && *e.Humidity > maxHumidity {
			flags = append(flags, eventFlag(AnomalyWeather, SeverityLow, e,
				fmt.Sprintf("humidity %.0f%% above %.0f%%", *e.Humidity, maxHumidity)))
		}
	}
	return flags
}

func geoMismatch(batch model.Batch, events []model.TimelineEvent) []AnomalyFlag {
	for _, e := range events {
		if e.Stage != model.StageFarm {
			continue
		}
		if !sameLocation(e.Location, batch.Location) {
			return []AnomalyFlag{eventFlag(AnomalyGeoMismatch, SeverityMedium, e,
				fmt.Sprintf("farm event at %q, batch registered at %q", e.Location, batch.Location))}
		}
		return nil
	}
	return nil
}

func sameLocation(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func sortFlags(flags []AnomalyFlag) {
	sort.SliceStable(flags, func(i, j int) bool {
		a, b := flags[i], flags[j]
		switch {
		case a.Sequence == nil && b.Sequence != nil:
			return true
		case a.Sequence != nil && b.Sequence == nil:
			return false
		case a.Sequence != nil && *a.Sequence != *b.Sequence:
			return *a.Sequence < *b.Sequence
		}
		return a.Kind < b.Kind
	})
}
