package verification

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/shopspring/decimal"
)

// AnomalyEntry is one flag in the cross-batch anomaly feed.
type AnomalyEntry struct {
	BatchID    model.BatchID `json:"batchId"`
	FarmerName string        `json:"farmerName"`
	CropType   string        `json:"cropType"`
	// Timestamp is the flagged event's time, or registration for batch-level flags.
	Timestamp time.Time `json:"timestamp"`
	AnomalyFlag
}

// AnomalyFilter narrows the feed. Zero values match everything.
type AnomalyFilter struct {
	Severity Severity
	// Search matches batch id, farmer or crop, case-insensitively.
	Search string
}

// CropMargin is the average price split of one crop over the batches that
// reached retail.
type CropMargin struct {
	Crop           string          `json:"crop"`
	Batches        int             `json:"batches"`
	FarmerShare    decimal.Decimal `json:"farmer"`
	TransportShare decimal.Decimal `json:"transport"`
	RetailerShare  decimal.Decimal `json:"retailer"`
}

// Overview is the registry-wide picture for administrators. Totals come from
// the store; verified, anomaly and margin figures cover the sampled batches.
type Overview struct {
	TotalBatches      uint64            `json:"totalBatches"`
	ActiveFarmers     uint64            `json:"activeFarmers"`
	CropDistribution  map[string]uint64 `json:"cropDistribution"`
	Sampled           int               `json:"sampled"`
	VerifiedProducts  int               `json:"verifiedProducts"`
	AnomaliesDetected int               `json:"anomaliesDetected"`
	Margins           []CropMargin      `json:"margins"`
}

// ParseSeverity accepts high, medium, low or an empty string.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case "", SeverityHigh, SeverityMedium, SeverityLow:
		return sev, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

func (f AnomalyFilter) matchesBatch(b model.Batch) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	for _, field := range []string{string(b.ID), b.FarmerName, b.CropType} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Anomalies presents every batch and lists its flags, most severe first and
// newest first within a severity.
func (pr *Presenter) Anomalies(ps []*model.Provenance, f AnomalyFilter) []AnomalyEntry {
	entries := make([]AnomalyEntry, 0)
	for _, p := range ps {
		if p == nil || !f.matchesBatch(p.Batch) {
			continue
		}
		view, ok := pr.Present(p)
		if !ok {
			continue
		}
		for _, flag := range view.AnomalyFlags {
			if f.Severity != "" && flag.Severity != f.Severity {
				continue
			}
			entries = append(entries, AnomalyEntry{
				BatchID:     p.Batch.ID,
				FarmerName:  p.Batch.FarmerName,
				CropType:    p.Batch.CropType,
				Timestamp:   flagTime(p, flag),
				AnomalyFlag: flag,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := severityRank(a.Severity), severityRank(b.Severity); ra != rb {
			return ra < rb
		}
		return a.Timestamp.After(b.Timestamp)
	})
	return entries
}

func flagTime(p *model.Provenance, flag AnomalyFlag) time.Time {
	if flag.Sequence != nil {
		for _, e := range p.Events {
			if e.Sequence == *flag.Sequence {
				return e.Timestamp
			}
		}
	}
	return p.Batch.RegisteredAt
}

// Summarize combines store totals with what the sampled batches show.
func (pr *Presenter) Summarize(stats model.RegistryStats, ps []*model.Provenance) *Overview {
	o := &Overview{
		TotalBatches:     stats.Batches,
		ActiveFarmers:    stats.Farmers,
		CropDistribution: stats.Crops,
		Margins:          []CropMargin{},
	}
	if o.CropDistribution == nil {
		o.CropDistribution = map[string]uint64{}
	}

	type sums struct {
		n                           int
		farmer, transport, retailer decimal.Decimal
	}
	byCrop := make(map[string]*sums)
	for _, p := range ps {
		view, ok := pr.Present(p)
		if !ok {
			continue
		}
		o.Sampled++
		if view.Verified && !view.Tampered {
			o.VerifiedProducts++
		}
		if len(view.AnomalyFlags) > 0 {
			o.AnomaliesDetected++
		}
		if b := view.PriceBreakdown; b != nil {
			acc, ok := byCrop[p.Batch.CropType]
			if !ok {
				acc = &sums{}
				byCrop[p.Batch.CropType] = acc
			}
			acc.n++
			acc.farmer = acc.farmer.Add(b.FarmerShare)
			acc.transport = acc.transport.Add(b.TransportShare)
			acc.retailer = acc.retailer.Add(b.RetailerShare)
		}
	}

	for crop, acc := range byCrop {
		n := decimal.NewFromInt(int64(acc.n))
		o.Margins = append(o.Margins, CropMargin{
			Crop:           crop,
			Batches:        acc.n,
			FarmerShare:    acc.farmer.Div(n).Round(1),
			TransportShare: acc.transport.Div(n).Round(1),
			RetailerShare:  acc.retailer.Div(n).Round(1),
		})
	}
	sort.Slice(o.Margins, func(i, j int) bool {
		return o.Margins[i].Crop < o.Margins[j].Crop
	})
	return o
}
