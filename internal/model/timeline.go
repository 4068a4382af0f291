package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimelineEvent records one touchpoint of a batch. Events are append-only.
type TimelineEvent struct {
	BatchID     BatchID          `json:"batchId"`
	Sequence    uint32           `json:"sequence"`
	Stage       Stage            `json:"stage"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
	Location    string           `json:"location"`
	Temperature *float64         `json:"temperature,omitempty"`
	Humidity    *float64         `json:"humidity,omitempty"`
	PricePerKg  *decimal.Decimal `json:"pricePerKg,omitempty"`
	Verified    bool             `json:"verified"`
	Anomaly     bool             `json:"anomaly"`
	PrevHash    string           `json:"prevHash"`
	Hash        string           `json:"hash"`
}

// Provenance is a batch together with its ordered timeline.
type Provenance struct {
	Batch  Batch           `json:"batch"`
	Events []TimelineEvent `json:"events"`
}
