// Package model defines domain models for batch registration and traceability.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchID identifies one registered unit of produce.
type BatchID string

func (id BatchID) String() string {
	return string(id)
}

// Stage is a supply-chain touchpoint category.
type Stage string

var (
	StageFarm       Stage = "farm"
	StageAggregator Stage = "aggregator"
	StageTransport  Stage = "transport"
	StageRetailer   Stage = "retailer"
)

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	switch s {
	case StageFarm, StageAggregator, StageTransport, StageRetailer:
		return true
	default:
		return false
	}
}

// Grade is the quality assessment attached to a batch.
type Grade struct {
	Label      string  `json:"label" yaml:"label"`
	Defects    string  `json:"defects,omitempty" yaml:"defects"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Batch is the record bound to a BatchID at registration.
type Batch struct {
	ID           BatchID          `json:"batchId"`
	FarmerName   string           `json:"farmerName"`
	CropType     string           `json:"cropType"`
	Location     string           `json:"location"`
	HarvestDate  *time.Time       `json:"harvestDate,omitempty"`
	QuantityKg   *decimal.Decimal `json:"quantityKg,omitempty"`
	Grade        *Grade           `json:"grade,omitempty"`
	RegisteredAt time.Time        `json:"registeredAt"`
}

// Summary is the compact payload carried by a batch symbol.
type Summary struct {
	BatchID    BatchID `json:"batchId"`
	FarmerName string  `json:"farmerName"`
	CropType   string  `json:"cropType"`
	Location   string  `json:"location"`
}

// Summary returns the symbol payload for the batch.
func (b Batch) Summary() Summary {
	return Summary{
		BatchID:    b.ID,
		FarmerName: b.FarmerName,
		CropType:   b.CropType,
		Location:   b.Location,
	}
}

// RegistryStats aggregates registered batches.
type RegistryStats struct {
	Batches uint64 `json:"batches"`
	Farmers uint64 `json:"farmers"`
	// Crops counts batches per crop type.
	Crops map[string]uint64 `json:"crops"`
}
