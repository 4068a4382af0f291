package model

import "time"

// ScanSource tells how a symbol reached the system.
type ScanSource string

var (
	ScanSourceCamera ScanSource = "camera"
	ScanSourceManual ScanSource = "manual"
	ScanSourceAPI    ScanSource = "api"
)

// ScanOutcome is the lookup result of a scan.
type ScanOutcome string

var (
	ScanFound            ScanOutcome = "found"
	ScanNotFound         ScanOutcome = "not_found"
	ScanTransportFailure ScanOutcome = "transport_failure"
)

// ScanRecord audits one verification attempt.
type ScanRecord struct {
	BatchID   BatchID
	Source    ScanSource
	Outcome   ScanOutcome
	Verified  bool
	ScannedAt time.Time
}

// ScanStats aggregates scan records by outcome.
type ScanStats struct {
	Total     uint64 `json:"total"`
	Found     uint64 `json:"found"`
	NotFound  uint64 `json:"notFound"`
	Transport uint64 `json:"transportFailure"`
	Verified  uint64 `json:"verified"`
}
