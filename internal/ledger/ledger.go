// Package ledger links timeline events into a hash chain so that edits to
// stored history are detectable.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/pkg/safe"
)

// PricePlaces is the number of decimal places kept for prices.
const PricePlaces = 4

var (
	// ErrOutOfOrder is returned when an event predates the current chain head.
	ErrOutOfOrder = errors.New("event timestamp before chain head")
	// ErrIntegrity is returned when a stored chain does not recompute.
	ErrIntegrity = errors.New("hash chain integrity check failed")
)

// IntegrityError points at the first event whose link is broken.
type IntegrityError struct {
	BatchID  model.BatchID
	Sequence uint32
	Reason   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("batch %s event %d: %s", e.BatchID, e.Sequence, e.Reason)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

type canonicalEvent struct {
	BatchID     model.BatchID `json:"b"`
	Sequence    uint32        `json:"n"`
	Stage       model.Stage   `json:"s"`
	Title       string        `json:"t"`
	Description string        `json:"d"`
	Timestamp   string        `json:"ts"`
	Location    string        `json:"l"`
	Temperature *float64      `json:"tc,omitempty"`
	Humidity    *float64      `json:"h,omitempty"`
	PricePerKg  string        `json:"p,omitempty"`
	Verified    bool          `json:"v"`
	Anomaly     bool          `json:"a"`
}

// Genesis is the previous hash of the first event of a batch.
func Genesis(id model.BatchID) chainhash.Hash {
	return chainhash.DoubleHashH([]byte(id))
}

// Hash computes the link hash of e on top of prev.
func Hash(prev chainhash.Hash, e model.TimelineEvent) (chainhash.Hash, error) {
	c := canonicalEvent{
		BatchID:     e.BatchID,
		Sequence:    e.Sequence,
		Stage:       e.Stage,
		Title:       e.Title,
		Description: e.Description,
		Timestamp:   e.Timestamp.UTC().Format(time.RFC3339Nano),
		Location:    e.Location,
		Temperature: e.Temperature,
		Humidity:    e.Humidity,
		Verified:    e.Verified,
		Anomaly:     e.Anomaly,
	}
	if e.PricePerKg != nil {
		c.PricePerKg = e.PricePerKg.StringFixed(PricePlaces)
	}
	body, err := json.Marshal(c)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("marshal canonical event: %w", err)
	}

	buf := make([]byte, 0, chainhash.HashSize+len(body))
	buf = append(buf, prev[:]...)
	buf = append(buf, body...)
	return chainhash.DoubleHashH(buf), nil
}

// Link prepares e as the next event after chain: it assigns the sequence,
// normalizes timestamp and price precision to what storage keeps and fills
// PrevHash and Hash.
func Link(chain []model.TimelineEvent, e model.TimelineEvent) (model.TimelineEvent, error) {
	seq, err := safe.Uint32(len(chain))
	if err != nil {
		return model.TimelineEvent{}, fmt.Errorf("sequence for batch %s: %w", e.BatchID, err)
	}
	e.Sequence = seq
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Millisecond)
	if e.PricePerKg != nil {
		rounded := e.PricePerKg.Round(PricePlaces)
		e.PricePerKg = &rounded
	}

	prev := Genesis(e.BatchID)
	if len(chain) > 0 {
		last := chain[len(chain)-1]
		if e.Timestamp.Before(last.Timestamp) {
			return model.TimelineEvent{}, fmt.Errorf("batch %s at %s: %w", e.BatchID, e.Timestamp, ErrOutOfOrder)
		}
		h, err := chainhash.NewHashFromStr(last.Hash)
		if err != nil {
			return model.TimelineEvent{}, fmt.Errorf("parse head hash of batch %s: %w", e.BatchID, err)
		}
		prev = *h
	}

	h, err := Hash(prev, e)
	if err != nil {
		return model.TimelineEvent{}, err
	}
	e.PrevHash = prev.String()
	e.Hash = h.String()
	return e, nil
}

// Verify recomputes the chain of id and reports the first broken link.
func Verify(id model.BatchID, events []model.TimelineEvent) error {
	prev := Genesis(id)
	for i, e := range events {
		if e.BatchID != id {
			return &IntegrityError{BatchID: id, Sequence: e.Sequence, Reason: "event belongs to " + string(e.BatchID)}
		}
		if int(e.Sequence) != i {
			return &IntegrityError{BatchID: id, Sequence: e.Sequence, Reason: fmt.Sprintf("expected sequence %d", i)}
		}
		if e.PrevHash != prev.String() {
			return &IntegrityError{BatchID: id, Sequence: e.Sequence, Reason: "previous hash mismatch"}
		}
		h, err := Hash(prev, e)
		if err != nil {
			return err
		}
		if e.Hash != h.String() {
			return &IntegrityError{BatchID: id, Sequence: e.Sequence, Reason: "event hash mismatch"}
		}
		prev = h
	}
	return nil
}

// Head returns the hash of the last event, or the genesis hash for an empty chain.
func Head(id model.BatchID, events []model.TimelineEvent) (chainhash.Hash, error) {
	if len(events) == 0 {
		return Genesis(id), nil
	}
	h, err := chainhash.NewHashFromStr(events[len(events)-1].Hash)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("parse head hash of batch %s: %w", id, err)
	}
	return *h, nil
}
