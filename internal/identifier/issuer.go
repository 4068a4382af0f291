// Package identifier issues and normalizes batch identifiers.
package identifier

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/google/uuid"
)

// Prefix starts every batch identifier.
const Prefix = "FB-"

const (
	issuedLength = len(Prefix) + 26
	maxBodyLen   = 48
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Issuer derives new batch identifiers from time-ordered UUIDs.
type Issuer struct {
	newUUID func() (uuid.UUID, error)
}

// NewIssuer checks that the entropy source works so that Issue never has to fail.
func NewIssuer() (*Issuer, error) {
	if _, err := uuid.NewRandom(); err != nil {
		return nil, fmt.Errorf("entropy source unavailable: %w", err)
	}
	return &Issuer{newUUID: uuid.NewV7}, nil
}

// Issue returns a fresh identifier. The entropy source was verified by NewIssuer,
// a failure here means the host lost it and the process cannot continue.
func (i *Issuer) Issue() model.BatchID {
	id, err := i.newUUID()
	if err != nil {
		panic("identifier: entropy source failed after startup: " + err.Error())
	}
	return model.BatchID(Prefix + encoding.EncodeToString(id[:]))
}

// Normalize trims and upper-cases the textual form of an identifier.
func Normalize(raw string) model.BatchID {
	return model.BatchID(strings.ToUpper(strings.TrimSpace(raw)))
}

// Valid reports whether id has identifier syntax: the prefix followed by
// upper-case letters, digits or dashes.
func Valid(id model.BatchID) bool {
	s := string(id)
	if !strings.HasPrefix(s, Prefix) {
		return false
	}
	body := s[len(Prefix):]
	if body == "" || len(body) > maxBodyLen {
		return false
	}
	for _, r := range body {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// Timestamp extracts the issue time from identifiers produced by Issuer.
func Timestamp(id model.BatchID) (time.Time, bool) {
	s := string(id)
	if len(s) != issuedLength || !strings.HasPrefix(s, Prefix) {
		return time.Time{}, false
	}
	raw, err := encoding.DecodeString(s[len(Prefix):])
	if err != nil || len(raw) != 16 {
		return time.Time{}, false
	}
	u, err := uuid.FromBytes(raw)
	if err != nil || u.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), true
}
