// Package codec converts batch summaries to scannable QR symbols and back.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goodnatureofminers/farmtrace-backend/internal/identifier"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the default symbol edge in pixels.
	DefaultSize = 256
	// MaxFieldLength bounds every text field of a summary in bytes.
	MaxFieldLength = 64
	// MaxVersion is the largest QR version Encode produces.
	MaxVersion = 15
	// MinModulePixels is the smallest module edge a symbol is rendered with;
	// requested edges below that are grown.
	MinModulePixels = 4
)

// Config tunes symbol generation.
type Config struct {
	Level Level
	Size  int
}

// Codec encodes summaries into symbols and decodes scanned text or images.
type Codec struct {
	level Level
	size  int
}

// New builds a Codec, falling back to the medium recovery level and DefaultSize.
func New(cfg Config) (*Codec, error) {
	if cfg.Level == "" {
		cfg.Level = LevelMedium
	}
	if _, err := cfg.Level.recovery(); err != nil {
		return nil, err
	}
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	return &Codec{level: cfg.Level, size: cfg.Size}, nil
}

// Level returns the default recovery level of the codec.
func (c *Codec) Level() Level {
	return c.level
}

// Size returns the default symbol size of the codec.
func (c *Codec) Size() int {
	return c.size
}

// Encode builds a symbol at the codec's recovery level.
func (c *Codec) Encode(s model.Summary) (*Symbol, error) {
	return c.EncodeWithLevel(s, c.level)
}

// EncodeWithLevel builds a symbol at the given recovery level.
func (c *Codec) EncodeWithLevel(s model.Summary, level Level) (*Symbol, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	recovery, err := level.recovery()
	if err != nil {
		return nil, err
	}

	content, err := marshalSummary(s)
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(content, recovery)
	if err != nil {
		return nil, fmt.Errorf("build symbol for %s: %w", s.BatchID, err)
	}
	if qr.VersionNumber > MaxVersion {
		return nil, fmt.Errorf("%w: payload of %d bytes needs QR version %d at level %s, above %d",
			ErrInvalidSummary, len(content), qr.VersionNumber, level, MaxVersion)
	}

	return &Symbol{
		summary: s,
		content: content,
		level:   level,
		size:    c.size,
		qr:      qr,
	}, nil
}

// DecodeText decodes the text read from a symbol or typed by a person.
// A JSON object is treated as a symbol payload; anything else must be a bare identifier.
func (c *Codec) DecodeText(raw string) (model.Summary, error) {
	if !utf8.ValidString(raw) {
		return model.Summary{}, malformed("payload is not valid UTF-8", nil)
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return model.Summary{}, malformed("empty payload", nil)
	}

	if strings.HasPrefix(text, "{") {
		return decodePayload(text)
	}

	id := identifier.Normalize(text)
	if !identifier.Valid(id) {
		return model.Summary{}, unsupported("not a batch payload or identifier")
	}
	return model.Summary{BatchID: id}, nil
}

func decodePayload(text string) (model.Summary, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return model.Summary{}, malformed("invalid json", err)
	}
	if _, ok := fields["batchId"]; !ok {
		return model.Summary{}, unsupported("json payload without batchId")
	}

	var s model.Summary
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return model.Summary{}, malformed("invalid field types", err)
	}
	if !identifier.Valid(s.BatchID) {
		return model.Summary{}, malformed(fmt.Sprintf("invalid batch id %q", s.BatchID), nil)
	}
	return s, nil
}

func marshalSummary(s model.Summary) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Validate reports whether s can be carried by a symbol.
func Validate(s model.Summary) error {
	if !identifier.Valid(s.BatchID) {
		return fmt.Errorf("%w: batch id %q", ErrInvalidSummary, s.BatchID)
	}
	for _, f := range []struct {
		name, value string
	}{
		{"farmerName", s.FarmerName},
		{"cropType", s.CropType},
		{"location", s.Location},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidSummary, f.name)
		}
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidSummary, f.name)
		}
		if len(f.value) > MaxFieldLength {
			return fmt.Errorf("%w: %s longer than %d bytes", ErrInvalidSummary, f.name, MaxFieldLength)
		}
	}
	return nil
}
