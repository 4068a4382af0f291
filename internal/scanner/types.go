package scanner

import (
	"context"
	"image"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Device is a capture source such as a camera or a frame directory.
	Device interface {
		Open(ctx context.Context) (Stream, error)
	}
	// Stream yields frames from an opened device. A nil frame means nothing was captured.
	Stream interface {
		Frame(ctx context.Context) (image.Image, error)
		Close() error
	}
	// Decoder reads symbols from frames and decodes their text.
	Decoder interface {
		ReadSymbol(img image.Image) (string, error)
		DecodeText(text string) (model.Summary, error)
	}
	Metrics interface {
		ObserveStart(err error)
		ObserveSample(outcome string, started time.Time)
	}
)
