// Package scanner acquires batch symbols from a capture device or from manual
// entry and emits each decoded payload once.
package scanner

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/clock"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"go.uber.org/zap"
)

// State of a scanner.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateDecoded
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateDecoded:
		return "decoded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// EventKind tells decoded payloads from non-fatal failures.
type EventKind string

const (
	EventDecoded EventKind = "decoded"
	EventFailed  EventKind = "failed"
)

// Event is one scan result.
type Event struct {
	Kind    EventKind
	Summary model.Summary
	Raw     string
	Err     error
	At      time.Time
}

// Sample outcomes reported to Metrics.
const (
	OutcomeEmpty          = "empty"
	OutcomeDuplicate      = "duplicate"
	OutcomeDecoded        = "decoded"
	OutcomeRejected       = "rejected"
	OutcomeFrameError     = "frame_error"
	OutcomeManualDecoded  = "manual_decoded"
	OutcomeManualRejected = "manual_rejected"
)

const (
	defaultSampleInterval = 100 * time.Millisecond
	defaultDebounceWindow = 2 * time.Second
	defaultEventBuffer    = 16
)

// Config tunes sampling.
type Config struct {
	// SampleInterval is the pause between samples.
	SampleInterval time.Duration
	// DebounceWindow suppresses the same symbol seen again within the window.
	DebounceWindow time.Duration
	// Region restricts decoding to part of the frame. Empty means the whole frame.
	Region image.Rectangle
	// Continuous keeps acquiring after a decode.
	Continuous  bool
	EventBuffer int
}

func (c *Config) applyDefaults() {
	if c.SampleInterval <= 0 {
		c.SampleInterval = defaultSampleInterval
	}
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = defaultDebounceWindow
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = defaultEventBuffer
	}
}

// Scanner owns one acquisition cycle at a time.
type Scanner struct {
	device  Device
	decoder Decoder
	metrics Metrics
	logger  *zap.Logger
	cfg     Config
	sleep   clock.SleepFunc
	now     func() time.Time

	mu     sync.Mutex
	state  State
	cycle  uint64
	cancel context.CancelFunc
	done   chan struct{}
	events chan Event
}

// New builds an idle Scanner.
func New(device Device, decoder Decoder, metrics Metrics, logger *zap.Logger, cfg Config) (*Scanner, error) {
	if device == nil {
		return nil, errors.New("scanner device is required")
	}
	if decoder == nil {
		return nil, errors.New("scanner decoder is required")
	}
	if metrics == nil {
		return nil, errors.New("scanner metrics is required")
	}
	cfg.applyDefaults()

	return &Scanner{
		device:  device,
		decoder: decoder,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		sleep:   clock.SleepWithContext,
		now:     time.Now,
	}, nil
}

// State returns the current state.
func (s *Scanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start opens the device and begins sampling. Device-unavailable and
// permission-denied errors are returned here and leave the scanner Failed.
// The returned channel is closed when acquisition ends.
func (s *Scanner) Start(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAcquiring {
		return nil, ErrAlreadyStarted
	}
	if s.cancel != nil {
		// previous cycle ended on its own
		s.cancel()
		<-s.done
		s.cancel, s.done, s.events = nil, nil, nil
	}

	stream, err := s.device.Open(ctx)
	s.metrics.ObserveStart(err)
	if err != nil {
		s.state = StateFailed
		return nil, asCaptureError(err, DeviceUnavailable)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	events := make(chan Event, s.cfg.EventBuffer)
	done := make(chan struct{})

	s.cycle++
	s.state = StateAcquiring
	s.cancel = cancel
	s.done = done
	s.events = events

	s.logger.Debug("scanner acquiring", zap.Duration("interval", s.cfg.SampleInterval))
	go s.run(loopCtx, s.cycle, stream, events, done)
	return events, nil
}

// Stop cancels acquisition before the next sample, waits for the loop to exit
// and the device to be released, and discards events not yet received.
// It is safe to call in any state.
func (s *Scanner) Stop() {
	s.mu.Lock()
	cycle := s.cycle
	cancel, done, events := s.cancel, s.done, s.events
	s.cancel, s.done, s.events = nil, nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		for range events {
		}
	}

	s.mu.Lock()
	// a Start that ran while we waited owns the state now
	if s.cycle == cycle {
		s.state = StateIdle
	}
	s.mu.Unlock()
}

// Submit decodes manually entered text without touching the device.
func (s *Scanner) Submit(text string) (model.Summary, error) {
	started := s.now()
	summary, err := s.decoder.DecodeText(text)
	if err != nil {
		s.metrics.ObserveSample(OutcomeManualRejected, started)
		return model.Summary{}, err
	}
	s.metrics.ObserveSample(OutcomeManualDecoded, started)
	return summary, nil
}

func (s *Scanner) run(ctx context.Context, cycle uint64, stream Stream, events chan<- Event, done chan<- struct{}) {
	defer close(done)
	defer close(events)
	defer func() {
		if err := stream.Close(); err != nil {
			s.logger.Warn("release capture device", zap.Error(err))
		}
	}()

	final := s.loop(ctx, stream, events)
	s.mu.Lock()
	if s.cycle == cycle {
		s.state = final
	}
	s.mu.Unlock()
	s.logger.Debug("scanner finished", zap.Stringer("state", final))
}

func (s *Scanner) loop(ctx context.Context, stream Stream, events chan<- Event) State {
	// frame errors keep their own history so they never reset the symbol in view
	deb := debouncer{window: s.cfg.DebounceWindow}
	frameDeb := debouncer{window: s.cfg.DebounceWindow}
	for {
		if ctx.Err() != nil {
			return StateCancelled
		}

		started := s.now()
		frame, err := stream.Frame(ctx)
		if ctx.Err() != nil {
			return StateCancelled
		}

		if err != nil {
			s.metrics.ObserveSample(OutcomeFrameError, started)
			if isTerminal(err) {
				s.emit(ctx, events, Event{Kind: EventFailed, Err: err, At: started})
				return StateFailed
			}
			if frameDeb.accept(err.Error(), started) {
				s.logger.Debug("transient frame error", zap.Error(err))
				if !s.emit(ctx, events, Event{Kind: EventFailed, Err: asCaptureError(err, TransientFrameError), At: started}) {
					return StateCancelled
				}
			}
		} else if ev, ok := s.sample(frame, &deb, started); ok {
			if !s.emit(ctx, events, ev) {
				return StateCancelled
			}
			if ev.Kind == EventDecoded && !s.cfg.Continuous {
				return StateDecoded
			}
		}

		if err := s.sleep(ctx, s.cfg.SampleInterval); err != nil {
			return StateCancelled
		}
	}
}

func (s *Scanner) sample(frame image.Image, deb *debouncer, started time.Time) (Event, bool) {
	if frame == nil {
		s.metrics.ObserveSample(OutcomeEmpty, started)
		return Event{}, false
	}

	text, err := s.decoder.ReadSymbol(crop(frame, s.cfg.Region))
	if err != nil {
		s.metrics.ObserveSample(OutcomeEmpty, started)
		return Event{}, false
	}
	if !deb.accept(text, started) {
		s.metrics.ObserveSample(OutcomeDuplicate, started)
		return Event{}, false
	}

	summary, err := s.decoder.DecodeText(text)
	if err != nil {
		s.metrics.ObserveSample(OutcomeRejected, started)
		s.logger.Debug("discarding undecodable symbol", zap.Error(err))
		return Event{Kind: EventFailed, Raw: text, Err: err, At: started}, true
	}

	s.metrics.ObserveSample(OutcomeDecoded, started)
	return Event{Kind: EventDecoded, Summary: summary, Raw: text, At: started}, true
}

// emit delivers ev unless the scan was cancelled first.
func (s *Scanner) emit(ctx context.Context, events chan<- Event, ev Event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case events <- ev:
		return true
	}
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func crop(img image.Image, region image.Rectangle) image.Image {
	if region.Empty() {
		return img
	}
	sub, ok := img.(subImager)
	if !ok {
		return img
	}
	r := region.Intersect(img.Bounds())
	if r.Empty() {
		return img
	}
	return sub.SubImage(r)
}
