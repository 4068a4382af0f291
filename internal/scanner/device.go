package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/codec"
)

// Exclusive wraps d so that at most one stream is open at a time. A second
// Open fails immediately with a device-unavailable error wrapping ErrDeviceBusy.
func Exclusive(d Device) Device {
	return &exclusiveDevice{device: d}
}

type exclusiveDevice struct {
	device Device
	held   atomic.Bool
}

func (d *exclusiveDevice) Open(ctx context.Context) (Stream, error) {
	if !d.held.CompareAndSwap(false, true) {
		return nil, &CaptureError{Kind: DeviceUnavailable, Err: ErrDeviceBusy}
	}
	stream, err := d.device.Open(ctx)
	if err != nil {
		d.held.Store(false)
		return nil, err
	}
	return &releasingStream{Stream: stream, release: func() { d.held.Store(false) }}, nil
}

type releasingStream struct {
	Stream
	once    sync.Once
	release func()
}

func (s *releasingStream) Close() error {
	var err error
	s.once.Do(func() {
		err = s.Stream.Close()
		s.release()
	})
	return err
}

// DirDevice captures the most recent image written to a directory, the way
// a webcam helper dumps frames to disk.
type DirDevice struct {
	Dir string
}

func (d DirDevice) Open(_ context.Context) (Stream, error) {
	info, err := os.Stat(d.Dir)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return nil, &CaptureError{Kind: PermissionDenied, Err: err}
	case err != nil:
		return nil, &CaptureError{Kind: DeviceUnavailable, Err: err}
	case !info.IsDir():
		return nil, &CaptureError{Kind: DeviceUnavailable, Err: fmt.Errorf("%s is not a directory", d.Dir)}
	}
	return &dirStream{dir: d.Dir}, nil
}

type dirStream struct {
	dir      string
	lastPath string
	lastMod  time.Time
	last     image.Image
}

func (s *dirStream) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &CaptureError{Kind: DeviceUnavailable, Err: err}
		}
		return nil, &CaptureError{Kind: TransientFrameError, Err: err}
	}

	var (
		newestPath string
		newestMod  time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !isFrameFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(newestMod) {
			newestMod = info.ModTime()
			newestPath = filepath.Join(s.dir, entry.Name())
		}
	}
	if newestPath == "" {
		return nil, nil
	}
	if newestPath == s.lastPath && newestMod.Equal(s.lastMod) {
		return s.last, nil
	}

	img, err := readImage(newestPath)
	if err != nil {
		return nil, &CaptureError{Kind: TransientFrameError, Err: err}
	}
	s.lastPath, s.lastMod, s.last = newestPath, newestMod, img
	return img, nil
}

func (s *dirStream) Close() error {
	s.last = nil
	return nil
}

func isFrameFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	img, err := codec.ReadImage(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return img, nil
}

// ImageDevice replays a fixed list of frames; the last frame stays in view.
type ImageDevice struct {
	Frames []image.Image
}

func (d ImageDevice) Open(_ context.Context) (Stream, error) {
	return &imageStream{frames: d.Frames}, nil
}

type imageStream struct {
	frames []image.Image
	next   int
}

func (s *imageStream) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.frames) == 0 {
		return nil, nil
	}
	frame := s.frames[s.next]
	if s.next < len(s.frames)-1 {
		s.next++
	}
	return frame, nil
}

func (s *imageStream) Close() error {
	return nil
}
