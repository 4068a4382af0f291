package codec

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/skip2/go-qrcode"
)

// quietZoneModules is the border go-qrcode draws on each side.
const quietZoneModules = 4

// Symbol is an encoded batch summary ready to render.
type Symbol struct {
	summary model.Summary
	content string
	level   Level
	size    int
	qr      *qrcode.QRCode
}

// Summary returns the payload the symbol was built from.
func (s *Symbol) Summary() model.Summary {
	return s.summary
}

// Content returns the raw text stored in the symbol.
func (s *Symbol) Content() string {
	return s.content
}

// Level returns the recovery level of the symbol.
func (s *Symbol) Level() Level {
	return s.level
}

// Version returns the QR version (1..40) chosen for the payload.
func (s *Symbol) Version() int {
	return s.qr.VersionNumber
}

// Image renders the symbol. A positive size is the edge in pixels, a negative
// size is the number of pixels per module, zero uses the codec default.
// Edges too small for MinModulePixels are grown to that module size.
func (s *Symbol) Image(size int) image.Image {
	return s.qr.Image(s.resolveSize(size))
}

// PNG renders the symbol as PNG bytes.
func (s *Symbol) PNG(size int) ([]byte, error) {
	png, err := s.qr.PNG(s.resolveSize(size))
	if err != nil {
		return nil, fmt.Errorf("render png for %s: %w", s.summary.BatchID, err)
	}
	return png, nil
}

// WritePNG streams the PNG rendering to w.
func (s *Symbol) WritePNG(w io.Writer, size int) error {
	if err := s.qr.Write(s.resolveSize(size), w); err != nil {
		return fmt.Errorf("write png for %s: %w", s.summary.BatchID, err)
	}
	return nil
}

// FileName is the export name of the label, keyed by the identifier.
func (s *Symbol) FileName() string {
	return LabelFileName(s.summary.BatchID)
}

// Export writes the PNG label into dir and returns its path.
func (s *Symbol) Export(dir string, size int) (string, error) {
	png, err := s.PNG(size)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.FileName())
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("export label %s: %w", path, err)
	}
	return path, nil
}

func (s *Symbol) resolveSize(size int) int {
	if size == 0 {
		size = s.size
	}
	if size > 0 && size < s.MinSize() {
		return -MinModulePixels
	}
	if size < 0 && -size < MinModulePixels {
		return -MinModulePixels
	}
	return size
}

// MinSize is the smallest edge in pixels the symbol renders at, quiet zone included.
func (s *Symbol) MinSize() int {
	modules := 17 + 4*s.qr.VersionNumber + 2*quietZoneModules
	return modules * MinModulePixels
}

// LabelFileName returns qr-<batchId>.png.
func LabelFileName(id model.BatchID) string {
	return "qr-" + string(id) + ".png"
}
