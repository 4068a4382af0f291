package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // accepted upload and frame formats
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
)

const (
	// MaxImageBytes bounds an encoded image read from an untrusted source.
	MaxImageBytes = 8 << 20
	// MaxImagePixels bounds the canvas an image header may declare.
	MaxImagePixels = 4096 * 4096
)

var decodeHints = map[gozxing.DecodeHintType]interface{}{
	gozxing.DecodeHintType_TRY_HARDER:    true,
	gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
}

// ReadSymbol locates a QR symbol in img and returns its raw text.
func (c *Codec) ReadSymbol(img image.Image) (string, error) {
	if img == nil {
		return "", ErrNoSymbol
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSymbol, err)
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, decodeHints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSymbol, err)
	}
	return result.GetText(), nil
}

// DecodeImage reads and decodes the symbol held by img.
func (c *Codec) DecodeImage(img image.Image) (model.Summary, error) {
	text, err := c.ReadSymbol(img)
	if err != nil {
		return model.Summary{}, err
	}
	return c.DecodeText(text)
}

// ReadImage decodes an untrusted raster image. The encoded size and the
// canvas declared by the header are checked before any pixel is decoded.
func ReadImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, MaxImageBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty %dx%d canvas", ErrBadImage, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%w: %dx%d canvas above %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, MaxImagePixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return img, nil
}
