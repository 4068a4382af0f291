package codec

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Level is the error-correction level of a symbol.
type Level string

const (
	// LevelLow suits controlled, high quality print or display only.
	LevelLow Level = "L"
	// LevelMedium tolerates field conditions and is the default.
	LevelMedium   Level = "M"
	LevelQuartile Level = "Q"
	LevelHigh     Level = "H"
)

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := level.recovery(); err != nil {
		return "", err
	}
	return level, nil
}

func (l Level) recovery() (qrcode.RecoveryLevel, error) {
	switch l {
	case LevelLow:
		return qrcode.Low, nil
	case LevelMedium:
		return qrcode.Medium, nil
	case LevelQuartile:
		return qrcode.High, nil
	case LevelHigh:
		return qrcode.Highest, nil
	default:
		return 0, fmt.Errorf("unsupported recovery level %q", string(l))
	}
}
