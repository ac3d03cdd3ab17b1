package layout

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Mode selects which monthly extreme drives cell color.
type Mode uint8

const (
	// ShowMax colors cells by the month's highest daily maximum.
	ShowMax Mode = iota
	// ShowMin colors cells by the month's lowest daily minimum.
	ShowMin
)

// ParseMode accepts "max", "min", "showMax" and "showMin" (case-insensitive).
// An empty string selects ShowMax.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max", "showmax":
		return ShowMax, nil
	case "min", "showmin":
		return ShowMin, nil
	default:
		return ShowMax, fmt.Errorf("parse mode %q: want max or min", s)
	}
}

func (m Mode) String() string {
	if m == ShowMin {
		return "min"
	}
	return "max"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ShowMin {
		return ShowMax
	}
	return ShowMin
}

// Value returns the bucket temperature this mode displays.
func (m Mode) Value(b domain.MonthBucket) float64 {
	if m == ShowMin {
		return b.MinTemperature
	}
	return b.MaxTemperature
}
