package scroll

import (
	"fmt"
	"time"
)

// Alignment is where a scrolled-to item lands in the viewport.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlignment parses "start", "center" or "end".
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "start":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end":
		return AlignEnd, nil
	}
	return AlignStart, fmt.Errorf("unknown alignment %q", s)
}

// Options controls a single scroll request.
type Options struct {
	Smooth    bool
	Alignment Alignment
}

// Config holds the animation settings of a Manager.
type Config struct {
	// Duration of a smooth scroll. Zero disables animation.
	Duration time.Duration
	// Frame is the interval between animation steps.
	Frame time.Duration
	// SmoothThreshold is the distance from which scrolls jump instead of
	// animating.
	SmoothThreshold int
}

// DefaultConfig returns the default animation settings.
func DefaultConfig() Config {
	return Config{
		Duration:        300 * time.Millisecond,
		Frame:           16 * time.Millisecond,
		SmoothThreshold: 500,
	}
}

// AlignedOffset returns the scroll position that puts an item with the given
// top and height at the requested alignment within the viewport.
func AlignedOffset(top, itemHeight, viewportHeight int, alignment Alignment) int {
	switch alignment {
	case AlignCenter:
		return top - (viewportHeight-itemHeight)/2
	case AlignEnd:
		return top - (viewportHeight - itemHeight)
	default:
		return top
	}
}
