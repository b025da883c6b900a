package model

import "fmt"

// Mode selects how generation, battery and grid cooperate to serve the load.
// Transitions happen only by external command; the router's output, not its
// control flow, differs per mode.
type Mode int

const (
	// ModeOffGrid runs without a grid tie. The battery covers the whole
	// inverter demand regardless of its charge state.
	ModeOffGrid Mode = iota
	// ModeOnGrid keeps the battery out of the loop entirely. Solar is
	// converted straight to AC and balanced against the load on the grid.
	ModeOnGrid
	// ModeHybrid serves the load from solar first, then battery above a
	// reserve threshold, then the grid as last resort.
	ModeHybrid
)

func (m Mode) String() string {
	switch m {
	case ModeOffGrid:
		return "off_grid"
	case ModeOnGrid:
		return "on_grid"
	case ModeHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a configuration or API string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "off_grid", "offgrid":
		return ModeOffGrid, nil
	case "on_grid", "ongrid":
		return ModeOnGrid, nil
	case "hybrid":
		return ModeHybrid, nil
	default:
		return ModeOffGrid, fmt.Errorf("unknown mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so Mode round-trips through
// JSON and YAML as its string form.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
