package facet

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/xerrors"
)

// Mode selects how a facet aggregates its field.
type Mode uint8

// The supported facet modes. The zero value is ModeTerms so that a
// definition that omits its mode counts distinct terms.
const (
	// ModeTerms counts the documents matching each distinct term of the field.
	ModeTerms Mode = iota
	// ModeRange counts the documents falling into each configured range expression.
	ModeRange
)

// aliases accepted when decoding a mode name. "Default" and "Ranges" are the
// names older facet documents use.
var modeNames = map[string]Mode{
	"Terms":   ModeTerms,
	"Default": ModeTerms,
	"Range":   ModeRange,
	"Ranges":  ModeRange,
}

// UnsupportedModeError is returned when a facet carries a mode outside the
// known variants.
type UnsupportedModeError struct {
	// Name is set when the mode came from a decoded document.
	Name string
	Mode Mode
}

func (e *UnsupportedModeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unsupported facet mode %q", e.Name)
	}
	return fmt.Sprintf("unsupported facet mode %d", uint8(e.Mode))
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeTerms || m == ModeRange
}

func (m Mode) String() string {
	switch m {
	case ModeTerms:
		return "Terms"
	case ModeRange:
		return "Range"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode maps a mode name onto a Mode.
func ParseMode(name string) (Mode, error) {
	if name == "" {
		return ModeTerms, nil
	}
	m, ok := modeNames[name]
	if !ok {
		return 0, &UnsupportedModeError{Name: name}
	}
	return m, nil
}

// MarshalJSON implements json.Marshaler.
func (m Mode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, &UnsupportedModeError{Mode: m}
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler. Unknown names fail here, at the
// configuration boundary, rather than during aggregation.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return xerrors.Errorf("facet mode: %w", err)
	}
	parsed, err := ParseMode(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
