package facet

import (
	"encoding/json"
	"io"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

var (
	// ErrMissingName is returned by Validate for a definition without a field name.
	ErrMissingName = xerrors.New("facet definition does not provide a field name")
	// ErrUnexpectedRanges is returned by Validate for a terms facet that lists ranges.
	ErrUnexpectedRanges = xerrors.New("terms facet must not define ranges")
	// ErrDuplicateName is returned by Validate when two sibling facets share a name.
	ErrDuplicateName = xerrors.New("duplicate sibling facet name")
)

/*
Definition is a node of the facet configuration tree. It aggregates the
indexed field Name either by distinct terms or by the configured Ranges,
and optionally drills down into Children for every value it emits.
*/
type Definition struct {
	Mode Mode   `json:"mode"`
	Name string `json:"name"`
	/*
		Ranges holds literal query-syntax fragments such as "[0 TO 10]" that
		get prefixed with "Name:" to form a sub-query. Only used by ModeRange.
	*/
	Ranges   []string     `json:"ranges,omitempty"`
	Children []Definition `json:"children,omitempty"`
}

// Setup is the root of a facet configuration document.
type Setup struct {
	Facets []Definition `json:"facets"`
}

// Clone returns a deep copy of d.
func (d Definition) Clone() Definition {
	dCopy := d
	if d.Ranges != nil {
		dCopy.Ranges = append([]string(nil), d.Ranges...)
	}
	dCopy.Children = cloneDefinitions(d.Children)
	return dCopy
}

// Clone returns a deep copy of s.
func (s *Setup) Clone() *Setup {
	return &Setup{Facets: cloneDefinitions(s.Facets)}
}

func cloneDefinitions(defs []Definition) []Definition {
	if defs == nil {
		return nil
	}
	out := make([]Definition, len(defs))
	for i, d := range defs {
		out[i] = d.Clone()
	}
	return out
}

// Validate checks the whole setup tree and reports every problem it finds.
func (s *Setup) Validate() error {
	return validateSiblings(nil, "facets", s.Facets)
}

// Validate checks d and its descendants.
func (d Definition) Validate() error {
	return validateDefinition(nil, d.Name, d)
}

func validateSiblings(err error, path string, defs []Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		childPath := path + "." + d.Name
		if d.Name != "" && seen[d.Name] {
			err = multierror.Append(err, xerrors.Errorf("%s: %w", childPath, ErrDuplicateName))
		}
		seen[d.Name] = true
		err = validateDefinition(err, childPath, d)
	}
	return err
}

func validateDefinition(err error, path string, d Definition) error {
	if d.Name == "" {
		err = multierror.Append(err, xerrors.Errorf("%s: %w", path, ErrMissingName))
	}
	switch d.Mode {
	case ModeTerms:
		if len(d.Ranges) != 0 {
			err = multierror.Append(err, xerrors.Errorf("%s: %w", path, ErrUnexpectedRanges))
		}
	case ModeRange:
	default:
		err = multierror.Append(err, xerrors.Errorf("%s: %w", path, &UnsupportedModeError{Mode: d.Mode}))
	}
	return validateSiblings(err, path, d.Children)
}

// DecodeSetup reads a JSON facet setup document from r and validates it.
func DecodeSetup(r io.Reader) (*Setup, error) {
	var s Setup
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, xerrors.Errorf("decode facet setup: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// IsInvalid reports whether err was caused by a malformed facet setup.
func IsInvalid(err error) bool {
	var modeErr *UnsupportedModeError
	return xerrors.Is(err, ErrMissingName) ||
		xerrors.Is(err, ErrUnexpectedRanges) ||
		xerrors.Is(err, ErrDuplicateName) ||
		xerrors.As(err, &modeErr)
}
