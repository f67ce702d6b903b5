package facetquery

import "golang.org/x/xerrors"

var (
	//ErrConfigurationNotFound is returned when the requested facet setup does not exist
	ErrConfigurationNotFound = xerrors.New("facet configuration not found")
)
