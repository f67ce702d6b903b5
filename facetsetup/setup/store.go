package setup

import (
	"context"
	"time"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// IDPrefix is prepended to generated setup IDs.
const IDPrefix = "facets/"

var (
	//ErrNotFound is returned when a setup does not exist in the store
	ErrNotFound = xerrors.New("facet setup not found")
	//ErrMissingSetup is returned when upserting a record without a setup document
	ErrMissingSetup = xerrors.New("record does not carry a facet setup")
)

/*
Store is implemented by objects that can persist facet setup documents
under a string ID.
*/
type Store interface {
	/*
		Upsert validates and stores rec. When rec.ID is empty a new ID is
		assigned and written back to rec. UpdatedAt is always refreshed.
	*/
	Upsert(ctx context.Context, rec *Record) error
	//Find returns the record stored under id, or ErrNotFound
	Find(ctx context.Context, id string) (*Record, error)
	//Delete removes the record stored under id, or returns ErrNotFound
	Delete(ctx context.Context, id string) error
}

// Record is a stored facet setup document.
type Record struct {
	ID        string
	Setup     *facet.Setup
	UpdatedAt time.Time
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	rCopy := *r
	if r.Setup != nil {
		rCopy.Setup = r.Setup.Clone()
	}
	return &rCopy
}

// Validate checks that rec carries a valid setup. It does not modify rec.
func Validate(rec *Record) error {
	if rec.Setup == nil {
		return xerrors.Errorf("upsert setup %q: %w", rec.ID, ErrMissingSetup)
	}
	if err := rec.Setup.Validate(); err != nil {
		return xerrors.Errorf("upsert setup %q: %w", rec.ID, err)
	}
	return nil
}

/*
Prepare is shared by Store implementations: it validates rec, assigns an ID
when missing and stamps UpdatedAt. A record that fails validation is left
untouched.
*/
func Prepare(rec *Record) error {
	if err := Validate(rec); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = NewID()
	}
	rec.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return nil
}

// NewID returns a fresh setup ID such as "facets/3f1c...".
func NewID() string {
	return IDPrefix + uuid.New().String()
}
