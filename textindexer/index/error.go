package index

import "golang.org/x/xerrors"

var (
	//ErrNotFound is returned by the indexer when attempting to look up a doc that doesn't exist
	ErrNotFound = xerrors.New("not found")
	//ErrMissingID is returned when attempting to index a doc that does not specify an ID
	ErrMissingID = xerrors.New("document does not provide a valid ID")
	//ErrIndexNotFound is returned when a named index does not exist
	ErrIndexNotFound = xerrors.New("index not found")
	//ErrForeignQuery is returned when a snapshot receives a query built by a different adapter
	ErrForeignQuery = xerrors.New("query was not built by this index")
	//ErrQueryRejected is returned when the search backend refuses to execute a query
	ErrQueryRejected = xerrors.New("query rejected by search backend")
	//ErrSnapshotClosed is returned when a snapshot is used after Close
	ErrSnapshotClosed = xerrors.New("snapshot is closed")
)
