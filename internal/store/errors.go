package store

import "errors"

// Sentinel errors returned by the repositories. Match them with [errors.Is].
var (
	// ErrFieldNotIndexed is returned when a query filters on a field that was
	// not declared as indexed for the collection.
	ErrFieldNotIndexed = errors.New("field is not indexed")

	// ErrInvalidName is returned for collection or field names that cannot be
	// used in an index or JSON path.
	ErrInvalidName = errors.New("invalid collection or field name")

	// ErrUnknownCatalog is returned for a catalog table the server does not serve.
	ErrUnknownCatalog = errors.New("unknown catalog")

	// ErrStoreClosed is returned by operations issued after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// Low-level database operation errors, wrapped together with the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingPayload      = errors.New("failed to encode payload")
	ErrDecodingPayload      = errors.New("failed to decode payload")
)
