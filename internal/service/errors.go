package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidSyncQuery    = errors.New("invalid sync query")
	ErrUnknownCatalog      = errors.New("unknown catalog")

	ErrEmptyIdentifier  = errors.New("data service identifier is empty")
	ErrInvalidSyncURL   = errors.New("invalid sync url")
	ErrEmptyBucketKey   = errors.New("preference bucket key is empty")
	ErrInvalidPrefValue = errors.New("invalid preference value")

	// ErrSyncInFlight is returned by Sync while another sync of the same
	// collection is running.
	ErrSyncInFlight = errors.New("sync already in progress")
)
