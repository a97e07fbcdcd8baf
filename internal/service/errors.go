package service

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced by the core. The HTTP layer owns the mapping to
// client-facing statuses.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidEventKind = errors.New("unrecognized event kind")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDeviceOffline    = errors.New("device is offline")
)

// storeErr tags a collaborator I/O failure, keeping the cause text. Store
// failures surface immediately to the caller and are never retried here.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
