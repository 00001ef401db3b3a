package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnknownStation     = errors.New("unknown station")
	ErrInvalidStation     = errors.New("invalid station")
	ErrInvalidConnection  = errors.New("invalid connection")
	ErrMissingCoordinates = errors.New("missing coordinates")
	ErrRouteNotFound      = errors.New("route not found")
	ErrInvalidNetworkFile = errors.New("invalid network file")
)
