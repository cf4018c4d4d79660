package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrMissingToken = fmt.Errorf("no access token specified")
	ErrInvalidToken = fmt.Errorf("invalid access token")
	ErrTimeout      = fmt.Errorf("operation timed out")

	// Transport errors
	ErrTransportFailure = fmt.Errorf("transport failure")

	// Cache errors
	ErrUnknownBackend = fmt.Errorf("unknown cache backend")
	ErrUnsupported    = fmt.Errorf("operation not supported")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
