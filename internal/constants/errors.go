package constants

import "errors"

// Configuration errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected one of: table, json, yaml")
	ErrUnknownCacheBackend = errors.New("unknown cache backend, expected one of: memory, nats, none")
	ErrNATSURLRequired     = errors.New("nats cache backend requires a NATS server URL")
)
