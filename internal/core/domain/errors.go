package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown connector type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidConfiguration indicates the source configuration failed
	// its probe: bad credentials, wrong URL, or an unreachable service.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMalformedRecord indicates a remote record is missing required
	// fields and cannot be turned into a document.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidTimestamp indicates a record timestamp does not match the
	// expected wire format. A hard error for that record, never defaulted.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")

	// ErrIngestInProgress indicates an ingestion run is already active
	// for the source.
	ErrIngestInProgress = errors.New("ingestion in progress")
)
