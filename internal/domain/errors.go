package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested manga or chapter does not exist
	ErrNotFound = errors.New("not found in catalog")

	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog API is unreachable")

	// ErrRateLimited indicates the catalog rejected the request for rate limiting
	ErrRateLimited = errors.New("catalog API rate limit exceeded")

	// ErrInvalidResponse indicates the catalog returned a body that does not fit the schema
	ErrInvalidResponse = errors.New("catalog returned an invalid response")

	// ErrInvalidHistoryEntry indicates a visit was recorded without manga, chapter or title
	ErrInvalidHistoryEntry = errors.New("history entry requires manga id, chapter id and title")
)

// UserMessage is the generic text shown when a fetch fails
const UserMessage = "Could not load data, try again later."
