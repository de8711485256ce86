package upstream

import "errors"

// Sentinel kinds for upstream errors.
var (
	// ErrEmptyResult marks a live fetch that returned zero rows. A real
	// upstream with no closed deals ever is implausible; zero rows more
	// likely means a misconfigured query, so it triggers the synthetic
	// fallback like any other failure.
	ErrEmptyResult = errors.New("empty result")
)
