package citation

import "errors"

// Errors shared by the metadata clients. Upstream non-2xx responses are
// not errors at this layer: they come back as a Result so the status and
// body can be shown verbatim.
var (
	// ErrNetworkError indicates a timeout, DNS failure, or refused
	// connection. Reported once per failed source; never retried.
	ErrNetworkError = errors.New("network error")

	// ErrNotConfigured indicates the translator server credentials are
	// absent, which disables comparison mode.
	ErrNotConfigured = errors.New("translator server not configured")
)
