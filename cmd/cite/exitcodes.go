package main

// Exit codes.
const (
	ExitSuccess       = 0 // Success (at least one source returned 2xx)
	ExitError         = 1 // General error (invalid arguments, network failure)
	ExitConfigError   = 2 // Configuration error (bad config file, missing credentials)
	ExitDataError     = 3 // Input validation error (empty input, no DOI in PDF)
	ExitUpstreamError = 4 // Upstream service answered with a non-2xx status
)
