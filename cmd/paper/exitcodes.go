package main

// Exit codes returned by the paper CLI.
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // Runtime failure (network, cache, link)
	ExitUsage   = 2 // Invalid locator, unsupported host, or bad arguments
)
