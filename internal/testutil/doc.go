// Package testutil contains helper recorders and builders used across tests
// to reduce boilerplate when observing simulation behavior (action receipt
// order, handler concurrency, state snapshots). These helpers are
// intentionally minimal and avoid adding third-party dependencies. They are
// not intended for production usage.
package testutil
