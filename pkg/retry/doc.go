// Package retry provides bounded retry with pluggable backoff for calls to
// the stats service.
//
// Every attempt, including retries, fires the Config.OnAttempt hook; the API
// client uses this to keep its external-call counter exact. When all attempts
// fail the returned error wraps both ErrExhausted and the last underlying
// error, so callers can test for exhaustion with errors.Is while still
// inspecting the cause.
package retry
