// Package pipeline sequences the category fetchers into a full run:
// health check, strictly sequential sections with pacing between them, and
// a final summary plus persisted run report. A section failing — or
// producing zero rows — never stops the run; the summary records it.
package pipeline
