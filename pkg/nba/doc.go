// Package nba is the client for the stats.nba.com query service.
//
// The service speaks a single response shape: a JSON envelope holding named
// result sets, each a header list plus a row set of mixed-type values. The
// client decodes every result set into a table.Table and leaves
// interpretation of the columns to the fetchers. All calls run under bounded
// exponential-backoff retry and count each attempt against an explicit
// Counter.
package nba
