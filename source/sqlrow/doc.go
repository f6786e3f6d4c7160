// Package sqlrow surfaces single-row database/sql queries as lazy pipelines.
// An empty result set is None, not an error.
package sqlrow
