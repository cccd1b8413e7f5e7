// Package collector is the service layer tying the pieces together: drafts
// are validated and classified on the way into the store, and reporting reads
// the stored log back out through the aggregation engine.
package collector
