// Package expiry sweeps ongoing loans on an interval and runs each one
// through an expiry check. A sweep aggregates per-loan results into a
// Report; a single failing loan is logged and skipped, never aborting the
// rest of the sweep.
package expiry
