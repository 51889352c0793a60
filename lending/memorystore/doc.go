// Package memorystore provides mutex-guarded in-memory implementations of
// the lending store interfaces. It backs hermetic engine and scheduler
// tests and local wiring; production deployments use lending/postgresstore.
//
// WithinTx serializes on the store's single lock and restores a snapshot of
// all records when the callback fails, so the atomicity contract of
// lending.Stores holds for observers of this store.
package memorystore
