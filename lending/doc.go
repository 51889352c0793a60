// Package lending holds the core domain model of the book lending lifecycle:
// loans, leases, books, their status machines, the domain events emitted on
// lifecycle transitions, and the store/publisher/clock interfaces the engine
// in lending/lifecycle is built against.
//
// A Loan is the borrowing relationship between one user and one book. Its
// duration is never mutated directly; instead every borrow or extension
// appends a Lease (a single duration grant) to the loan, so the full history
// of extensions stays auditable. A loan expires once all of its active
// leases have elapsed, or is cancelled explicitly together with its leases.
//
// The package is dependency-free apart from identifiers (google/uuid) so
// that store engines (lending/postgresstore, lending/memorystore) and
// transports (lending/amqppublisher) can be swapped without touching the
// domain rules.
package lending
