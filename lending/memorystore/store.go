package memorystore

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

// Store is an in-memory implementation of lending.Stores and
// lending.BookStore. All operations are serialized on one mutex.
type Store struct {
	mu          sync.Mutex
	loans       map[uuid.UUID]lending.Loan
	leases      map[int64]lending.Lease
	books       map[uuid.UUID]lending.Book
	nextLeaseID int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		loans:  make(map[uuid.UUID]lending.Loan),
		leases: make(map[int64]lending.Lease),
		books:  make(map[uuid.UUID]lending.Book),
	}
}

// Loans returns a locking view onto the loan records.
func (s *Store) Loans() lending.LoanStore {
	return loanAccess{store: s}
}

// Leases returns a locking view onto the lease records.
func (s *Store) Leases() lending.LeaseStore {
	return leaseAccess{store: s}
}

// WithinTx runs fn under the store lock with unlocked store views. When fn
// returns an error, all records are restored to their pre-transaction
// snapshot.
func (s *Store) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, loans lending.LoanStore, leases lending.LeaseStore) error,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshotLoans := maps.Clone(s.loans)
	snapshotLeases := maps.Clone(s.leases)
	snapshotNextLeaseID := s.nextLeaseID

	err := fn(ctx, loanAccess{store: s, inTx: true}, leaseAccess{store: s, inTx: true})
	if err != nil {
		s.loans = snapshotLoans
		s.leases = snapshotLeases
		s.nextLeaseID = snapshotNextLeaseID

		return err
	}

	return nil
}

// FindByID returns the book with the given id, or lending.ErrBookNotFound.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (lending.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, exists := s.books[id]
	if !exists {
		return lending.Book{}, lending.ErrBookNotFound
	}

	return book, nil
}

// Save inserts or updates a book record.
func (s *Store) Save(_ context.Context, book lending.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books[book.ID] = book

	return nil
}

// Delete removes a book record and cascades to its loans and their leases.
func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[id]; !exists {
		return lending.ErrBookNotFound
	}

	delete(s.books, id)

	for loanID, loan := range s.loans {
		if loan.BookID != id {
			continue
		}

		delete(s.loans, loanID)

		for leaseID, lease := range s.leases {
			if lease.LoanID == loanID {
				delete(s.leases, leaseID)
			}
		}
	}

	return nil
}

var _ lending.Stores = (*Store)(nil)
var _ lending.BookStore = (*Store)(nil)

// loanAccess is a view onto the store's loans. Outside a transaction every
// call takes the store lock; inside one, WithinTx already holds it.
type loanAccess struct {
	store *Store
	inTx  bool
}

func (a loanAccess) lock() func() {
	if a.inTx {
		return func() {}
	}

	a.store.mu.Lock()

	return a.store.mu.Unlock
}

func (a loanAccess) Insert(_ context.Context, loan lending.Loan) error {
	defer a.lock()()

	for _, existing := range a.store.loans {
		if existing.UserID == loan.UserID && existing.BookID == loan.BookID && existing.IsOngoing() {
			return lending.ErrDuplicateActiveLoan
		}
	}

	a.store.loans[loan.ID] = loan

	return nil
}

func (a loanAccess) FindByID(_ context.Context, id uuid.UUID) (lending.Loan, error) {
	defer a.lock()()

	loan, exists := a.store.loans[id]
	if !exists {
		return lending.Loan{}, lending.ErrLoanNotFound
	}

	return loan, nil
}

func (a loanAccess) FindOngoing(_ context.Context, userID uuid.UUID, bookID uuid.UUID) (lending.Loan, error) {
	defer a.lock()()

	for _, loan := range a.store.loans {
		if loan.UserID == userID && loan.BookID == bookID && loan.IsOngoing() {
			return loan, nil
		}
	}

	return lending.Loan{}, lending.ErrLoanNotFound
}

func (a loanAccess) ListOngoing(_ context.Context) ([]lending.Loan, error) {
	defer a.lock()()

	ongoing := make([]lending.Loan, 0)

	for _, loan := range a.store.loans {
		if loan.IsOngoing() {
			ongoing = append(ongoing, loan)
		}
	}

	sort.Slice(ongoing, func(i, j int) bool {
		return ongoing[i].ID.String() < ongoing[j].ID.String()
	})

	return ongoing, nil
}

func (a loanAccess) MarkExpired(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	return a.transition(ctx, id, lending.StatusExpired, endedAt)
}

func (a loanAccess) MarkCancelled(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	return a.transition(ctx, id, lending.StatusCancelled, endedAt)
}

func (a loanAccess) transition(_ context.Context, id uuid.UUID, to lending.Status, endedAt time.Time) error {
	defer a.lock()()

	loan, exists := a.store.loans[id]
	if !exists {
		return lending.ErrLoanNotFound
	}

	if !loan.IsOngoing() {
		return lending.ErrLoanNotOngoing
	}

	ended := lending.ToTimestamp(endedAt)
	loan.Status = to
	loan.Ended = &ended
	a.store.loans[id] = loan

	return nil
}

// leaseAccess is a view onto the store's leases, locking like loanAccess.
type leaseAccess struct {
	store *Store
	inTx  bool
}

func (a leaseAccess) lock() func() {
	if a.inTx {
		return func() {}
	}

	a.store.mu.Lock()

	return a.store.mu.Unlock
}

func (a leaseAccess) Insert(_ context.Context, lease lending.Lease) (lending.Lease, error) {
	defer a.lock()()

	a.store.nextLeaseID++
	lease.ID = a.store.nextLeaseID
	a.store.leases[lease.ID] = lease

	return lease, nil
}

func (a leaseAccess) ActiveByLoan(_ context.Context, loanID uuid.UUID) ([]lending.Lease, error) {
	defer a.lock()()

	return a.activeByLoan(loanID), nil
}

func (a leaseAccess) SumActiveDuration(_ context.Context, loanID uuid.UUID) (int, error) {
	defer a.lock()()

	total := 0
	for _, lease := range a.activeByLoan(loanID) {
		total += lease.DurationDays
	}

	return total, nil
}

func (a leaseAccess) EarliestActiveStart(_ context.Context, loanID uuid.UUID) (time.Time, error) {
	defer a.lock()()

	active := a.activeByLoan(loanID)
	if len(active) == 0 {
		return time.Time{}, lending.ErrNoActiveLeases
	}

	earliest := active[0].Started
	for _, lease := range active[1:] {
		if lease.Started.Before(earliest) {
			earliest = lease.Started
		}
	}

	return earliest, nil
}

func (a leaseAccess) ExpireActive(_ context.Context, loanID uuid.UUID, now time.Time, onlyElapsed bool) (int64, error) {
	defer a.lock()()

	updated := int64(0)

	for _, lease := range a.activeByLoan(loanID) {
		if onlyElapsed && !lease.ElapsedAt(now) {
			continue
		}

		lease.Status = lending.StatusExpired
		a.store.leases[lease.ID] = lease
		updated++
	}

	return updated, nil
}

func (a leaseAccess) CancelActive(_ context.Context, loanID uuid.UUID) (int64, error) {
	defer a.lock()()

	updated := int64(0)

	for _, lease := range a.activeByLoan(loanID) {
		lease.Status = lending.StatusCancelled
		a.store.leases[lease.ID] = lease
		updated++
	}

	return updated, nil
}

// activeByLoan assumes the store lock is held.
func (a leaseAccess) activeByLoan(loanID uuid.UUID) []lending.Lease {
	active := make([]lending.Lease, 0)

	for _, lease := range a.store.leases {
		if lease.LoanID == loanID && lease.IsOngoing() {
			active = append(active, lease)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})

	return active
}
