package lending

import (
	"time"
)

// BookRemovedEventKind is the event kind identifier for a book that was
// deleted or unpublished.
const BookRemovedEventKind = "book_deleted_or_unpublished"

// BookRemoved is published when a book was deleted or taken out of the
// visible catalog.
type BookRemoved struct {
	EventKind  string
	BookID     string
	Title      string
	OccurredAt time.Time
}

// BuildBookRemoved creates a new BookRemoved event.
func BuildBookRemoved(book Book, occurredAt time.Time) BookRemoved {
	return BookRemoved{
		EventKind:  BookRemovedEventKind,
		BookID:     book.ID.String(),
		Title:      book.Title,
		OccurredAt: ToTimestamp(occurredAt),
	}
}

// Kind returns the event kind identifier.
func (e BookRemoved) Kind() string {
	return BookRemovedEventKind
}

// HasOccurredAt returns when this event occurred.
func (e BookRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
