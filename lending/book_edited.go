package lending

import (
	"time"
)

// BookEditedEventKind is the event kind identifier for a book that was
// created, updated or published.
const BookEditedEventKind = "book_created_updated_or_published"

// BookEdited is published when a published book was created or changed.
type BookEdited struct {
	EventKind  string
	BookID     string
	Title      string
	ISBN       string
	OccurredAt time.Time
}

// BuildBookEdited creates a new BookEdited event.
func BuildBookEdited(book Book, occurredAt time.Time) BookEdited {
	return BookEdited{
		EventKind:  BookEditedEventKind,
		BookID:     book.ID.String(),
		Title:      book.Title,
		ISBN:       book.ISBN,
		OccurredAt: ToTimestamp(occurredAt),
	}
}

// Kind returns the event kind identifier.
func (e BookEdited) Kind() string {
	return BookEditedEventKind
}

// HasOccurredAt returns when this event occurred.
func (e BookEdited) HasOccurredAt() time.Time {
	return e.OccurredAt
}
