package lending

import (
	"time"

	"github.com/google/uuid"
)

// Book is the borrowed-item reference a loan points at. The lending core
// only reads books; catalog maintenance lives with the owning service.
type Book struct {
	ID              uuid.UUID
	Title           string
	Abstract        string
	ISBN            string
	PageCount       int
	PublicationYear int

	// Published is the instant the book became visible to borrowers,
	// nil while it is a draft. Only published books can be borrowed.
	Published *time.Time
}

// IsPublished reports whether the book is visible to borrowers.
func (b Book) IsPublished() bool {
	return b.Published != nil
}
