package lifecycle

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

const (
	logMsgBookSaved   = "book saved"
	logMsgBookDeleted = "book deleted"
	logAttrPublished  = "published"
)

// ErrNilCatalogStore is returned when the catalog is built without a book store.
var ErrNilCatalogStore = errors.New("book store must not be nil")

// Catalog maintains the book records that loans refer to, and announces
// catalog changes on the event publisher. Saving a published book emits
// BookEdited; saving an unpublished one, or deleting, emits BookRemoved,
// so downstream consumers can drop books that are no longer borrowable.
type Catalog struct {
	books     lending.BookStore
	publisher lending.EventPublisher
	clock     lending.Clock
	logger    lending.ContextualLogger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog) error

// WithCatalogClock sets the time source; defaults to the system clock.
func WithCatalogClock(clock lending.Clock) CatalogOption {
	return func(c *Catalog) error {
		c.clock = clock
		return nil
	}
}

// WithCatalogLogger sets the contextual logger for catalog operations.
func WithCatalogLogger(logger lending.ContextualLogger) CatalogOption {
	return func(c *Catalog) error {
		c.logger = logger
		return nil
	}
}

// NewCatalog creates a Catalog with optional configuration.
// The publisher may be nil; catalog changes then go unannounced.
func NewCatalog(
	books lending.BookStore,
	publisher lending.EventPublisher,
	options ...CatalogOption,
) (*Catalog, error) {

	if books == nil {
		return nil, ErrNilCatalogStore
	}

	catalog := &Catalog{
		books:     books,
		publisher: publisher,
		clock:     lending.SystemClock{},
	}

	for _, option := range options {
		if err := option(catalog); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}

// FindBook returns the book with the given ID.
func (c *Catalog) FindBook(ctx context.Context, bookID uuid.UUID) (lending.Book, error) {
	return c.books.FindByID(ctx, bookID)
}

// SaveBook creates or updates the book and announces the change.
func (c *Catalog) SaveBook(ctx context.Context, book lending.Book) error {
	if err := c.books.Save(ctx, book); err != nil {
		return err
	}

	now := c.clock.Now()

	if book.IsPublished() {
		c.publish(ctx, lending.BuildBookEdited(book, now))
	} else {
		c.publish(ctx, lending.BuildBookRemoved(book, now))
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, logMsgBookSaved,
			logAttrBookID, book.ID.String(),
			logAttrPublished, book.IsPublished())
	}

	return nil
}

// DeleteBook removes the book and announces its removal.
func (c *Catalog) DeleteBook(ctx context.Context, bookID uuid.UUID) error {
	book, findErr := c.books.FindByID(ctx, bookID)
	if findErr != nil {
		return findErr
	}

	if deleteErr := c.books.Delete(ctx, bookID); deleteErr != nil {
		return deleteErr
	}

	c.publish(ctx, lending.BuildBookRemoved(book, c.clock.Now()))

	if c.logger != nil {
		c.logger.InfoContext(ctx, logMsgBookDeleted, logAttrBookID, bookID.String())
	}

	return nil
}

func (c *Catalog) publish(ctx context.Context, event lending.DomainEvent) {
	if c.publisher == nil {
		return
	}

	if publishErr := c.publisher.Publish(ctx, event); publishErr != nil && c.logger != nil {
		c.logger.ErrorContext(ctx, logMsgPublishEventFailed,
			logAttrError, publishErr.Error(),
			logAttrEventKind, event.Kind())
	}
}
