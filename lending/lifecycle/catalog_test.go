package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/lending-lifecycle-go/lending"
	"github.com/shelfwise/lending-lifecycle-go/lending/lifecycle"
	"github.com/shelfwise/lending-lifecycle-go/lending/memorystore"
	"github.com/shelfwise/lending-lifecycle-go/testutil"
)

func Test_Catalog_SaveBook_Published_AnnouncesAnEdit(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, _, publisher := givenCatalog(t)
	book := givenBook(true)

	// act
	err := catalog.SaveBook(ctx, book)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{lending.BookEditedEventKind}, publisher.Kinds())
}

func Test_Catalog_SaveBook_Unpublished_AnnouncesARemoval(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, _, publisher := givenCatalog(t)
	book := givenBook(false)

	// act
	err := catalog.SaveBook(ctx, book)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{lending.BookRemovedEventKind}, publisher.Kinds())
}

func Test_Catalog_DeleteBook_AnnouncesARemoval(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, store, publisher := givenCatalog(t)
	book := givenBook(true)
	require.NoError(t, catalog.SaveBook(ctx, book))
	publisher.Reset()

	// act
	err := catalog.DeleteBook(ctx, book.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{lending.BookRemovedEventKind}, publisher.Kinds())

	_, err = store.FindByID(ctx, book.ID)
	assert.ErrorIs(t, err, lending.ErrBookNotFound)
}

func Test_Catalog_DeleteBook_Unknown_IsRejected(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, _, publisher := givenCatalog(t)

	// act
	err := catalog.DeleteBook(ctx, uuid.New())

	// assert
	assert.ErrorIs(t, err, lending.ErrBookNotFound)
	assert.Empty(t, publisher.Events())
}

func Test_Catalog_FindBook_ReturnsTheSavedBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, _, _ := givenCatalog(t)
	book := givenBook(true)
	require.NoError(t, catalog.SaveBook(ctx, book))

	// act
	found, err := catalog.FindBook(ctx, book.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, book.Title, found.Title)
	assert.Equal(t, book.ISBN, found.ISBN)
}

func Test_NewCatalog_MissingBookStore_IsRejected(t *testing.T) {
	_, err := lifecycle.NewCatalog(nil, nil)
	assert.ErrorIs(t, err, lifecycle.ErrNilCatalogStore)
}

/*** Test Helpers ***/

func givenCatalog(t *testing.T) (*lifecycle.Catalog, *memorystore.Store, *testutil.PublisherSpy) {
	t.Helper()

	store := memorystore.New()
	publisher := testutil.NewPublisherSpy()
	clock := testutil.NewClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	catalog, err := lifecycle.NewCatalog(store, publisher, lifecycle.WithCatalogClock(clock))
	require.NoError(t, err)

	return catalog, store, publisher
}

func givenBook(published bool) lending.Book {
	book := lending.Book{
		ID:        uuid.New(),
		Title:     "Structure and Interpretation",
		Abstract:  "A classic on building programs from first principles.",
		ISBN:      "978-0-262-51087-5",
		PageCount: 657,
	}

	if published {
		publishedAt := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		book.Published = &publishedAt
	}

	return book
}
