package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memRepo is a stateful in-memory Repository for multi-step scenarios,
// where scripted mock expectations would obscure the flow.
type memRepo struct {
	books map[string]Book
}

func newMemRepo() *memRepo {
	return &memRepo{books: make(map[string]Book)}
}

func intPtr(n int) *int { return &n }

func (m *memRepo) Insert(_ context.Context, b Book) (Book, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now
	m.books[b.ID.Hex()] = b
	return b, nil
}

func (m *memRepo) InsertMany(ctx context.Context, books []Book) (int, error) {
	for _, b := range books {
		if _, err := m.Insert(ctx, b); err != nil {
			return 0, err
		}
	}
	return len(books), nil
}

func (m *memRepo) List(_ context.Context, q Query) ([]Book, error) {
	out := []Book{}
	for _, b := range m.books {
		if q.Category != "" && b.Category != q.Category {
			continue
		}
		if q.YearAfter != nil && b.PublishedYear <= *q.YearAfter {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (Book, error) {
	b, ok := m.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (m *memRepo) Replace(_ context.Context, id string, b Book) (Book, error) {
	stored, ok := m.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	b.ID = stored.ID
	b.CreatedAt = stored.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	m.books[id] = b
	return b, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.books[id]; !ok {
		return ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *memRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.books))
	m.books = make(map[string]Book)
	return n, nil
}

func TestInventoryScenario(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	service := NewService(repo)

	created, err := service.Create(ctx, CreateInput{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Category:        "Fiction",
		PublishedYear:   1965,
		AvailableCopies: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.AvailableCopies)
	assert.NoError(t, Validate(created))

	id := created.ID.Hex()

	// Removing more copies than exist is rejected and leaves the
	// stored value untouched.
	_, err = service.AdjustCopies(ctx, id, -5)
	require.ErrorIs(t, err, ErrInvalidOperation)
	stored, err := service.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.AvailableCopies)

	adjusted, err := service.AdjustCopies(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, adjusted.AvailableCopies)

	// Delete must wait until the shelf is empty.
	_, err = service.DeleteIfEmpty(ctx, id)
	require.ErrorIs(t, err, ErrInvalidOperation)
	stored, err = service.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.AvailableCopies)

	emptied, err := service.AdjustCopies(ctx, id, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, emptied.AvailableCopies)

	deleted, err := service.DeleteIfEmpty(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", deleted.Title)

	_, err = service.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSeededQueries(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	service := NewService(repo)

	count, err := service.SeedSample(ctx, SampleBooks())
	require.NoError(t, err)
	assert.Equal(t, len(SampleBooks()), count)

	t.Run("list by year after returns exactly the later subset", func(t *testing.T) {
		recent, err := service.ListByYearAfter(ctx, 2015)
		require.NoError(t, err)

		wantTitles := map[string]bool{}
		for _, b := range SampleBooks() {
			if b.PublishedYear > 2015 {
				wantTitles[b.Title] = true
			}
		}
		require.NotEmpty(t, wantTitles)

		gotTitles := map[string]bool{}
		for _, b := range recent {
			assert.Greater(t, b.PublishedYear, 2015, b.Title)
			gotTitles[b.Title] = true
		}
		assert.Equal(t, wantTitles, gotTitles)
	})

	t.Run("list by category matches exactly", func(t *testing.T) {
		tech, err := service.ListByCategory(ctx, "Technology")
		require.NoError(t, err)
		require.Len(t, tech, 2)
		for _, b := range tech {
			assert.Equal(t, "Technology", b.Category)
		}
	})

	t.Run("unknown category yields an empty set, not an error", func(t *testing.T) {
		none, err := service.ListByCategory(ctx, "Poetry")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("reseeding replaces everything", func(t *testing.T) {
		count, err := service.SeedSample(ctx, SampleBooks())
		require.NoError(t, err)
		assert.Equal(t, len(SampleBooks()), count)

		all, err := service.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, len(SampleBooks()))
	})
}

func TestSampleBooksAreValid(t *testing.T) {
	for _, b := range SampleBooks() {
		assert.NoError(t, Validate(b), b.Title)
	}
}
