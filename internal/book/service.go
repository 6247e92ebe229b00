package book

import (
	"context"
	"fmt"
)

// Service validates and persists book records and enforces the
// inventory guard rules.
//
// Guarded mutations (AdjustCopies, DeleteIfEmpty) are read-then-write
// sequences with no atomicity against concurrent writers: two
// concurrent adjustments on the same record can both read the same
// prior value and one update is lost. Acceptable for the low-contention
// use this service targets; a correct fix would need a conditional
// update or a per-record lock in the store.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when creating a book.
// AvailableCopies is optional and defaults to 1 when omitted.
type CreateInput struct {
	Title           string
	Author          string
	Category        string
	PublishedYear   int
	AvailableCopies *int
}

// UpdateInput carries a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Title           *string
	Author          *string
	Category        *string
	PublishedYear   *int
	AvailableCopies *int
}

// Create validates the input and persists a new book, returning the
// stored record including its generated id.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	b := Book{
		Title:           in.Title,
		Author:          in.Author,
		Category:        in.Category,
		PublishedYear:   in.PublishedYear,
		AvailableCopies: 1,
	}
	if in.AvailableCopies != nil {
		b.AvailableCopies = *in.AvailableCopies
	}

	if err := Validate(b); err != nil {
		return Book{}, err
	}
	return s.repo.Insert(ctx, b)
}

// ListAll returns every stored book in store order.
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx, Query{})
}

// ListByCategory returns books whose category matches exactly. An
// unknown category yields an empty result, not an error.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Book, error) {
	return s.repo.List(ctx, Query{Category: category})
}

// ListByYearAfter returns books published strictly after year.
func (s *Service) ListByYearAfter(ctx context.Context, year int) ([]Book, error) {
	return s.repo.List(ctx, Query{YearAfter: &year})
}

// GetByID returns the book with the given id or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateFields merges the non-nil fields of in onto the stored record,
// re-runs full validation on the merged record, and persists it.
func (s *Service) UpdateFields(ctx context.Context, id string, in UpdateInput) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}

	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Author != nil {
		b.Author = *in.Author
	}
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.PublishedYear != nil {
		b.PublishedYear = *in.PublishedYear
	}
	if in.AvailableCopies != nil {
		b.AvailableCopies = *in.AvailableCopies
	}

	if err := Validate(b); err != nil {
		return Book{}, err
	}
	return s.repo.Replace(ctx, id, b)
}

// AdjustCopies adds delta to the stored copy count. The result must
// not go negative; on a guard failure the stored value is unchanged.
func (s *Service) AdjustCopies(ctx context.Context, id string, delta int) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}

	next := b.AvailableCopies + delta
	if next < 0 {
		return Book{}, fmt.Errorf("%w: adjusting by %d would leave %d copies", ErrInvalidOperation, delta, next)
	}

	b.AvailableCopies = next
	return s.repo.Replace(ctx, id, b)
}

// ChangeCategory updates only the category field; same failure modes
// as UpdateFields.
func (s *Service) ChangeCategory(ctx context.Context, id string, category string) (Book, error) {
	return s.UpdateFields(ctx, id, UpdateInput{Category: &category})
}

// DeleteIfEmpty removes the book permanently and returns the deleted
// snapshot. Books with copies still available cannot be deleted.
func (s *Service) DeleteIfEmpty(ctx context.Context, id string) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}

	if b.AvailableCopies > 0 {
		return Book{}, fmt.Errorf("%w: cannot delete while %d copies remain", ErrInvalidOperation, b.AvailableCopies)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return Book{}, err
	}
	return b, nil
}

// SeedSample destructively resets the collection: every stored book is
// removed, then records is inserted. Returns the number inserted.
func (s *Service) SeedSample(ctx context.Context, records []Book) (int, error) {
	for _, b := range records {
		if err := Validate(b); err != nil {
			return 0, fmt.Errorf("seed record %q: %w", b.Title, err)
		}
	}

	if _, err := s.repo.DeleteAll(ctx); err != nil {
		return 0, err
	}
	return s.repo.InsertMany(ctx, records)
}
