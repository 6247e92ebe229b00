package book

import (
	"context"
)

//go:generate mockgen -destination=mocks/repository.go -package=mocks bookinventory/internal/book Repository

// Repository defines the contract for book document storage.
type Repository interface {
	Insert(ctx context.Context, b Book) (Book, error)
	InsertMany(ctx context.Context, books []Book) (int, error)
	List(ctx context.Context, q Query) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	Replace(ctx context.Context, id string, b Book) (Book, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
