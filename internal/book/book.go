package book

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no book matches the given id.
var ErrNotFound = errors.New("book not found")

// ErrInvalidOperation is returned when a guard rule rejects a mutation,
// such as an adjustment that would leave a negative copy count or a
// delete while copies remain on the shelf.
var ErrInvalidOperation = errors.New("operation not allowed")

// Categories is the fixed set of shelving categories a book may carry.
var Categories = []string{
	"Fiction",
	"Non-Fiction",
	"Science",
	"Technology",
	"History",
	"Biography",
	"Self-Help",
}

// ValidCategory reports whether c is a member of Categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Book represents a single inventory record.
type Book struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title" validate:"required"`
	Author          string             `bson:"author" json:"author" validate:"required"`
	Category        string             `bson:"category" json:"category" validate:"required,book_category"`
	PublishedYear   int                `bson:"publishedYear" json:"publishedYear" validate:"required,published_year"`
	AvailableCopies int                `bson:"availableCopies" json:"availableCopies" validate:"gte=0"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Query defines the filters supported when listing books.
type Query struct {
	Category  string
	YearAfter *int
}

// FieldViolation describes a single failed field constraint.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field constraint a record violates.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}
