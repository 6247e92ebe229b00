package book

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "books"

// MongoRepo is the MongoDB-backed Repository implementation.
type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(db *mongo.Database, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: db.Collection(collectionName), timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// EnsureIndexes creates the single-field lookup indexes the filtered
// queries rely on. Safe to call on every startup.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(timeoutCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "publishedYear", Value: 1}}},
	})
	return err
}

func (r *MongoRepo) Insert(ctx context.Context, b Book) (Book, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(timeoutCtx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *MongoRepo) InsertMany(ctx context.Context, books []Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(books))
	for i, b := range books {
		b.ID = primitive.NewObjectID()
		b.CreatedAt = now
		b.UpdatedAt = now
		docs[i] = b
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.InsertMany(timeoutCtx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *MongoRepo) List(ctx context.Context, q Query) ([]Book, error) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.YearAfter != nil {
		filter["publishedYear"] = bson.M{"$gt": *q.YearAfter}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Find(timeoutCtx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(timeoutCtx)

	books := []Book{}
	if err := cursor.All(timeoutCtx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a stored document.
		return Book{}, ErrNotFound
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	if err := r.coll.FindOne(timeoutCtx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *MongoRepo) Replace(ctx context.Context, id string, b Book) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrNotFound
	}

	b.ID = oid
	b.UpdatedAt = time.Now().UTC()

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.ReplaceOne(timeoutCtx, bson.M{"_id": oid}, b)
	if err != nil {
		return Book{}, err
	}
	if res.MatchedCount == 0 {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.DeleteOne(timeoutCtx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteAll(ctx context.Context) (int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.DeleteMany(timeoutCtx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
