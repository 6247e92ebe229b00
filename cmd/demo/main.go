package main

import (
	"context"
	"log"
	"os"
	"time"

	"bookinventory/internal/book"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// One-shot scripted walkthrough of the inventory operations: seed,
// query, mutate, exercise the guard rules, delete. Business-rule
// failures are part of the demonstration and only logged; store
// failures abort the run.
func main() {
	_ = godotenv.Load(".env.local")

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "library"
	}

	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("cannot create mongo client: %v", err)
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Fatalf("cannot ping store: %v", err)
	}
	log.Println("store connection OK")

	repo := book.NewMongoRepo(client.Database(mongoDB), 5*time.Second)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("cannot create indexes: %v", err)
	}
	service := book.NewService(repo)

	// Seed
	count, err := service.SeedSample(ctx, book.SampleBooks())
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seeded %d sample books", count)

	// Queries
	all, err := service.ListAll(ctx)
	if err != nil {
		log.Fatalf("list all failed: %v", err)
	}
	log.Printf("inventory holds %d books:", len(all))
	logBooks(all)

	fiction, err := service.ListByCategory(ctx, "Fiction")
	if err != nil {
		log.Fatalf("list by category failed: %v", err)
	}
	log.Printf("Fiction books (%d):", len(fiction))
	logBooks(fiction)

	recent, err := service.ListByYearAfter(ctx, 2015)
	if err != nil {
		log.Fatalf("list by year failed: %v", err)
	}
	log.Printf("books published after 2015 (%d):", len(recent))
	logBooks(recent)

	// Create and fetch back
	dune, err := service.Create(ctx, book.CreateInput{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Category:        "Fiction",
		PublishedYear:   1965,
		AvailableCopies: intPtr(3),
	})
	if err != nil {
		log.Fatalf("create failed: %v", err)
	}
	log.Printf("created %q id=%s copies=%d", dune.Title, dune.ID.Hex(), dune.AvailableCopies)

	id := dune.ID.Hex()

	fetched, err := service.GetByID(ctx, id)
	if err != nil {
		log.Fatalf("get by id failed: %v", err)
	}
	log.Printf("fetched %q by id, published %d", fetched.Title, fetched.PublishedYear)

	// Update a field
	newTitle := "Dune (50th Anniversary Edition)"
	updated, err := service.UpdateFields(ctx, id, book.UpdateInput{Title: &newTitle})
	if err != nil {
		log.Fatalf("update failed: %v", err)
	}
	log.Printf("retitled to %q", updated.Title)

	// Guard rules in action
	if _, err := service.AdjustCopies(ctx, id, -5); err != nil {
		log.Printf("expected rejection, removing 5 of %d copies: %v", updated.AvailableCopies, err)
	}

	adjusted, err := service.AdjustCopies(ctx, id, 2)
	if err != nil {
		log.Fatalf("adjust copies failed: %v", err)
	}
	log.Printf("added 2 copies, now %d", adjusted.AvailableCopies)

	if _, err := service.DeleteIfEmpty(ctx, id); err != nil {
		log.Printf("expected rejection, deleting with %d copies: %v", adjusted.AvailableCopies, err)
	}

	if _, err := service.ChangeCategory(ctx, id, "Cooking"); err != nil {
		log.Printf("expected rejection, changing to unknown category: %v", err)
	}

	emptied, err := service.AdjustCopies(ctx, id, -adjusted.AvailableCopies)
	if err != nil {
		log.Fatalf("adjust copies failed: %v", err)
	}
	log.Printf("checked out the rest, now %d", emptied.AvailableCopies)

	deleted, err := service.DeleteIfEmpty(ctx, id)
	if err != nil {
		log.Fatalf("delete failed: %v", err)
	}
	log.Printf("deleted %q", deleted.Title)

	if _, err := service.GetByID(ctx, id); err != nil {
		log.Printf("expected rejection, fetching deleted book: %v", err)
	}

	log.Println("demo complete")
}

func logBooks(books []book.Book) {
	for _, b := range books {
		log.Printf("  %q by %s [%s, %d] copies=%d", b.Title, b.Author, b.Category, b.PublishedYear, b.AvailableCopies)
	}
}

func intPtr(n int) *int { return &n }
