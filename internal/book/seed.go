package book

// SampleBooks returns the fixed demonstration set used by the seed
// endpoint and the scripted demo. Spread across categories and years so
// the filtered queries have something to bite on.
func SampleBooks() []Book {
	return []Book{
		{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Category: "Technology", PublishedYear: 2015, AvailableCopies: 4},
		{Title: "A Brief History of Time", Author: "Stephen Hawking", Category: "Science", PublishedYear: 1988, AvailableCopies: 2},
		{Title: "Sapiens", Author: "Yuval Noah Harari", Category: "History", PublishedYear: 2011, AvailableCopies: 5},
		{Title: "Atomic Habits", Author: "James Clear", Category: "Self-Help", PublishedYear: 2018, AvailableCopies: 6},
		{Title: "Educated", Author: "Tara Westover", Category: "Biography", PublishedYear: 2018, AvailableCopies: 3},
		{Title: "The Midnight Library", Author: "Matt Haig", Category: "Fiction", PublishedYear: 2020, AvailableCopies: 2},
		{Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Category: "Non-Fiction", PublishedYear: 2011, AvailableCopies: 1},
		{Title: "Clean Code", Author: "Robert C. Martin", Category: "Technology", PublishedYear: 2008, AvailableCopies: 3},
	}
}
