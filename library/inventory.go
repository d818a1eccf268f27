package library

import (
	"fmt"
	"strconv"
)

const booksCollection = "books"

var bookColumns = []string{"id", "title", "author", "quantityAvailable"}

// Inventory manages the books collection and its available-copy counts.
type Inventory struct {
	store *Store
}

// NewInventory wraps store.
func NewInventory(store *Store) *Inventory {
	return &Inventory{store: store}
}

func bookToRecord(b *Book) Record {
	return Record{
		"id":                b.ID,
		"title":             b.Title,
		"author":            b.Author,
		"quantityAvailable": strconv.Itoa(b.Quantity),
	}
}

func bookFromRecord(r Record) *Book {
	qty, _ := strconv.Atoi(r["quantityAvailable"])
	return &Book{ID: r["id"], Title: r["title"], Author: r["author"], Quantity: qty}
}

// Create adds a book. Quantity must not be negative.
func (inv *Inventory) Create(b *Book) error {
	if b.ID == "" || b.Quantity < 0 {
		return fmt.Errorf("%w: book id required and quantity must be >= 0", ErrInvalidInput)
	}
	if existing, err := inv.Find(b.ID); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("%w: book %s already exists", ErrInvalidInput, b.ID)
	}
	return inv.store.Append(booksCollection, bookToRecord(b), bookColumns)
}

// All returns every book in collection order.
func (inv *Inventory) All() ([]*Book, error) {
	records, err := inv.store.Load(booksCollection)
	if err != nil {
		return nil, err
	}
	books := make([]*Book, 0, len(records))
	for _, r := range records {
		books = append(books, bookFromRecord(r))
	}
	return books, nil
}

// Find returns the book with id, or nil if absent.
func (inv *Inventory) Find(id string) (*Book, error) {
	records, err := inv.store.Load(booksCollection)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r["id"] == id {
			return bookFromRecord(r), nil
		}
	}
	return nil, nil
}

// Remove deletes the book row, reporting false when the id was not present.
func (inv *Inventory) Remove(id string) (bool, error) {
	records, err := inv.store.Load(booksCollection)
	if err != nil {
		return false, err
	}
	kept := records[:0]
	for _, r := range records {
		if r["id"] != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	return true, inv.store.Save(booksCollection, kept, bookColumns)
}

// Decrement takes one copy off the shelf. It reports false when the book is
// absent or has no copies left; the collection is untouched in that case.
func (inv *Inventory) Decrement(id string) (bool, error) {
	records, err := inv.store.Load(booksCollection)
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r["id"] != id {
			continue
		}
		qty, _ := strconv.Atoi(r["quantityAvailable"])
		if qty <= 0 {
			return false, nil
		}
		r["quantityAvailable"] = strconv.Itoa(qty - 1)
		return true, inv.store.Save(booksCollection, records, bookColumns)
	}
	return false, nil
}

// Increment puts one copy back on the shelf.
func (inv *Inventory) Increment(id string) error {
	records, err := inv.store.Load(booksCollection)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r["id"] != id {
			continue
		}
		qty, _ := strconv.Atoi(r["quantityAvailable"])
		r["quantityAvailable"] = strconv.Itoa(qty + 1)
		return inv.store.Save(booksCollection, records, bookColumns)
	}
	return fmt.Errorf("book %s: %w", id, ErrNotFound)
}
