// Command import_catalog seeds the book inventory from a catalog CSV
// (columns: id,title,author,quantityAvailable; header row required).
// Rows whose id already exists are skipped.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"library-circulation/config"
	"library-circulation/library"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <catalog.csv>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	catalogPath := os.Args[1]

	cfg, err := config.Load("library.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	engine, err := library.Open(cfg.DataDir, cfg.SeedDefaultAdmin, cfg.Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data dir: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(filepath.Clean(catalogPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading catalog: %v\n", err)
		os.Exit(1)
	}
	if len(rows) < 2 {
		fmt.Println("Catalog is empty, nothing to import.")
		return
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, name := range []string{"id", "title", "author", "quantityAvailable"} {
		if _, ok := col[name]; !ok {
			fmt.Fprintf(os.Stderr, "Catalog is missing the %q column\n", name)
			os.Exit(1)
		}
	}

	successCount := 0
	skipCount := 0
	errorCount := 0

	for _, row := range rows[1:] {
		id := row[col["id"]]
		if id == "" {
			id = library.NewID()
		}
		qty, err := strconv.Atoi(row[col["quantityAvailable"]])
		if err != nil {
			fmt.Printf("Skipping %s: bad quantity %q\n", id, row[col["quantityAvailable"]])
			errorCount++
			continue
		}

		if existing, err := engine.Inventory().Find(id); err == nil && existing != nil {
			skipCount++
			continue
		}

		book := &library.Book{ID: id, Title: row[col["title"]], Author: row[col["author"]], Quantity: qty}
		fmt.Printf("Importing: %s by %s... ", book.Title, book.Author)
		if err := engine.Inventory().Create(book); err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}
		fmt.Printf("SUCCESS (ID: %s)\n", book.ID)
		successCount++
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", successCount)
	fmt.Printf("Skipped (already present): %d\n", skipCount)
	fmt.Printf("Errors: %d\n", errorCount)
}
