package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	store := tempStore(t)
	records, err := store.Load("nope")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("want 0 records, got %d", len(records))
	}
}

func TestEnsureCreatesHeaderOnlyFile(t *testing.T) {
	store := tempStore(t)
	cols := []string{"id", "name"}
	if err := store.Ensure("things", cols); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(store.Dir(), "things.csv"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got := strings.TrimSpace(string(raw)); got != "id,name" {
		t.Fatalf("want header only, got %q", got)
	}

	// A second Ensure must not clobber existing data.
	if err := store.Append("things", Record{"id": "1", "name": "a"}, cols); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Ensure("things", cols); err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	records, err := store.Load("things")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ensure clobbered data: want 1 record, got %d", len(records))
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := tempStore(t)
	cols := []string{"id", "title", "qty"}
	in := []Record{
		{"id": "b1", "title": "First", "qty": "3"},
		{"id": "b2", "title": "Second, with comma", "qty": "0"},
	}
	if err := store.Save("books", in, cols); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Load("books")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 records, got %d", len(out))
	}
	if out[0]["id"] != "b1" || out[1]["title"] != "Second, with comma" || out[1]["qty"] != "0" {
		t.Fatalf("roundtrip mismatch: %v", out)
	}
}

func TestSaveIsFullOverwrite(t *testing.T) {
	store := tempStore(t)
	cols := []string{"id"}
	if err := store.Save("c", []Record{{"id": "1"}, {"id": "2"}}, cols); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save("c", []Record{{"id": "3"}}, cols); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	records, _ := store.Load("c")
	if len(records) != 1 || records[0]["id"] != "3" {
		t.Fatalf("want only record 3, got %v", records)
	}
}

func TestAppendCreatesCollection(t *testing.T) {
	store := tempStore(t)
	cols := []string{"k", "v"}
	if err := store.Append("fresh", Record{"k": "a", "v": "1"}, cols); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append("fresh", Record{"k": "b", "v": "2"}, cols); err != nil {
		t.Fatalf("append 2: %v", err)
	}
	records, err := store.Load("fresh")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 || records[1]["k"] != "b" {
		t.Fatalf("want 2 appended records, got %v", records)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store := tempStore(t)
	cols := []string{"id"}
	for i := 0; i < 5; i++ {
		if err := store.Save("c", []Record{{"id": "x"}}, cols); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestColumnOrderIsFixed(t *testing.T) {
	store := tempStore(t)
	cols := []string{"b", "a", "c"}
	if err := store.Save("ord", []Record{{"a": "1", "b": "2", "c": "3"}}, cols); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(store.Dir(), "ord.csv"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if lines[0] != "b,a,c" || lines[1] != "2,1,3" {
		t.Fatalf("column order not honored: %v", lines)
	}
}
