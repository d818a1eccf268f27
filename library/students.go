package library

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const studentsCollection = "students"

var studentColumns = []string{"id", "name", "category", "credentialSecret", "status"}

// StudentDirectory manages the students collection. Category is immutable
// after creation; status is only written via SetStatus, which the engine's
// status re-evaluation drives.
type StudentDirectory struct {
	store *Store
}

// NewStudentDirectory wraps store. The collection is created lazily.
func NewStudentDirectory(store *Store) *StudentDirectory {
	return &StudentDirectory{store: store}
}

func studentToRecord(s *Student) Record {
	return Record{
		"id":               s.ID,
		"name":             s.Name,
		"category":         string(s.Category),
		"credentialSecret": s.Secret,
		"status":           string(s.Status),
	}
}

func studentFromRecord(r Record) *Student {
	return &Student{
		ID:       r["id"],
		Name:     r["name"],
		Category: Category(r["category"]),
		Status:   Status(r["status"]),
		Secret:   r["credentialSecret"],
	}
}

// Create registers a student. The plaintext secret is bcrypt-hashed before
// it touches disk. New students always start Regular.
func (d *StudentDirectory) Create(id, name string, category Category, secret string) (*Student, error) {
	if id == "" || !category.Valid() {
		return nil, fmt.Errorf("%w: student id and category are required", ErrInvalidInput)
	}
	if existing, err := d.Find(id); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: student %s already exists", ErrInvalidInput, id)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}
	s := &Student{ID: id, Name: name, Category: category, Status: StatusRegular, Secret: string(hash)}
	if err := d.store.Append(studentsCollection, studentToRecord(s), studentColumns); err != nil {
		return nil, err
	}
	return s, nil
}

// All returns every student in collection order.
func (d *StudentDirectory) All() ([]*Student, error) {
	records, err := d.store.Load(studentsCollection)
	if err != nil {
		return nil, err
	}
	students := make([]*Student, 0, len(records))
	for _, r := range records {
		students = append(students, studentFromRecord(r))
	}
	return students, nil
}

// Find returns the student with id, or nil if absent.
func (d *StudentDirectory) Find(id string) (*Student, error) {
	records, err := d.store.Load(studentsCollection)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r["id"] == id {
			return studentFromRecord(r), nil
		}
	}
	return nil, nil
}

// Remove deletes the student row. It reports false when the id was not
// present. Cascading cleanup of issue and fine rows is the engine's job.
func (d *StudentDirectory) Remove(id string) (bool, error) {
	records, err := d.store.Load(studentsCollection)
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
	return true, d.store.Save(studentsCollection, kept, studentColumns)
}

// SetStatus persists a new status for the student.
func (d *StudentDirectory) SetStatus(id string, status Status) error {
	return d.update(id, func(r Record) { r["status"] = string(status) })
}

// SetSecret replaces the student's credential after verifying the old one.
func (d *StudentDirectory) SetSecret(id, oldSecret, newSecret string) error {
	if _, err := d.Authenticate(id, oldSecret); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newSecret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}
	return d.update(id, func(r Record) { r["credentialSecret"] = string(hash) })
}

// Authenticate verifies the student's credential and returns the student.
func (d *StudentDirectory) Authenticate(id, secret string) (*Student, error) {
	s, err := d.Find(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(s.Secret), []byte(secret)) != nil {
		return nil, fmt.Errorf("%w: wrong credential", ErrInvalidInput)
	}
	return s, nil
}

func (d *StudentDirectory) update(id string, mutate func(Record)) error {
	records, err := d.store.Load(studentsCollection)
	if err != nil {
		return err
	}
	found := false
	for _, r := range records {
		if r["id"] == id {
			mutate(r)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return d.store.Save(studentsCollection, records, studentColumns)
}
