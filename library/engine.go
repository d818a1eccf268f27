package library

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// GraceDays is the number of days a book may be kept before late-day fines
// start accruing.
const GraceDays = 7

// BlockThreshold is the cumulative fine total above which a student is
// blocked from new issuance.
const BlockThreshold = 1000

// ReturnReceipt is the charge computed for one settled issue record.
type ReturnReceipt struct {
	BookID   string
	DaysKept int
	LateDays int
	Fine     int
	Rent     int
	Total    int
}

// Engine orchestrates issuance, returns, fine computation, and student
// status re-evaluation over the four collections. All collaborators are
// passed in explicitly so tests can point them at a throwaway store.
type Engine struct {
	students    *StudentDirectory
	inventory   *Inventory
	circulation *CirculationLedger
	fines       *FineLedger
	admins      *AdminDirectory
	log         *slog.Logger
}

// NewEngine wires an engine over the given collaborators. A nil logger
// defaults to slog.Default.
func NewEngine(students *StudentDirectory, inventory *Inventory, circulation *CirculationLedger, fines *FineLedger, admins *AdminDirectory, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		students:    students,
		inventory:   inventory,
		circulation: circulation,
		fines:       fines,
		admins:      admins,
		log:         log,
	}
}

// Open builds a store rooted at dir, bootstraps the collections, and returns
// a ready engine. seedAdmin controls whether an empty admins collection gets
// the default credential.
func Open(dir string, seedAdmin bool, log *slog.Logger) (*Engine, error) {
	store, err := NewStore(dir)
	if err != nil {
		return nil, err
	}
	e := NewEngine(
		NewStudentDirectory(store),
		NewInventory(store),
		NewCirculationLedger(store),
		NewFineLedger(store),
		NewAdminDirectory(store),
		log,
	)
	if err := e.Bootstrap(store, seedAdmin); err != nil {
		return nil, err
	}
	return e, nil
}

// Bootstrap creates every collection header-only if absent and optionally
// seeds the default admin.
func (e *Engine) Bootstrap(store *Store, seedAdmin bool) error {
	collections := map[string][]string{
		studentsCollection: studentColumns,
		booksCollection:    bookColumns,
		issuedCollection:   ledgerColumns,
		finesCollection:    ledgerColumns,
		adminsCollection:   adminColumns,
	}
	for name, columns := range collections {
		if err := store.Ensure(name, columns); err != nil {
			return fmt.Errorf("bootstrap %s: %w", name, err)
		}
	}
	if seedAdmin {
		if err := e.admins.SeedDefault(); err != nil {
			return fmt.Errorf("seed default admin: %w", err)
		}
	}
	return nil
}

// Students exposes the student directory for registration and login flows.
func (e *Engine) Students() *StudentDirectory { return e.students }

// Inventory exposes the book inventory for catalog management.
func (e *Engine) Inventory() *Inventory { return e.inventory }

// Admins exposes the admin directory for login and password management.
func (e *Engine) Admins() *AdminDirectory { return e.admins }

// NewID mints a short random id for operators who leave the id field blank.
func NewID() string { return uuid.NewString()[:8] }

// RequestIssue issues one copy of bookID to the student. It fails when the
// student is unknown, blocked, already at their category's issue limit, or
// when the book is missing or out of copies. On success the inventory is
// decremented and a zeroed outstanding record is created.
func (e *Engine) RequestIssue(studentID, bookID string) error {
	student, err := e.students.Find(studentID)
	if err != nil {
		return err
	}
	if student == nil {
		return fmt.Errorf("student %s: %w", studentID, ErrNotFound)
	}
	if student.Status == StatusBlocked {
		return ErrBlocked
	}

	outstanding, err := e.circulation.OutstandingFor(studentID)
	if err != nil {
		return err
	}
	if limit := student.Rates().IssueLimit; len(outstanding) >= limit {
		return fmt.Errorf("%w: %s students may hold %d books", ErrIssueLimit, student.Category, limit)
	}

	ok, err := e.inventory.Decrement(bookID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("book %s: %w", bookID, ErrNotAvailable)
	}
	if err := e.circulation.Issue(studentID, bookID); err != nil {
		return err
	}
	e.log.Info("book issued", "student", studentID, "book", bookID)
	return nil
}

// ProcessReturn settles every outstanding record the student holds for
// bookID. Each settled record yields a receipt computed from the caller's
// daysKept: lateDays beyond the grace period are fined at the category rate,
// and rent accrues for every day kept. One inventory copy is returned per
// settled record, and the student's status is re-evaluated afterwards.
func (e *Engine) ProcessReturn(studentID, bookID string, daysKept int) ([]ReturnReceipt, error) {
	if daysKept < 0 {
		return nil, fmt.Errorf("%w: days kept must not be negative", ErrInvalidInput)
	}
	student, err := e.students.Find(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, ErrNotFound)
	}

	settled, err := e.circulation.Settle(studentID, bookID)
	if err != nil {
		return nil, err
	}
	if settled == 0 {
		return nil, fmt.Errorf("no outstanding issue of book %s for student %s: %w", bookID, studentID, ErrNotFound)
	}

	rates := student.Rates()
	lateDays := daysKept - GraceDays
	if lateDays < 0 {
		lateDays = 0
	}
	receipts := make([]ReturnReceipt, 0, settled)
	for i := 0; i < settled; i++ {
		fr := &FineRecord{
			StudentID: studentID,
			BookID:    bookID,
			DaysKept:  daysKept,
			LateDays:  lateDays,
			Fine:      lateDays * rates.FinePerLateDay,
			Rent:      daysKept * rates.RentPerDay,
		}
		fr.Total = fr.Fine + fr.Rent
		if err := e.fines.Record(fr); err != nil {
			return receipts, err
		}
		if err := e.inventory.Increment(bookID); err != nil {
			return receipts, err
		}
		receipts = append(receipts, ReturnReceipt{
			BookID:   bookID,
			DaysKept: daysKept,
			LateDays: lateDays,
			Fine:     fr.Fine,
			Rent:     fr.Rent,
			Total:    fr.Total,
		})
	}

	if _, err := e.ReevaluateStatus(studentID); err != nil {
		return receipts, err
	}
	e.log.Info("book returned", "student", studentID, "book", bookID, "days_kept", daysKept, "settled", settled)
	return receipts, nil
}

// ReevaluateStatus recomputes the student's status from their cumulative
// fine total and persists it. Blocked iff the total exceeds BlockThreshold.
// Idempotent: with an unchanged ledger the result is the same every call.
func (e *Engine) ReevaluateStatus(studentID string) (Status, error) {
	total, err := e.fines.TotalFor(studentID)
	if err != nil {
		return "", err
	}
	status := StatusRegular
	if total > BlockThreshold {
		status = StatusBlocked
	}
	if err := e.students.SetStatus(studentID, status); err != nil {
		return "", err
	}
	return status, nil
}

// AdjustFine lowers fine and rent components across every charge row the
// student has, then re-evaluates their status. Reductions that exceed a
// row's component are ignored for that component.
func (e *Engine) AdjustFine(studentID string, reduceFine, reduceRent int) error {
	visited, err := e.fines.Adjust(studentID, "", reduceFine, reduceRent)
	if err != nil {
		return err
	}
	if visited == 0 {
		return fmt.Errorf("no fine records for student %s: %w", studentID, ErrNotFound)
	}
	if _, err := e.ReevaluateStatus(studentID); err != nil {
		return err
	}
	e.log.Info("fine adjusted", "student", studentID, "reduce_fine", reduceFine, "reduce_rent", reduceRent, "rows", visited)
	return nil
}

// Login verifies a student credential and re-evaluates their status, so the
// student object returned reflects the ledger as of now.
func (e *Engine) Login(studentID, secret string) (*Student, error) {
	student, err := e.students.Authenticate(studentID, secret)
	if err != nil {
		return nil, err
	}
	status, err := e.ReevaluateStatus(studentID)
	if err != nil {
		return nil, err
	}
	student.Status = status
	return student, nil
}

// RemoveStudent deletes the student and cascades to their outstanding loans
// and charge rows, so no dangling ledger rows remain.
func (e *Engine) RemoveStudent(studentID string) (bool, error) {
	removed, err := e.students.Remove(studentID)
	if err != nil || !removed {
		return removed, err
	}
	if err := e.circulation.SettleAll(studentID); err != nil {
		return true, err
	}
	if err := e.fines.RemoveFor(studentID); err != nil {
		return true, err
	}
	e.log.Info("student removed", "student", studentID)
	return true, nil
}

// ListBooks returns the full catalog.
func (e *Engine) ListBooks() ([]*Book, error) { return e.inventory.All() }

// ListStudents returns every registered student.
func (e *Engine) ListStudents() ([]*Student, error) { return e.students.All() }

// OutstandingFor returns the student's outstanding loans.
func (e *Engine) OutstandingFor(studentID string) ([]*IssueRecord, error) {
	return e.circulation.OutstandingFor(studentID)
}

// FinesFor returns the student's charge rows.
func (e *Engine) FinesFor(studentID string) ([]*FineRecord, error) {
	return e.fines.For(studentID)
}

// TotalFineFor returns the student's cumulative fine total.
func (e *Engine) TotalFineFor(studentID string) (int, error) {
	return e.fines.TotalFor(studentID)
}
