package library

import "strconv"

const issuedCollection = "issued"

// Both ledgers share the same row shape.
var ledgerColumns = []string{"studentId", "bookId", "daysKept", "lateDays", "fine", "rent", "total"}

// CirculationLedger tracks outstanding loans. Rows are created zeroed at
// issue time and removed when the matching return is processed; they are
// never updated in place.
type CirculationLedger struct {
	store *Store
}

// NewCirculationLedger wraps store.
func NewCirculationLedger(store *Store) *CirculationLedger {
	return &CirculationLedger{store: store}
}

func issueToRecord(ir *IssueRecord) Record {
	return Record{
		"studentId": ir.StudentID,
		"bookId":    ir.BookID,
		"daysKept":  strconv.Itoa(ir.DaysKept),
		"lateDays":  strconv.Itoa(ir.LateDays),
		"fine":      strconv.Itoa(ir.Fine),
		"rent":      strconv.Itoa(ir.Rent),
		"total":     strconv.Itoa(ir.Total),
	}
}

func issueFromRecord(r Record) *IssueRecord {
	atoi := func(k string) int { n, _ := strconv.Atoi(r[k]); return n }
	return &IssueRecord{
		StudentID: r["studentId"],
		BookID:    r["bookId"],
		DaysKept:  atoi("daysKept"),
		LateDays:  atoi("lateDays"),
		Fine:      atoi("fine"),
		Rent:      atoi("rent"),
		Total:     atoi("total"),
	}
}

// Issue appends a zeroed outstanding record for (studentID, bookID).
func (l *CirculationLedger) Issue(studentID, bookID string) error {
	rec := &IssueRecord{StudentID: studentID, BookID: bookID}
	return l.store.Append(issuedCollection, issueToRecord(rec), ledgerColumns)
}

// FindOutstanding returns the first outstanding record for the pair, or nil.
func (l *CirculationLedger) FindOutstanding(studentID, bookID string) (*IssueRecord, error) {
	records, err := l.store.Load(issuedCollection)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r["studentId"] == studentID && r["bookId"] == bookID {
			return issueFromRecord(r), nil
		}
	}
	return nil, nil
}

// Settle removes every outstanding record for the pair and returns how many
// were removed. More than one match is possible when the same title was
// issued twice; each is settled by the one call.
func (l *CirculationLedger) Settle(studentID, bookID string) (int, error) {
	records, err := l.store.Load(issuedCollection)
	if err != nil {
		return 0, err
	}
	kept := records[:0]
	for _, r := range records {
		if r["studentId"] == studentID && r["bookId"] == bookID {
			continue
		}
		kept = append(kept, r)
	}
	settled := len(records) - len(kept)
	if settled == 0 {
		return 0, nil
	}
	return settled, l.store.Save(issuedCollection, kept, ledgerColumns)
}

// SettleAll removes every outstanding record for the student. Used by the
// cascade when a student is deleted.
func (l *CirculationLedger) SettleAll(studentID string) error {
	records, err := l.store.Load(issuedCollection)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r["studentId"] != studentID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return l.store.Save(issuedCollection, kept, ledgerColumns)
}

// OutstandingFor returns the student's outstanding loans.
func (l *CirculationLedger) OutstandingFor(studentID string) ([]*IssueRecord, error) {
	records, err := l.store.Load(issuedCollection)
	if err != nil {
		return nil, err
	}
	var out []*IssueRecord
	for _, r := range records {
		if r["studentId"] == studentID {
			out = append(out, issueFromRecord(r))
		}
	}
	return out, nil
}

// All returns every outstanding loan. Reports use it to rank titles by how
// often they are out.
func (l *CirculationLedger) All() ([]*IssueRecord, error) {
	records, err := l.store.Load(issuedCollection)
	if err != nil {
		return nil, err
	}
	out := make([]*IssueRecord, 0, len(records))
	for _, r := range records {
		out = append(out, issueFromRecord(r))
	}
	return out, nil
}
