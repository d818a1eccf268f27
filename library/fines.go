package library

import (
	"fmt"
	"strconv"
)

const finesCollection = "fines"

// FineLedger holds the settled charges from processed returns. Rows accrue
// per return event; adjustment may lower a row's fine or rent components but
// never raise them, and total is always kept equal to fine + rent.
type FineLedger struct {
	store *Store
}

// NewFineLedger wraps store.
func NewFineLedger(store *Store) *FineLedger {
	return &FineLedger{store: store}
}

func fineToRecord(fr *FineRecord) Record {
	return Record{
		"studentId": fr.StudentID,
		"bookId":    fr.BookID,
		"daysKept":  strconv.Itoa(fr.DaysKept),
		"lateDays":  strconv.Itoa(fr.LateDays),
		"fine":      strconv.Itoa(fr.Fine),
		"rent":      strconv.Itoa(fr.Rent),
		"total":     strconv.Itoa(fr.Total),
	}
}

func fineFromRecord(r Record) *FineRecord {
	atoi := func(k string) int { n, _ := strconv.Atoi(r[k]); return n }
	return &FineRecord{
		StudentID: r["studentId"],
		BookID:    r["bookId"],
		DaysKept:  atoi("daysKept"),
		LateDays:  atoi("lateDays"),
		Fine:      atoi("fine"),
		Rent:      atoi("rent"),
		Total:     atoi("total"),
	}
}

// Record appends a settled charge row.
func (l *FineLedger) Record(fr *FineRecord) error {
	return l.store.Append(finesCollection, fineToRecord(fr), ledgerColumns)
}

// For returns the student's charge rows in collection order.
func (l *FineLedger) For(studentID string) ([]*FineRecord, error) {
	records, err := l.store.Load(finesCollection)
	if err != nil {
		return nil, err
	}
	var out []*FineRecord
	for _, r := range records {
		if r["studentId"] == studentID {
			out = append(out, fineFromRecord(r))
		}
	}
	return out, nil
}

// All returns every charge row.
func (l *FineLedger) All() ([]*FineRecord, error) {
	records, err := l.store.Load(finesCollection)
	if err != nil {
		return nil, err
	}
	out := make([]*FineRecord, 0, len(records))
	for _, r := range records {
		out = append(out, fineFromRecord(r))
	}
	return out, nil
}

// TotalFor sums the total column across the student's rows.
func (l *FineLedger) TotalFor(studentID string) (int, error) {
	rows, err := l.For(studentID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, fr := range rows {
		total += fr.Total
	}
	return total, nil
}

// Adjust lowers the fine and rent components on every row matching
// studentID (and bookID, when non-empty). A reduction larger than what a
// row's component holds is ignored for that component, leaving it unchanged
// rather than clamping to zero. Totals are recomputed and the collection is
// saved once. It reports how many rows were visited.
func (l *FineLedger) Adjust(studentID, bookID string, reduceFine, reduceRent int) (int, error) {
	if reduceFine < 0 || reduceRent < 0 {
		return 0, fmt.Errorf("%w: reduction amounts must not be negative", ErrInvalidInput)
	}
	records, err := l.store.Load(finesCollection)
	if err != nil {
		return 0, err
	}
	visited := 0
	for _, r := range records {
		if r["studentId"] != studentID {
			continue
		}
		if bookID != "" && r["bookId"] != bookID {
			continue
		}
		visited++
		fine, _ := strconv.Atoi(r["fine"])
		rent, _ := strconv.Atoi(r["rent"])
		if reduceFine <= fine {
			fine -= reduceFine
		}
		if reduceRent <= rent {
			rent -= reduceRent
		}
		r["fine"] = strconv.Itoa(fine)
		r["rent"] = strconv.Itoa(rent)
		r["total"] = strconv.Itoa(fine + rent)
	}
	if visited == 0 {
		return 0, nil
	}
	return visited, l.store.Save(finesCollection, records, ledgerColumns)
}

// RemoveFor deletes every charge row for the student. Used by the cascade
// when a student is deleted.
func (l *FineLedger) RemoveFor(studentID string) error {
	records, err := l.store.Load(finesCollection)
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
	return l.store.Save(finesCollection, kept, ledgerColumns)
}
