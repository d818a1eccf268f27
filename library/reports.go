package library

import "sort"

// BookIssueCount ranks a title by how many copies are currently out.
type BookIssueCount struct {
	BookID string
	Count  int
}

// StudentFineTotal ranks a student by cumulative fine total.
type StudentFineTotal struct {
	StudentID string
	Name      string
	Total     int
}

// Report is the admin summary: overall fines, circulation hot spots, and
// who is blocked.
type Report struct {
	TotalFineCollected int
	MostIssuedBooks    []BookIssueCount
	TopFinedStudents   []StudentFineTotal
	BlockedStudents    []*Student
}

// BuildReport aggregates the ledgers into an admin report. topN bounds the
// two ranking lists; ties break by id so output is stable run to run.
func (e *Engine) BuildReport(topN int) (*Report, error) {
	rep := &Report{}

	fines, err := e.fines.All()
	if err != nil {
		return nil, err
	}
	perStudent := make(map[string]int)
	for _, fr := range fines {
		rep.TotalFineCollected += fr.Total
		perStudent[fr.StudentID] += fr.Total
	}

	issued, err := e.circulation.All()
	if err != nil {
		return nil, err
	}
	perBook := make(map[string]int)
	for _, ir := range issued {
		perBook[ir.BookID]++
	}
	for id, n := range perBook {
		rep.MostIssuedBooks = append(rep.MostIssuedBooks, BookIssueCount{BookID: id, Count: n})
	}
	sort.Slice(rep.MostIssuedBooks, func(i, j int) bool {
		a, b := rep.MostIssuedBooks[i], rep.MostIssuedBooks[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.BookID < b.BookID
	})
	if len(rep.MostIssuedBooks) > topN {
		rep.MostIssuedBooks = rep.MostIssuedBooks[:topN]
	}

	students, err := e.students.All()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
		if s.Status == StatusBlocked {
			rep.BlockedStudents = append(rep.BlockedStudents, s)
		}
	}
	for id, total := range perStudent {
		rep.TopFinedStudents = append(rep.TopFinedStudents, StudentFineTotal{
			StudentID: id,
			Name:      names[id],
			Total:     total,
		})
	}
	sort.Slice(rep.TopFinedStudents, func(i, j int) bool {
		a, b := rep.TopFinedStudents[i], rep.TopFinedStudents[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.StudentID < b.StudentID
	})
	if len(rep.TopFinedStudents) > topN {
		rep.TopFinedStudents = rep.TopFinedStudents[:topN]
	}

	return rep, nil
}
