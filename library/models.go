package library

// Category classifies a student and fixes their billing rates and issue
// limit. The short codes are what gets written to the students collection.
type Category string

const (
	Undergraduate Category = "UG"
	Postgraduate  Category = "PG"
	Research      Category = "RS"
	Guest         Category = "GUEST"
)

// Rates holds the per-category billing constants.
type Rates struct {
	FinePerLateDay int
	RentPerDay     int
	IssueLimit     int
}

// Every student pays the same daily rent; only the late-day fine and the
// number of books they may hold at once vary by category.
var categoryRates = map[Category]Rates{
	Undergraduate: {FinePerLateDay: 20, RentPerDay: 10, IssueLimit: 2},
	Postgraduate:  {FinePerLateDay: 15, RentPerDay: 10, IssueLimit: 4},
	Research:      {FinePerLateDay: 10, RentPerDay: 10, IssueLimit: 6},
	Guest:         {FinePerLateDay: 0, RentPerDay: 10, IssueLimit: 0},
}

// RatesFor returns the billing constants for a category. Unknown categories
// fall back to guest rates, which never fine.
func RatesFor(c Category) Rates {
	if r, ok := categoryRates[c]; ok {
		return r
	}
	return categoryRates[Guest]
}

// Valid reports whether c is one of the known category codes.
func (c Category) Valid() bool {
	_, ok := categoryRates[c]
	return ok
}

// Status is a student's circulation standing. It is a pure function of the
// student's cumulative fine total and is only ever written by status
// re-evaluation.
type Status string

const (
	StatusRegular Status = "Regular"
	StatusBlocked Status = "Blocked"
)

// Student is a registered library member.
type Student struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Status   Status   `json:"status"`
	Secret   string   `json:"-"` // bcrypt hash, never serialized
}

// Rates returns the billing constants for the student's category.
func (s *Student) Rates() Rates { return RatesFor(s.Category) }

// Book represents one title in the inventory with a count of copies
// currently on the shelf.
type Book struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Quantity int    `json:"quantity_available"`
}

// IssueRecord is an outstanding loan. Created zeroed at issue time and
// removed, never updated, when the matching return is processed.
type IssueRecord struct {
	StudentID string `json:"student_id"`
	BookID    string `json:"book_id"`
	DaysKept  int    `json:"days_kept"`
	LateDays  int    `json:"late_days"`
	Fine      int    `json:"fine"`
	Rent      int    `json:"rent"`
	Total     int    `json:"total"`
}

// FineRecord is a settled return with its computed charges. It is the only
// record type mutated after creation: adjustment may lower fine or rent,
// never raise them.
type FineRecord struct {
	StudentID string `json:"student_id"`
	BookID    string `json:"book_id"`
	DaysKept  int    `json:"days_kept"`
	LateDays  int    `json:"late_days"`
	Fine      int    `json:"fine"`
	Rent      int    `json:"rent"`
	Total     int    `json:"total"`
}

// Admin is an administrator credential pair.
type Admin struct {
	Username string `json:"username"`
	Secret   string `json:"-"`
}
