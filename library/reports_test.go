package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	e := newTestEngine(t)
	addStudent(t, e, "s1", Undergraduate)
	addStudent(t, e, "s2", Postgraduate)
	addStudent(t, e, "s3", Research)

	require.NoError(t, e.fines.Record(&FineRecord{StudentID: "s1", BookID: "b1", Fine: 1200, Total: 1200}))
	require.NoError(t, e.fines.Record(&FineRecord{StudentID: "s2", BookID: "b1", Rent: 300, Total: 300}))
	require.NoError(t, e.fines.Record(&FineRecord{StudentID: "s2", BookID: "b2", Rent: 100, Total: 100}))
	_, err := e.ReevaluateStatus("s1")
	require.NoError(t, err)

	require.NoError(t, e.circulation.Issue("s1", "b1"))
	require.NoError(t, e.circulation.Issue("s2", "b1"))
	require.NoError(t, e.circulation.Issue("s3", "b2"))

	rep, err := e.BuildReport(5)
	require.NoError(t, err)

	assert.Equal(t, 1600, rep.TotalFineCollected)

	require.Len(t, rep.MostIssuedBooks, 2)
	assert.Equal(t, BookIssueCount{BookID: "b1", Count: 2}, rep.MostIssuedBooks[0])
	assert.Equal(t, BookIssueCount{BookID: "b2", Count: 1}, rep.MostIssuedBooks[1])

	require.Len(t, rep.TopFinedStudents, 2)
	assert.Equal(t, "s1", rep.TopFinedStudents[0].StudentID)
	assert.Equal(t, 1200, rep.TopFinedStudents[0].Total)
	assert.Equal(t, "Student s1", rep.TopFinedStudents[0].Name)
	assert.Equal(t, "s2", rep.TopFinedStudents[1].StudentID)
	assert.Equal(t, 400, rep.TopFinedStudents[1].Total)

	require.Len(t, rep.BlockedStudents, 1)
	assert.Equal(t, "s1", rep.BlockedStudents[0].ID)
}

func TestBuildReportTruncatesToTopN(t *testing.T) {
	e := newTestEngine(t)
	for _, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, e.circulation.Issue("s", id))
	}
	rep, err := e.BuildReport(2)
	require.NoError(t, err)
	assert.Len(t, rep.MostIssuedBooks, 2)
}

func TestBuildReportEmptyLedgers(t *testing.T) {
	e := newTestEngine(t)
	rep, err := e.BuildReport(5)
	require.NoError(t, err)
	assert.Zero(t, rep.TotalFineCollected)
	assert.Empty(t, rep.MostIssuedBooks)
	assert.Empty(t, rep.TopFinedStudents)
	assert.Empty(t, rep.BlockedStudents)
}
