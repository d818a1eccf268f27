package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentDirectoryCRUD(t *testing.T) {
	store := tempStore(t)
	dir := NewStudentDirectory(store)

	s, err := dir.Create("s1", "Alice", Undergraduate, "secret")
	require.NoError(t, err)
	assert.Equal(t, StatusRegular, s.Status)
	assert.NotEqual(t, "secret", s.Secret, "secret is stored hashed")

	_, err = dir.Create("s1", "Duplicate", Postgraduate, "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = dir.Create("", "NoID", Postgraduate, "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = dir.Create("s2", "Bad", Category("PHD"), "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	found, err := dir.Find("s1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, Undergraduate, found.Category)

	missing, err := dir.Find("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := dir.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	removed, err := dir.Remove("s1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = dir.Remove("s1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStudentAuthenticateAndChangeSecret(t *testing.T) {
	store := tempStore(t)
	dir := NewStudentDirectory(store)
	_, err := dir.Create("s1", "Alice", Research, "old-pw")
	require.NoError(t, err)

	s, err := dir.Authenticate("s1", "old-pw")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	_, err = dir.Authenticate("s1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = dir.Authenticate("ghost", "old-pw")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, dir.SetSecret("s1", "wrong", "new-pw"))
	require.NoError(t, dir.SetSecret("s1", "old-pw", "new-pw"))

	_, err = dir.Authenticate("s1", "old-pw")
	assert.Error(t, err)
	_, err = dir.Authenticate("s1", "new-pw")
	assert.NoError(t, err)
}

func TestCategoryRates(t *testing.T) {
	assert.Equal(t, Rates{FinePerLateDay: 20, RentPerDay: 10, IssueLimit: 2}, RatesFor(Undergraduate))
	assert.Equal(t, Rates{FinePerLateDay: 15, RentPerDay: 10, IssueLimit: 4}, RatesFor(Postgraduate))
	assert.Equal(t, Rates{FinePerLateDay: 10, RentPerDay: 10, IssueLimit: 6}, RatesFor(Research))
	assert.Equal(t, Rates{FinePerLateDay: 0, RentPerDay: 10, IssueLimit: 0}, RatesFor(Guest))
	assert.Equal(t, RatesFor(Guest), RatesFor(Category("bogus")), "unknown categories never fine")
}

func TestInventoryDecrementIncrement(t *testing.T) {
	store := tempStore(t)
	inv := NewInventory(store)
	require.NoError(t, inv.Create(&Book{ID: "b1", Title: "T", Author: "A", Quantity: 1}))

	assert.Error(t, inv.Create(&Book{ID: "b1", Title: "dup", Quantity: 1}))
	assert.ErrorIs(t, inv.Create(&Book{ID: "b2", Quantity: -1}), ErrInvalidInput)

	ok, err := inv.Decrement("b1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = inv.Decrement("b1")
	require.NoError(t, err)
	assert.False(t, ok, "cannot go below zero")

	ok, err = inv.Decrement("ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, inv.Increment("b1"))
	b, err := inv.Find("b1")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Quantity)

	assert.ErrorIs(t, inv.Increment("ghost"), ErrNotFound)
}

func TestCirculationLedgerSettle(t *testing.T) {
	store := tempStore(t)
	led := NewCirculationLedger(store)

	require.NoError(t, led.Issue("s1", "b1"))
	require.NoError(t, led.Issue("s1", "b1"))
	require.NoError(t, led.Issue("s1", "b2"))
	require.NoError(t, led.Issue("s2", "b1"))

	rec, err := led.FindOutstanding("s1", "b2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Zero(t, rec.DaysKept)

	n, err := led.Settle("s1", "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "every matching record settles")

	n, err = led.Settle("s1", "b1")
	require.NoError(t, err)
	assert.Zero(t, n)

	out, err := led.OutstandingFor("s1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b2", out[0].BookID)

	require.NoError(t, led.SettleAll("s1"))
	out, _ = led.OutstandingFor("s1")
	assert.Empty(t, out)
	other, _ := led.OutstandingFor("s2")
	assert.Len(t, other, 1, "other students untouched")
}
