package cases

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subhamroy/case-registry/internal/database"
)

func TestResolvePartyReusesExistingByEmail(t *testing.T) {
	_, db := setupStore(t)

	input := &PartyInput{
		FirstName: "Amit",
		LastName:  "Sen",
		Email:     "amit.sen@example.com",
	}

	first, err := resolveParty(db, input)
	require.NoError(t, err)
	require.NotZero(t, first)

	second, err := resolveParty(db, input)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.EqualValues(t, 1, countRows(t, db, &database.Party{}))
}

func TestResolvePartyReusesExistingByMobile(t *testing.T) {
	_, db := setupStore(t)

	first, err := resolveParty(db, &PartyInput{FirstName: "Rina", MobileNo: "9830012345"})
	require.NoError(t, err)

	// Different name, same mobile: first match wins, fields stay as stored.
	second, err := resolveParty(db, &PartyInput{FirstName: "R.", MobileNo: "9830012345"})
	require.NoError(t, err)
	require.Equal(t, first, second)

	var stored database.Party
	require.NoError(t, db.First(&stored, first).Error)
	require.Equal(t, "Rina", stored.FirstName)
}

func TestResolvePartyEmptyFirstNameResolvesToNone(t *testing.T) {
	_, db := setupStore(t)

	id, err := resolveParty(db, &PartyInput{LastName: "Ghosh", Email: "ghosh@example.com"})
	require.NoError(t, err)
	require.Zero(t, id)

	require.EqualValues(t, 0, countRows(t, db, &database.Party{}))
}

func TestResolvePartyNilResolvesToNone(t *testing.T) {
	_, db := setupStore(t)

	id, err := resolveParty(db, nil)
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestResolvePartyWithoutContactAlwaysInserts(t *testing.T) {
	_, db := setupStore(t)

	input := &PartyInput{FirstName: "Bimal", LastName: "Das"}

	first, err := resolveParty(db, input)
	require.NoError(t, err)
	second, err := resolveParty(db, input)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.EqualValues(t, 2, countRows(t, db, &database.Party{}))
}

func TestResolvePartyMobileOnlyDoesNotMatchEmptyEmails(t *testing.T) {
	_, db := setupStore(t)

	// A party with neither email nor mobile.
	existing, err := resolveParty(db, &PartyInput{FirstName: "Kamal"})
	require.NoError(t, err)

	// Mobile-only lookup must not collide with the empty email above.
	id, err := resolveParty(db, &PartyInput{FirstName: "Nitai", MobileNo: "9000000000"})
	require.NoError(t, err)
	require.NotEqual(t, existing, id)
}
