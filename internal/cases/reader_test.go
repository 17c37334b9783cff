package cases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListPagination(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		filed := Date{Time: base.AddDate(0, 0, i)}
		_, err := store.Create(ctx, &CaseInput{
			CaseNo:     fmt.Sprintf("MP/%d/2024", i+1),
			FilingDate: &filed,
		})
		require.NoError(t, err)
	}

	page, err := store.List(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, page.Cases, 5)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 3, page.CurrentPage)

	full, err := store.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, full.Cases, 10)

	// Filing date descending: the newest case comes first.
	require.Equal(t, "MP/25/2024", full.Cases[0].CaseNo)
}

func TestListOrdersNullFilingDatesLast(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, &CaseInput{CaseNo: "MP/1/2024"})
	require.NoError(t, err)

	filed := Date{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	_, err = store.Create(ctx, &CaseInput{CaseNo: "MP/2/2024", FilingDate: &filed})
	require.NoError(t, err)

	page, err := store.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Cases, 2)
	require.Equal(t, "MP/2/2024", page.Cases[0].CaseNo)
	require.Equal(t, "MP/1/2024", page.Cases[1].CaseNo)
}

func TestListSanitizesPageAndLimit(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, &CaseInput{CaseNo: "MP/1/2024"})
	require.NoError(t, err)

	page, err := store.List(ctx, 0, -5)
	require.NoError(t, err)
	require.Equal(t, 1, page.CurrentPage)
	require.Len(t, page.Cases, 1)
}

func TestListNestsPartiesAndAdvocates(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, &CaseInput{
		CaseNo: "MP/7/2024",
		Petitioners: []PartyInput{{
			FirstName: "Amit",
			LastName:  "Sen",
			Advocates: []PartyInput{
				{FirstName: "S.", LastName: "Banerjee"},
				{FirstName: "P.", LastName: "Roy"},
			},
		}},
		Respondents: []PartyInput{{FirstName: "State", LastName: "of WB"}},
	})
	require.NoError(t, err)

	page, err := store.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Cases, 1)

	got := page.Cases[0]
	require.Len(t, got.Petitioners, 1)
	require.Equal(t, "Amit", got.Petitioners[0].FirstName)
	require.Len(t, got.Petitioners[0].Advocates, 2)
	require.Len(t, got.Respondents, 1)
	require.Empty(t, got.Respondents[0].Advocates)
}

func TestGetReturnsFullAggregate(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	earlier := Date{Time: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	later := Date{Time: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)}
	id, err := store.Create(ctx, &CaseInput{
		CaseNo:  "MP/8/2024",
		Section: "164 BNSS",
		PSBlock: "Barasat",
		Petitioners: []PartyInput{{
			FirstName: "Amit",
			LastName:  "Sen",
			Address:   "12 Lake Road",
			City:      "Kolkata",
			Advocates: []PartyInput{{FirstName: "S.", LastName: "Banerjee"}},
		}},
		Respondents: []PartyInput{{FirstName: "State", LastName: "of WB"}},
		LandEntries: []LandEntryInput{{Mouza: "Kadambagachi", DagNo: "332"}},
		HearingDates: []HearingDateInput{
			{HearingDate: &earlier, Purpose: "Appearance"},
			{HearingDate: &later, Purpose: "Evidence"},
		},
	})
	require.NoError(t, err)

	detail, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "MP/8/2024", detail.CaseNo)
	require.Equal(t, "Barasat", detail.PSBlock)

	require.Len(t, detail.Petitioners, 1)
	require.Equal(t, "12 Lake Road", detail.Petitioners[0].Address)
	require.Len(t, detail.Petitioners[0].Advocates, 1)
	require.Equal(t, "S.", detail.Petitioners[0].Advocates[0].FirstName)

	require.Len(t, detail.Respondents, 1)
	require.Empty(t, detail.Respondents[0].Advocates)

	require.Len(t, detail.LandEntries, 1)

	// Hearing dates come back newest first.
	require.Len(t, detail.HearingDates, 2)
	require.Equal(t, "Evidence", detail.HearingDates[0].Purpose)
	require.Equal(t, "Appearance", detail.HearingDates[1].Purpose)
}

func TestGetMissingCase(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetSharedAdvocateScopedToParty(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	// The same advocate (matched by email) represents both sides; each
	// party-in-role keeps its own advocate list.
	shared := PartyInput{FirstName: "S.", LastName: "Banerjee", Email: "sb@example.com"}
	id, err := store.Create(ctx, &CaseInput{
		CaseNo: "MP/9/2024",
		Petitioners: []PartyInput{{
			FirstName: "Amit", Advocates: []PartyInput{shared},
		}},
		Respondents: []PartyInput{{
			FirstName: "Bina",
			Advocates: []PartyInput{shared, {FirstName: "P.", LastName: "Roy"}},
		}},
	})
	require.NoError(t, err)

	detail, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, detail.Petitioners[0].Advocates, 1)
	require.Len(t, detail.Respondents[0].Advocates, 2)
}
