package pdf

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/subhamroy/case-registry/internal/cases"
	"github.com/subhamroy/case-registry/internal/database"
)

var pageCountPattern = regexp.MustCompile(`/Count (\d+)`)

// pageCount reads the page tree count out of the raw PDF bytes.
func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	match := pageCountPattern.FindSubmatch(data)
	require.NotNil(t, match, "PDF output has no page tree")
	n, err := strconv.Atoi(string(match[1]))
	require.NoError(t, err)
	return n
}

func detailWithPetitioners(n int) *cases.CaseDetail {
	filed := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	detail := &cases.CaseDetail{
		Case: database.Case{CaseNo: "MP/12/2024", FilingDate: &filed},
	}
	for i := 0; i < n; i++ {
		detail.Petitioners = append(detail.Petitioners, cases.PartyDetail{
			Party: database.Party{FirstName: fmt.Sprintf("Petitioner%d", i+1), LastName: "Sen"},
			Advocates: []cases.AdvocateView{
				{FirstName: "S.", LastName: "Banerjee"},
			},
		})
	}
	detail.Respondents = []cases.PartyDetail{{
		Party: database.Party{FirstName: "State", LastName: "of WB"},
	}}
	return detail
}

func TestRenderCaseSummarySinglePage(t *testing.T) {
	data, err := RenderCaseSummary(detailWithPetitioners(3))
	require.NoError(t, err)
	require.True(t, len(data) > 0)
	require.Equal(t, "%PDF", string(data[:4]))
	require.Equal(t, 1, pageCount(t, data))
}

func TestRenderCaseSummaryPaginates(t *testing.T) {
	// Each petitioner takes two lines; enough of them must spill onto
	// further pages.
	data, err := RenderCaseSummary(detailWithPetitioners(60))
	require.NoError(t, err)
	require.Greater(t, pageCount(t, data), 1)
}

func TestRenderCaseSummaryNoParties(t *testing.T) {
	detail := &cases.CaseDetail{Case: database.Case{CaseNo: "MP/1/2024"}}
	data, err := RenderCaseSummary(detail)
	require.NoError(t, err)
	require.Equal(t, 1, pageCount(t, data))
}

func TestAdvocateNames(t *testing.T) {
	require.Equal(t, "N/A", advocateNames(nil))
	require.Equal(t, "S. Banerjee", advocateNames([]cases.AdvocateView{
		{FirstName: "S.", LastName: "Banerjee"},
	}))
	require.Equal(t, "S. Banerjee, P. Roy", advocateNames([]cases.AdvocateView{
		{FirstName: "S.", LastName: "Banerjee"},
		{FirstName: "P.", LastName: "Roy"},
	}))
	// Missing last names do not leave trailing spaces.
	require.Equal(t, "Sunil", advocateNames([]cases.AdvocateView{{FirstName: "Sunil"}}))
}

func TestFilenameSanitizesSeparators(t *testing.T) {
	tests := []struct {
		caseNo string
		want   string
	}{
		{"12/2024", "case_12_2024.pdf"},
		{"MP/C/164/2024", "case_MP_C_164_2024.pdf"},
		{"plain", "case_plain.pdf"},
		{`12\2024`, "case_12_2024.pdf"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Filename(tt.caseNo))
		require.NotContains(t, Filename(tt.caseNo), "/")
	}
}
