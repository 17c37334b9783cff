package cases

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/subhamroy/case-registry/internal/database"
)

var (
	// ErrNotFound indicates that no case (or owned row) matched the id.
	ErrNotFound = errors.New("case not found")

	// ErrDuplicateCaseNo indicates a create/update collided with an
	// existing case number.
	ErrDuplicateCaseNo = errors.New("case number already exists")
)

// Date accepts both "2006-01-02" and RFC 3339 timestamps on the wire.
// Filing and hearing dates arrive as plain dates from the import scripts
// and as timestamps from API clients.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// PartyInput is a petitioner, respondent, or advocate as submitted by a
// client. Advocates nest one level deep; advocate rows never carry their
// own advocates.
type PartyInput struct {
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	State         string       `json:"state"`
	Pincode       string       `json:"pincode"`
	PoliceStation string       `json:"police_station"`
	Email         string       `json:"email"`
	MobileNo      string       `json:"mobile_no"`
	Advocates     []PartyInput `json:"advocates,omitempty"`
}

type LandEntryInput struct {
	Mouza   string `json:"mouza"`
	Khatian string `json:"khatian"`
	JLNo    string `json:"jl_no"`
	DagNo   string `json:"dag_no"`
	Area    string `json:"area"`
}

type HearingDateInput struct {
	HearingDate *Date  `json:"hearing_date"`
	Purpose     string `json:"purpose"`
}

// CaseInput carries the full aggregate payload for create and update.
// On update, nil LandEntries/HearingDates leave the stored rows untouched;
// party/advocate associations are always replaced.
type CaseInput struct {
	CaseNo       string             `json:"case_no" binding:"required"`
	FilingDate   *Date              `json:"filing_date"`
	Section      string             `json:"section"`
	PSBlock      string             `json:"ps_block"`
	Petitioners  []PartyInput       `json:"petitioners"`
	Respondents  []PartyInput       `json:"respondents"`
	LandEntries  []LandEntryInput   `json:"land_entries"`
	HearingDates []HearingDateInput `json:"hearing_dates"`
}

// AdvocateView is the name-only advocate projection used by list views
// and the PDF summary.
type AdvocateView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PartySummary is the flattened party projection for the list view.
type PartySummary struct {
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Advocates []AdvocateView `json:"advocates,omitempty"`
}

type CaseSummary struct {
	ID          uint           `json:"id"`
	CaseNo      string         `json:"case_no"`
	FilingDate  *time.Time     `json:"filing_date"`
	Petitioners []PartySummary `json:"petitioners"`
	Respondents []PartySummary `json:"respondents"`
}

// CaseListPage is one page of the case list plus paging metadata.
type CaseListPage struct {
	Cases       []CaseSummary `json:"cases"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// PartyDetail is a full party record annotated with its role on the case
// and its advocates.
type PartyDetail struct {
	database.Party
	PartyRole string         `json:"party_role"`
	Advocates []AdvocateView `json:"advocates,omitempty"`
}

// CaseDetail is the fully aggregated case returned by Get.
type CaseDetail struct {
	database.Case
	Petitioners  []PartyDetail          `json:"petitioners"`
	Respondents  []PartyDetail          `json:"respondents"`
	LandEntries  []database.LandEntry   `json:"land_entries"`
	HearingDates []database.HearingDate `json:"hearing_dates"`
}
