package cases

import (
	"context"
	"errors"

	"github.com/subhamroy/case-registry/internal/database"
	"gorm.io/gorm"
)

// partyRow is one case-party link joined with its party record.
type partyRow struct {
	CaseID        uint
	PartyID       uint
	PartyRole     string
	FirstName     string
	LastName      string
	Address       string
	City          string
	State         string
	Pincode       string
	PoliceStation string
	Email         string
	MobileNo      string
}

// advocateRow is one advocate link joined with the advocate's name.
type advocateRow struct {
	CaseID    uint
	PartyID   uint
	PartyRole string
	FirstName string
	LastName  string
}

// advocateKey scopes an advocate list to one party-in-role on one case.
type advocateKey struct {
	caseID    uint
	partyID   uint
	partyRole string
}

// List returns one page of cases ordered by filing date descending
// (nulls last), each with its role-partitioned parties and their
// advocates, plus the total page count.
func (s *Store) List(ctx context.Context, page, limit int) (*CaseListPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&database.Case{}).Count(&total).Error; err != nil {
		return nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	var records []database.Case
	if err := db.
		Order("filing_date DESC NULLS LAST").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	parties, advocates, err := s.loadAssociations(db, ids)
	if err != nil {
		return nil, err
	}

	out := &CaseListPage{
		Cases:       make([]CaseSummary, 0, len(records)),
		TotalPages:  totalPages,
		CurrentPage: page,
	}
	for _, r := range records {
		summary := CaseSummary{
			ID:          r.ID,
			CaseNo:      r.CaseNo,
			FilingDate:  r.FilingDate,
			Petitioners: []PartySummary{},
			Respondents: []PartySummary{},
		}
		for _, p := range parties[r.ID] {
			ps := PartySummary{
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Advocates: advocates[advocateKey{r.ID, p.PartyID, p.PartyRole}],
			}
			switch p.PartyRole {
			case database.RolePetitioner:
				summary.Petitioners = append(summary.Petitioners, ps)
			case database.RoleRespondent:
				summary.Respondents = append(summary.Respondents, ps)
			}
		}
		out.Cases = append(out.Cases, summary)
	}
	return out, nil
}

// Get returns the fully aggregated case: scalar fields, role-partitioned
// parties with their advocates, land entries, and hearing dates in
// descending date order.
func (s *Store) Get(ctx context.Context, id uint) (*CaseDetail, error) {
	db := s.db.WithContext(ctx)

	var record database.Case
	if err := db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	parties, advocates, err := s.loadAssociations(db, []uint{id})
	if err != nil {
		return nil, err
	}

	detail := &CaseDetail{
		Case:        record,
		Petitioners: []PartyDetail{},
		Respondents: []PartyDetail{},
	}
	for _, p := range parties[id] {
		pd := PartyDetail{
			Party: database.Party{
				ID:            p.PartyID,
				FirstName:     p.FirstName,
				LastName:      p.LastName,
				Address:       p.Address,
				City:          p.City,
				State:         p.State,
				Pincode:       p.Pincode,
				PoliceStation: p.PoliceStation,
				Email:         p.Email,
				MobileNo:      p.MobileNo,
			},
			PartyRole: p.PartyRole,
			Advocates: advocates[advocateKey{id, p.PartyID, p.PartyRole}],
		}
		switch p.PartyRole {
		case database.RolePetitioner:
			detail.Petitioners = append(detail.Petitioners, pd)
		case database.RoleRespondent:
			detail.Respondents = append(detail.Respondents, pd)
		}
	}

	if err := db.Where("case_id = ?", id).Find(&detail.LandEntries).Error; err != nil {
		return nil, err
	}
	if err := db.Where("case_id = ?", id).
		Order("hearing_date DESC").
		Find(&detail.HearingDates).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

// loadAssociations fetches the party and advocate levels of the
// aggregate for the given case ids, one query per level, keyed for
// in-memory assembly.
func (s *Store) loadAssociations(db *gorm.DB, ids []uint) (map[uint][]partyRow, map[advocateKey][]AdvocateView, error) {
	parties := make(map[uint][]partyRow)
	advocates := make(map[advocateKey][]AdvocateView)
	if len(ids) == 0 {
		return parties, advocates, nil
	}

	var partyRows []partyRow
	if err := db.Table("case_parties AS cp").
		Select("cp.case_id, cp.party_id, cp.party_role, p.first_name, p.last_name, p.address, p.city, p.state, p.pincode, p.police_station, p.email, p.mobile_no").
		Joins("JOIN parties p ON p.id = cp.party_id").
		Where("cp.case_id IN ?", ids).
		Order("cp.id").
		Scan(&partyRows).Error; err != nil {
		return nil, nil, err
	}
	for _, row := range partyRows {
		parties[row.CaseID] = append(parties[row.CaseID], row)
	}

	var advocateRows []advocateRow
	if err := db.Table("case_party_advocates AS cpa").
		Select("cpa.case_id, cpa.party_id, cpa.party_role, adv.first_name, adv.last_name").
		Joins("JOIN parties adv ON adv.id = cpa.advocate_id").
		Where("cpa.case_id IN ?", ids).
		Order("cpa.id").
		Scan(&advocateRows).Error; err != nil {
		return nil, nil, err
	}
	for _, row := range advocateRows {
		key := advocateKey{row.CaseID, row.PartyID, row.PartyRole}
		advocates[key] = append(advocates[key], AdvocateView{
			FirstName: row.FirstName,
			LastName:  row.LastName,
		})
	}

	return parties, advocates, nil
}
