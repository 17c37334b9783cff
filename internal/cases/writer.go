package cases

import (
	"context"
	"errors"
	"time"

	"github.com/subhamroy/case-registry/internal/database"
	"github.com/subhamroy/case-registry/pkg/logger"
	"gorm.io/gorm"
)

// Store provides aggregate-level access to cases and their owned rows.
// All writes run inside a single transaction; a failure at any step rolls
// the whole operation back.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStore(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log.With("component", "cases")}
}

// Create inserts a case together with its parties, advocates, land
// entries and hearing dates, returning the new case id.
func (s *Store) Create(ctx context.Context, in *CaseInput) (uint, error) {
	var caseID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&database.Case{}).Where("case_no = ?", in.CaseNo).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCaseNo
		}

		record := database.Case{
			CaseNo:     in.CaseNo,
			FilingDate: in.filingDate(),
			Section:    in.Section,
			PSBlock:    in.PSBlock,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		caseID = record.ID

		if err := insertAssociations(tx, record.ID, database.RolePetitioner, in.Petitioners); err != nil {
			return err
		}
		if err := insertAssociations(tx, record.ID, database.RoleRespondent, in.Respondents); err != nil {
			return err
		}
		if err := insertLandEntries(tx, record.ID, in.LandEntries); err != nil {
			return err
		}
		return insertHearingDates(tx, record.ID, in.HearingDates)
	})
	if err != nil {
		return 0, err
	}
	return caseID, nil
}

// Update rewrites the case's scalar fields and replaces all of its
// party/advocate associations. Land entries and hearing dates are only
// replaced when the corresponding array is present in the payload.
func (s *Store) Update(ctx context.Context, id uint, in *CaseInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing database.Case
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&database.Case{}).
			Where("case_no = ? AND id <> ?", in.CaseNo, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCaseNo
		}

		if err := tx.Model(&database.Case{}).Where("id = ?", id).Updates(map[string]interface{}{
			"case_no":     in.CaseNo,
			"filing_date": in.filingDate(),
			"section":     in.Section,
			"ps_block":    in.PSBlock,
		}).Error; err != nil {
			return err
		}

		// Advocate links reference case-party rows by role, so they go
		// first.
		if err := tx.Where("case_id = ?", id).Delete(&database.CasePartyAdvocate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", id).Delete(&database.CaseParty{}).Error; err != nil {
			return err
		}

		if err := insertAssociations(tx, id, database.RolePetitioner, in.Petitioners); err != nil {
			return err
		}
		if err := insertAssociations(tx, id, database.RoleRespondent, in.Respondents); err != nil {
			return err
		}

		if in.LandEntries != nil {
			if err := tx.Where("case_id = ?", id).Delete(&database.LandEntry{}).Error; err != nil {
				return err
			}
			if err := insertLandEntries(tx, id, in.LandEntries); err != nil {
				return err
			}
		}
		if in.HearingDates != nil {
			if err := tx.Where("case_id = ?", id).Delete(&database.HearingDate{}).Error; err != nil {
				return err
			}
			if err := insertHearingDates(tx, id, in.HearingDates); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the case and every row it owns. File blobs on disk are
// not touched; they are removed through the file endpoints.
func (s *Store) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&database.CasePartyAdvocate{},
			&database.CaseParty{},
			&database.LandEntry{},
			&database.HearingDate{},
			&database.CaseFile{},
		} {
			if err := tx.Where("case_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&database.Case{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// insertAssociations resolves each party and records it on the case under
// the given role, along with its advocates. Parties that resolve to
// "no party" are skipped entirely, advocates included.
func insertAssociations(tx *gorm.DB, caseID uint, role string, parties []PartyInput) error {
	for i := range parties {
		partyID, err := resolveParty(tx, &parties[i])
		if err != nil {
			return err
		}
		if partyID == 0 {
			continue
		}

		link := database.CaseParty{CaseID: caseID, PartyID: partyID, PartyRole: role}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		for j := range parties[i].Advocates {
			advocateID, err := resolveParty(tx, &parties[i].Advocates[j])
			if err != nil {
				return err
			}
			if advocateID == 0 {
				continue
			}
			advLink := database.CasePartyAdvocate{
				CaseID:     caseID,
				PartyID:    partyID,
				PartyRole:  role,
				AdvocateID: advocateID,
			}
			if err := tx.Create(&advLink).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func insertLandEntries(tx *gorm.DB, caseID uint, entries []LandEntryInput) error {
	for _, e := range entries {
		entry := database.LandEntry{
			CaseID:  caseID,
			Mouza:   e.Mouza,
			Khatian: e.Khatian,
			JLNo:    e.JLNo,
			DagNo:   e.DagNo,
			Area:    e.Area,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertHearingDates(tx *gorm.DB, caseID uint, dates []HearingDateInput) error {
	for _, d := range dates {
		hearing := database.HearingDate{CaseID: caseID, Purpose: d.Purpose}
		if d.HearingDate != nil && !d.HearingDate.IsZero() {
			t := d.HearingDate.Time
			hearing.HearingDate = &t
		}
		if err := tx.Create(&hearing).Error; err != nil {
			return err
		}
	}
	return nil
}

func (in *CaseInput) filingDate() *time.Time {
	if in.FilingDate == nil || in.FilingDate.IsZero() {
		return nil
	}
	t := in.FilingDate.Time
	return &t
}
