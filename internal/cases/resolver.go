package cases

import (
	"errors"

	"github.com/subhamroy/case-registry/internal/database"
	"gorm.io/gorm"
)

// resolveParty returns the id of an existing party matching the input's
// email or mobile number, or inserts a new party row and returns its id.
// A party without a first name resolves to 0: the caller must skip
// creating any association for it.
//
// Existing rows are never updated; the first match wins. Absent fields
// are excluded from the match so that empty strings cannot collide with
// other parties' empty fields.
func resolveParty(tx *gorm.DB, in *PartyInput) (uint, error) {
	if in == nil || in.FirstName == "" {
		return 0, nil
	}

	if in.Email != "" || in.MobileNo != "" {
		query := tx.Model(&database.Party{})
		switch {
		case in.Email != "" && in.MobileNo != "":
			query = query.Where("email = ? OR mobile_no = ?", in.Email, in.MobileNo)
		case in.Email != "":
			query = query.Where("email = ?", in.Email)
		default:
			query = query.Where("mobile_no = ?", in.MobileNo)
		}

		var existing database.Party
		err := query.First(&existing).Error
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
	}

	party := database.Party{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Pincode:       in.Pincode,
		PoliceStation: in.PoliceStation,
		Email:         in.Email,
		MobileNo:      in.MobileNo,
	}
	if err := tx.Create(&party).Error; err != nil {
		return 0, err
	}
	return party.ID, nil
}
