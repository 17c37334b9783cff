package database

import (
	"time"
)

// Party roles on a case.
const (
	RolePetitioner = "Petitioner"
	RoleRespondent = "Respondent"
)

// User roles.
const (
	UserRoleAdmin  = "Admin"
	UserRoleStaff  = "Staff"
	UserRolePublic = "Public"
)

type Case struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	CaseNo     string     `json:"case_no" gorm:"uniqueIndex;not null"`
	FilingDate *time.Time `json:"filing_date"`
	Section    string     `json:"section"`
	PSBlock    string     `json:"ps_block" gorm:"column:ps_block"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Party is a person record shared across roles (petitioner, respondent,
// advocate) and across cases.
type Party struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Pincode       string    `json:"pincode"`
	PoliceStation string    `json:"police_station"`
	Email         string    `json:"email" gorm:"index"`
	MobileNo      string    `json:"mobile_no" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
}

type CaseParty struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CaseID    uint   `json:"case_id" gorm:"index;not null"`
	PartyID   uint   `json:"party_id" gorm:"not null"`
	PartyRole string `json:"party_role" gorm:"not null"`
}

// CasePartyAdvocate records that an advocate represents a specific
// party-in-role on a specific case. The (CaseID, PartyID, PartyRole)
// triple must match an existing CaseParty row.
type CasePartyAdvocate struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CaseID     uint   `json:"case_id" gorm:"index;not null"`
	PartyID    uint   `json:"party_id" gorm:"not null"`
	PartyRole  string `json:"party_role" gorm:"not null"`
	AdvocateID uint   `json:"advocate_id" gorm:"not null"`
}

type LandEntry struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	CaseID  uint   `json:"case_id" gorm:"index;not null"`
	Mouza   string `json:"mouza"`
	Khatian string `json:"khatian"`
	JLNo    string `json:"jl_no" gorm:"column:jl_no"`
	DagNo   string `json:"dag_no"`
	Area    string `json:"area"`
}

type HearingDate struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CaseID      uint       `json:"case_id" gorm:"index;not null"`
	HearingDate *time.Time `json:"hearing_date"`
	Purpose     string     `json:"purpose"`
}

type CaseFile struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CaseID       uint      `json:"case_id" gorm:"index;not null"`
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	FilePath     string    `json:"file_path"`
	MimeType     string    `json:"mime_type"`
	UploadedAt   time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Case) TableName() string {
	return "cases"
}

func (Party) TableName() string {
	return "parties"
}

func (CaseParty) TableName() string {
	return "case_parties"
}

func (CasePartyAdvocate) TableName() string {
	return "case_party_advocates"
}

func (LandEntry) TableName() string {
	return "land_entries"
}

func (HearingDate) TableName() string {
	return "hearing_dates"
}

func (CaseFile) TableName() string {
	return "case_files"
}

func (User) TableName() string {
	return "users"
}
