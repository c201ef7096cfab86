package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	ExperienceYears int             `gorm:"not null;default:0" json:"experience_years"`
	Bio             string          `gorm:"type:text" json:"bio,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Available       bool            `gorm:"not null;default:true;index" json:"available"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Slots []TimeSlot `gorm:"foreignKey:DoctorID" json:"slots,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
