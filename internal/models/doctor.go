package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Specialization string

const (
	SpecPhysician         Specialization = "Physician"
	SpecPhysiotherapy     Specialization = "Physiotherapy"
	SpecCardiologist      Specialization = "Cardiologist"
	SpecDermatologist     Specialization = "Dermatologist"
	SpecPediatrician      Specialization = "Pediatrician"
	SpecNeurologist       Specialization = "Neurologist"
	SpecOrthopedicSurgeon Specialization = "Orthopedic Surgeon"
)

type DoctorProfile struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"userId"`

	Specialization Specialization `gorm:"size:50;not null" json:"specialization"`
	IsApproved     bool           `gorm:"not null;default:false" json:"isApproved"`

	WeeklyAvailability []WeeklyAvailability `gorm:"foreignKey:DoctorID;references:UserID" json:"weeklyAvailability"`
	Availability       []DateOverride       `gorm:"foreignKey:DoctorID;references:UserID" json:"availability"`
}

// AfterCreate seeds the weekly schedule as part of creating the profile so
// every doctor row starts with all seven days populated.
func (p *DoctorProfile) AfterCreate(tx *gorm.DB) error {
	rows := DefaultWeeklyRows(p.UserID)
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "weekday"}},
		DoNothing: true,
	}).Create(&rows).Error
}
