package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User is the identity shared by every role. Role-specific data hangs off
// it: doctors carry a DoctorProfile, patients and admins carry nothing extra.
type User struct {
	ID uint `gorm:"primaryKey" json:"_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null;default:'patient'" json:"role"`

	Bio           string `gorm:"size:500" json:"bio,omitempty"`
	ContactNumber string `gorm:"size:20" json:"contactNumber,omitempty"`

	Doctor *DoctorProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) IsDoctor() bool {
	return u != nil && u.Role == RoleDoctor && u.Doctor != nil
}

// IsBookable reports whether patients may book this user.
func (u *User) IsBookable() bool {
	return u.IsDoctor() && u.Doctor.IsApproved
}
