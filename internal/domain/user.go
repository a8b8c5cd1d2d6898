package domain

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`
	IsStaff   bool      `gorm:"not null;default:false;column:is_staff" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type UserProfile struct {
	UserID       uint      `gorm:"primaryKey;column:user_id" json:"user"`
	File         string    `gorm:"column:file" json:"file"`
	Location     string    `gorm:"column:location" json:"location"`
	Tel          string    `gorm:"column:tel" json:"tel"`
	Description  string    `gorm:"column:description" json:"description"`
	WorkingHours string    `gorm:"column:working_hours" json:"working_hours"`
	Type         string    `gorm:"not null;default:customer;column:type" json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// OwnedBy reports whether the profile belongs to the given user. Profiles
// are only editable by their owner.
func (p *UserProfile) OwnedBy(userID uint) bool {
	return p != nil && p.UserID == userID
}
