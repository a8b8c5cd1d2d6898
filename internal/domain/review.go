package domain

import (
	"time"
)

type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BusinessUserID uint      `gorm:"not null;uniqueIndex:idx_review_reviewer_business;column:business_user_id" json:"business_user"`
	ReviewerID     uint      `gorm:"not null;uniqueIndex:idx_review_reviewer_business;column:reviewer_id" json:"reviewer"`
	Rating         int       `gorm:"not null;column:rating" json:"rating"`
	Description    string    `gorm:"column:description" json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	BusinessUser *User `gorm:"foreignKey:BusinessUserID;constraint:OnDelete:CASCADE" json:"-"`
	Reviewer     *User `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) OwnedBy(userID uint) bool {
	return r != nil && r.ReviewerID == userID
}
