package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Offer tier tags. Each tag may appear at most once per offer; the unique
// index below backs the update-by-tag contract.
const (
	OfferTypeBasic    = "basic"
	OfferTypeStandard = "standard"
	OfferTypePremium  = "premium"
)

func ValidOfferType(t string) bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	}
	return false
}

// MinOfferDetails is the smallest number of tiers an offer may be created
// with.
const MinOfferDetails = 3

type Offer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null;column:user_id" json:"user"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Image       string    `gorm:"column:image" json:"image"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User    *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Details []OfferDetail `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

func (Offer) TableName() string {
	return "offers"
}

func (o *Offer) OwnedBy(userID uint) bool {
	return o != nil && o.UserID == userID
}

type OfferDetail struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	OfferID            uint           `gorm:"not null;uniqueIndex:idx_offer_detail_tier;column:offer_id" json:"-"`
	Title              string         `gorm:"not null;column:title" json:"title"`
	Revisions          int            `gorm:"not null;column:revisions" json:"revisions"`
	DeliveryTimeInDays int            `gorm:"not null;column:delivery_time_in_days" json:"delivery_time_in_days"`
	Price              int            `gorm:"not null;column:price" json:"price"`
	Features           datatypes.JSON `gorm:"column:features" json:"features"`
	OfferType          string         `gorm:"not null;uniqueIndex:idx_offer_detail_tier;column:offer_type" json:"offer_type"`

	Offer *Offer `gorm:"foreignKey:OfferID" json:"-"`
}

func (OfferDetail) TableName() string {
	return "offer_details"
}
