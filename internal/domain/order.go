package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order snapshots the chosen offer detail at creation time. The copied
// columns are never re-synced with the detail; only Status changes after
// creation.
type Order struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	CustomerUserID uint `gorm:"index;not null;column:customer_user_id" json:"customer_user"`
	BusinessUserID uint `gorm:"index;not null;column:business_user_id" json:"business_user"`
	OfferDetailID  uint `gorm:"not null;column:offer_detail_id" json:"-"`

	Title              string         `gorm:"not null;column:title" json:"title"`
	Revisions          int            `gorm:"not null;column:revisions" json:"revisions"`
	DeliveryTimeInDays int            `gorm:"not null;column:delivery_time_in_days" json:"delivery_time_in_days"`
	Price              int            `gorm:"not null;column:price" json:"price"`
	Features           datatypes.JSON `gorm:"column:features" json:"features"`
	OfferType          string         `gorm:"not null;column:offer_type" json:"offer_type"`

	Status    string    `gorm:"not null;default:in_progress;column:status" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CustomerUser *User        `gorm:"foreignKey:CustomerUserID;constraint:OnDelete:CASCADE" json:"-"`
	BusinessUser *User        `gorm:"foreignKey:BusinessUserID;constraint:OnDelete:CASCADE" json:"-"`
	OfferDetail  *OfferDetail `gorm:"foreignKey:OfferDetailID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OwnedBy reports whether the given user is the business side of the order.
// Order mutation is a business-side capability, so ownership is defined on
// the business user, not the customer.
func (o *Order) OwnedBy(userID uint) bool {
	return o != nil && o.BusinessUserID == userID
}
