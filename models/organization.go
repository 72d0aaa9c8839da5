package models

import "time"

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingAnnual  BillingCycle = "annual"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "pastDue"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Organization is the billing/tenant boundary. Seat counts come from the
// billing provider via webhook and cap memberships per role.
type Organization struct {
	OrgID              uint               `gorm:"primaryKey;column:org_id" json:"org_id"`
	Name               string             `gorm:"size:200;not null" json:"name"`
	Slug               string             `gorm:"size:100;uniqueIndex" json:"slug"`
	OwnerID            uint               `gorm:"not null" json:"owner_id"`
	AdminSeats         int                `gorm:"not null;default:1" json:"admin_seats"`
	AnalystSeats       int                `gorm:"not null;default:0" json:"analyst_seats"`
	UserSeats          int                `gorm:"not null;default:0" json:"user_seats"`
	BillingCycle       BillingCycle       `gorm:"size:20;default:'monthly'" json:"billing_cycle"`
	SubscriptionID     *string            `gorm:"size:100;index" json:"subscription_id,omitempty"`
	SubscriptionStatus SubscriptionStatus `gorm:"size:20;default:'active'" json:"subscription_status"`
	IsActive           bool               `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}

// SeatsFor returns the licensed seat count for a member role.
func (o Organization) SeatsFor(role MemberRole) int {
	switch role {
	case RoleAdmin:
		return o.AdminSeats
	case RoleAnalyst:
		return o.AnalystSeats
	case RoleUser:
		return o.UserSeats
	}
	return 0
}
