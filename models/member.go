package models

import "time"

type MemberRole string

const (
	RoleAdmin   MemberRole = "admin"
	RoleAnalyst MemberRole = "analyst"
	RoleUser    MemberRole = "user"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleUser:
		return true
	}
	return false
}

// OrgMember links a user to an organization with a role. A user holds at
// most one membership per organization.
type OrgMember struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	OrgID    uint       `gorm:"not null;uniqueIndex:uq_member_org_user" json:"org_id"`
	UserID   uint       `gorm:"not null;uniqueIndex:uq_member_org_user" json:"user_id"`
	Role     MemberRole `gorm:"size:20;not null;default:'user'" json:"role"`
	JoinedAt time.Time  `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (OrgMember) TableName() string {
	return "org_members"
}
