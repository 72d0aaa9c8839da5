package models

import "time"

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
	UserStatusDelete   UserStatus = "delete"
)

type User struct {
	UID       uint       `gorm:"primaryKey;column:u_id" json:"u_id"`
	Username  string     `gorm:"size:50;not null;unique" json:"username"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Email     *string    `gorm:"size:100" json:"email"`
	FullName  *string    `gorm:"size:100" json:"full_name"`
	Status    UserStatus `gorm:"size:20;default:'active';not null" json:"status"`
	CreatedAt time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdatedAt time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
}
