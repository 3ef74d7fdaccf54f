package models

import "time"

// UserModel is an admin account. There is no public signup; the first user
// is created through the bootstrap endpoint.
type UserModel struct {
	Base
	Name     string `json:"name"`
	Email    string `json:"email"    gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	LastLoginIP string     `json:"lastLoginIp,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// UserSession is a revocable login session bound to a JWT.
type UserSession struct {
	Base
	UserID    string     `json:"userId" gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"`
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}

func (UserSession) TableName() string { return "user_sessions" }
