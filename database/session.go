package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionExpired = errors.New("session expired")

type Session struct {
	gorm.Model
	UserId uint      `json:"UserId" gorm:"index"`
	User   User      `json:"User" gorm:"foreignKey:UserId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION;"`
	Token  string    `gorm:"column:token;primaryKey;type:varchar(43)"`
	Expiry time.Time `gorm:"column:expiry;index"`
}

// GetSessionUser resolves a session token to its user.
func GetSessionUser(DB *gorm.DB, token string) (*User, error) {
	var session Session
	if err := DB.Preload("User").First(&session, "token = ?", token).Error; err != nil {
		return nil, err
	}

	if time.Now().After(session.Expiry) {
		DB.Delete(&session)
		return nil, ErrSessionExpired
	}

	return &session.User, nil
}
