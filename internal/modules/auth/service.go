// Package auth implements admin login on top of bcrypt passwords and
// revocable DB-backed sessions.
package auth

import (
	"errors"
	"time"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrBadCredentials covers both unknown email and wrong password; the
	// response never says which.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrAlreadyBootstrapped means an admin account already exists.
	ErrAlreadyBootstrapped = errors.New("an account already exists")
)

// Service provides authentication operations.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies credentials and issues a session token.
func (s *Service) Login(email, password, ip, ua string) (string, *models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}

	token, _, err := session.Issue(s.db, user.ID, ip, ua, session.DefaultTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	_ = s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_at": now,
		"last_login_ip": ip,
	}).Error
	user.LastLoginAt = &now
	user.LastLoginIP = ip

	return token, &user, nil
}

// Bootstrap creates the first admin account. Refused once any user exists.
func (s *Service) Bootstrap(name, email, password string) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyBootstrapped
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{Name: name, Email: email, Password: string(hashed)}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the session the token was bound to.
func (s *Service) Logout(userID, sessionID string) error {
	return session.Revoke(s.db, userID, sessionID)
}

// Me loads the authenticated user's profile.
func (s *Service) Me(userID string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
