package auth

import (
	"testing"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	jwt.SetSecret("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.UserSession{}))
	return NewService(db)
}

func TestBootstrapAndLogin(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Bootstrap("Studio Admin", "admin@studio.test", "correct-horse-battery")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	// second bootstrap is refused
	_, err = svc.Bootstrap("Other", "other@studio.test", "whatever-password")
	assert.ErrorIs(t, err, ErrAlreadyBootstrapped)

	token, logged, err := svc.Login("admin@studio.test", "correct-horse-battery", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotNil(t, logged.LastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Bootstrap("", "admin@studio.test", "correct-horse-battery")
	require.NoError(t, err)

	_, _, err = svc.Login("admin@studio.test", "wrong-password", "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login("unknown@studio.test", "correct-horse-battery", "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Bootstrap("", "admin@studio.test", "correct-horse-battery")
	require.NoError(t, err)

	token, _, err := svc.Login("admin@studio.test", "correct-horse-battery", "", "")
	require.NoError(t, err)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID, claims.SessionID))

	var s models.UserSession
	require.NoError(t, svc.db.Where("id = ?", claims.SessionID).First(&s).Error)
	assert.NotNil(t, s.RevokedAt)
}
