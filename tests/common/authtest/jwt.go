//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity service would, signed with the
// configured secret.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.TokenDuration, jwt.WithIssuer(h.cfg.Issuer))
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	// past any leeway the server is configured with
	service := jwt.NewService(h.cfg.Secret, -h.cfg.Leeway-time.Minute, jwt.WithIssuer(h.cfg.Issuer))
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
