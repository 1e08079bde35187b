//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	t.Run("round trip keeps user and role", func(t *testing.T) {
		svc := jwt.NewService("secret", time.Minute, jwt.WithIssuer("identity"))
		userID := uuid.New()

		token, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("wrong secret is invalid", func(t *testing.T) {
		token, err := jwt.NewService("secret", time.Minute).GenerateToken(uuid.New(), user.RoleViewer)
		require.NoError(t, err)

		_, err = jwt.NewService("other", time.Minute).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("foreign issuer is invalid", func(t *testing.T) {
		token, err := jwt.NewService("secret", time.Minute, jwt.WithIssuer("someone-else")).
			GenerateToken(uuid.New(), user.RoleViewer)
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Minute, jwt.WithIssuer("identity")).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := jwt.NewService("secret", -time.Minute)
		token, err := svc.GenerateToken(uuid.New(), user.RoleViewer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("leeway absorbs small skew", func(t *testing.T) {
		token, err := jwt.NewService("secret", -5*time.Second).GenerateToken(uuid.New(), user.RoleViewer)
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Minute, jwt.WithLeeway(30*time.Second)).ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("token without expiry is invalid", func(t *testing.T) {
		raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{UserID: uuid.New(), Role: "viewer"})
		token, err := raw.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Minute).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("other signing method is invalid", func(t *testing.T) {
		raw := gojwt.NewWithClaims(gojwt.SigningMethodHS512, jwt.Claims{
			UserID:           uuid.New(),
			Role:             "viewer",
			RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute))},
		})
		token, err := raw.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Minute).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwt.NewService("secret", time.Minute).ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
