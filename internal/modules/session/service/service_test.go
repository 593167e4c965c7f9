package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/lifesaver/pkg/apperror"
)

func TestCreateSession(t *testing.T) {
	t.Run("token round trips and carries the phone", func(t *testing.T) {
		svc := NewSessionService("test-secret", time.Hour)

		resp, err := svc.CreateSession("+1-555-0100")
		require.NoError(t, err)
		assert.Equal(t, "+1-555-0100", resp.Phone)
		assert.EqualValues(t, 3600, resp.ExpiresIn)

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, "+1-555-0100", claims.Subject)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		svc := NewSessionService("test-secret", time.Hour)

		resp, err := svc.CreateSession("+1-555-0100")
		require.NoError(t, err)

		_, err = jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte("other-secret"), nil
		})
		assert.Error(t, err)
	})

	t.Run("blank phone is rejected", func(t *testing.T) {
		svc := NewSessionService("test-secret", time.Hour)

		_, err := svc.CreateSession("   ")
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("non-positive ttl falls back to the default", func(t *testing.T) {
		svc := NewSessionService("test-secret", 0)

		resp, err := svc.CreateSession("+1-555-0100")
		require.NoError(t, err)
		assert.EqualValues(t, (30 * 24 * time.Hour).Seconds(), resp.ExpiresIn)
	})
}
