package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"anoa.com/lifesaver/internal/modules/session/dto"
	"anoa.com/lifesaver/pkg/apperror"
)

// SessionService issues device session tokens. A token binds one phone to
// one device so every inbox call carries its identity explicitly; there is
// no account system behind it (multi-tenant auth is out of scope).
type SessionService interface {
	CreateSession(phone string) (*dto.SessionResponse, error)
}

type sessionService struct {
	secret string
	ttl    time.Duration
}

func NewSessionService(secret string, ttl time.Duration) SessionService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &sessionService{secret: secret, ttl: ttl}
}

func (s *sessionService) CreateSession(phone string) (*dto.SessionResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", apperror.ErrInvalidInput)
	}

	expiresAt := time.Now().Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   phone,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		Token:     signed,
		Phone:     phone,
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}
