package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErr "github.com/proconnect/backend/pkg/errors"
)

// TokenService issues and verifies signed, time-limited session tokens.
type TokenService interface {
	// Issue produces an HS256 token carrying subject and an absolute
	// expiration of now + TTL.
	Issue(subject string) (string, error)
	// Verify returns the subject of a valid token. Malformed, tampered and
	// expired tokens all fail with the unauthorized code.
	Verify(token string) (string, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) TokenService {
	return &tokenService{secret: secret, ttl: ttl}
}

func (s *tokenService) Issue(subject string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, nil
}

func (s *tokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", appErr.Wrap(err, appErr.CodeUnauthorized, "invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", appErr.New(appErr.CodeUnauthorized, "invalid or expired token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", appErr.New(appErr.CodeUnauthorized, "invalid or expired token")
	}
	return sub, nil
}
