package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTService signs and verifies session tokens. The claims carry exactly
// the session projection, never the password hash or other row fields.
type JWTService interface {
	Generate(session *model.Session) (string, error)
	Verify(token string) (*model.Session, error)
}

type Claims struct {
	jwt.RegisteredClaims
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Email    *string    `json:"email,omitempty"`
	Role     model.Role `json:"role"`
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) Generate(session *model.Session) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		Username: session.Username,
		Name:     session.Name,
		Email:    session.Email,
		Role:     session.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Verify(tokenStr string) (*model.Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return &model.Session{
		UserID:   userID,
		Username: claims.Username,
		Name:     claims.Name,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}
