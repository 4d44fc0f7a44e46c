package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AudienceSession = "zenjourney-session"
	AudiencePlanner = "zenjourney-planner"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller attached to a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == "admin"
}

type TokenSigner struct {
	secret     []byte
	sessionTTL time.Duration
	bearerTTL  time.Duration
	now        func() time.Time
}

func NewTokenSigner(secret string, sessionTTL, bearerTTL time.Duration) *TokenSigner {
	return &TokenSigner{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		bearerTTL:  bearerTTL,
		now:        time.Now,
	}
}

func (s *TokenSigner) SessionTTL() time.Duration { return s.sessionTTL }

// CreateSessionToken signs the value stored in the session cookie.
func (s *TokenSigner) CreateSessionToken(id Identity) (string, error) {
	return s.sign(id, AudienceSession, s.sessionTTL)
}

// CreateBearerToken signs the short-lived credential sent to the planning service.
func (s *TokenSigner) CreateBearerToken(id Identity) (string, error) {
	return s.sign(id, AudiencePlanner, s.bearerTTL)
}

func (s *TokenSigner) sign(id Identity, audience string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: id.UserID.String(),
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateSessionToken verifies a session cookie value and returns its identity.
func (s *TokenSigner) ValidateSessionToken(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(AudienceSession),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.Join(jwt.ErrTokenInvalidClaims, err)
	}

	return &Identity{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}
