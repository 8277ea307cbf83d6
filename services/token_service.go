package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopnest/config"
	"shopnest/models"
)

// Session audiences. Buyer and seller sessions live in separate cookies and
// must not be interchangeable, so the audience is baked into the claims.
const (
	AudienceUser   = "user"
	AudienceSeller = "seller"
)

const activationExpiry = 5 * time.Minute

var ErrInvalidToken = errors.New("invalid or expired token")

// PendingShop is the registration bundle carried inside an activation token.
// It is never persisted on its own; the token is its only storage.
type PendingShop struct {
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Password    string        `json:"password"` // already bcrypt-hashed
	Address     string        `json:"address"`
	PhoneNumber string        `json:"phone_number"`
	ZipCode     string        `json:"zip_code"`
	Avatar      models.Avatar `json:"avatar"`
}

type ActivationClaims struct {
	Shop PendingShop `json:"shop"`
	jwt.RegisteredClaims
}

type SessionClaims struct {
	ID   uint   `json:"id"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

type TokenService struct {
	sessionSecret    []byte
	activationSecret []byte
	sessionExpiry    time.Duration
	activationTTL    time.Duration
}

func NewTokenService(config *config.AuthConfig) *TokenService {
	return &TokenService{
		sessionSecret:    []byte(config.JWTSecret),
		activationSecret: []byte(config.ActivationSecret),
		sessionExpiry:    time.Duration(config.SessionExpiry) * time.Hour,
		activationTTL:    activationExpiry,
	}
}

func (s *TokenService) SessionExpiry() time.Duration {
	return s.sessionExpiry
}

// CreateActivationToken signs the full registration bundle into a short-lived
// token. Redeeming the token is the only way the bundle becomes an account.
func (s *TokenService) CreateActivationToken(pending PendingShop) (string, error) {
	claims := &ActivationClaims{
		Shop: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.activationTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.activationSecret)
}

// ValidateActivationToken decodes and verifies in one step. Signature and
// expiry failures both come back as ErrInvalidToken so callers cannot tell
// them apart.
func (s *TokenService) ValidateActivationToken(tokenString string) (*PendingShop, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActivationClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.activationSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*ActivationClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims.Shop, nil
}

func (s *TokenService) CreateSessionToken(id uint, kind string) (string, error) {
	claims := &SessionClaims{
		ID:   id,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.sessionSecret)
}

// ValidateSessionToken verifies the token and checks it was issued for the
// expected audience, so a buyer session can never pass as a seller session.
func (s *TokenService) ValidateSessionToken(tokenString, kind string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.sessionSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
