package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email, role string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	// ValidateAccessToken accepts only access tokens signed with the access secret.
	ValidateAccessToken(token string) (Claims, error)
	// ValidateRefreshToken accepts only refresh tokens signed with the refresh secret.
	ValidateRefreshToken(token string) (Claims, error)
}

// HMACService signs HS256 tokens, each token type with its own secret.
type HMACService struct {
	access  keyring
	refresh keyring

	now func() time.Time
}

type keyring struct {
	secret    []byte
	expiresIn time.Duration
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		access:  keyring{secret: []byte(accessSecret), expiresIn: accessExpiresIn},
		refresh: keyring{secret: []byte(refreshSecret), expiresIn: refreshExpiresIn},
		now:     time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return s.sign(s.access, Claims{UserID: userID, Email: email, Role: role, TokenType: TokenTypeAccess})
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(s.refresh, Claims{UserID: userID, TokenType: TokenTypeRefresh})
}

func (s *HMACService) ValidateAccessToken(token string) (Claims, error) {
	return s.parse(token, s.access, TokenTypeAccess)
}

func (s *HMACService) ValidateRefreshToken(token string) (Claims, error) {
	return s.parse(token, s.refresh, TokenTypeRefresh)
}

func (s *HMACService) sign(k keyring, c Claims) (string, error) {
	if len(k.secret) == 0 || k.expiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()
	c.RegisteredClaims = jwtlib.RegisteredClaims{
		Subject:   c.UserID.String(),
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(k.expiresIn)),
		ID:        uuid.NewString(),
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(k.secret)
}

func (s *HMACService) parse(token string, k keyring, wantType string) (Claims, error) {
	if len(k.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return k.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.TokenType != wantType || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

var _ Service = (*HMACService)(nil)
