package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestHMACService_AccessRoundTrip(t *testing.T) {
	s := newTestService()
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "a@b.c", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	c, err := s.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.UserID != id || c.Email != "a@b.c" || c.Role != "admin" || c.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestHMACService_TokenTypesAreNotInterchangeable(t *testing.T) {
	s := newTestService()
	id := uuid.New()

	refresh, _ := s.GenerateRefreshToken(id)
	if _, err := s.ValidateAccessToken(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}

	access, _ := s.GenerateAccessToken(id, "", "student")
	if _, err := s.ValidateRefreshToken(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}

	c, err := s.ValidateRefreshToken(refresh)
	if err != nil || c.UserID != id {
		t.Fatalf("refresh validate: %v %+v", err, c)
	}
}

func TestHMACService_Expired(t *testing.T) {
	s := newTestService()
	start := time.Now()
	s.now = func() time.Time { return start }

	tok, err := s.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = func() time.Time { return start.Add(2 * time.Hour) }
	if _, err := s.ValidateAccessToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecretAndGarbage(t *testing.T) {
	tok, _ := NewHMACService("other", "other2", time.Hour, time.Hour).GenerateAccessToken(uuid.New(), "", "")

	s := newTestService()
	if _, err := s.ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := s.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_MissingSecret(t *testing.T) {
	s := NewHMACService("", "r", time.Hour, time.Hour)
	if _, err := s.GenerateAccessToken(uuid.New(), "", ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
