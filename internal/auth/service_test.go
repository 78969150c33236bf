package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
)

func newTestService(t *testing.T, password string, ttl time.Duration) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return NewService("test-secret", "admin", string(hash), ttl)
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	svc := newTestService(t, "s3cret", time.Hour)

	token, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	authCtx, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if authCtx.Subject != "admin" || authCtx.Role != "admin" {
		t.Fatalf("unexpected auth context: %+v", authCtx)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t, "s3cret", time.Hour)

	if _, err := svc.Login("admin", "wrong"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for wrong password, got %v", err)
	}
	if _, err := svc.Login("root", "s3cret"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for wrong username, got %v", err)
	}
}

func TestLoginFailsWhenNotConfigured(t *testing.T) {
	svc := NewService("test-secret", "admin", "", time.Hour)

	if _, err := svc.Login("admin", "anything"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError when no hash configured, got %v", err)
	}
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	svc := newTestService(t, "s3cret", time.Hour)

	if _, err := svc.Verify("not-a-token"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	other := newTestService(t, "s3cret", time.Hour)
	// Same credentials, different secret.
	otherSigned := NewService("other-secret", "admin", other.adminPasswordHash, time.Hour)
	token, err := otherSigned.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.Verify(token); !domain.IsValidation(err) {
		t.Fatalf("token signed with another secret must be rejected, got %v", err)
	}
}
