package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
)

// Context is the explicit auth value for one console session: set at login,
// cleared at logout, passed where needed instead of ambient lookups.
type Context struct {
	Subject string
	Role    string
}

// Service issues and verifies console session tokens. Admin credentials come
// from configuration (username + bcrypt hash), not from ambient state.
type Service struct {
	secret            []byte
	adminUsername     string
	adminPasswordHash string
	ttl               time.Duration
}

func NewService(secret, adminUsername, adminPasswordHash string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		secret:            []byte(secret),
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		ttl:               ttl,
	}
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(username, password string) (string, error) {
	if s.adminPasswordHash == "" {
		return "", domain.ValidationError{Field: "auth", Msg: "admin login is not configured"}
	}
	if username != s.adminUsername {
		return "", domain.ValidationError{Field: "credentials", Msg: "invalid username or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", domain.ValidationError{Field: "credentials", Msg: "invalid username or password"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"exp":  time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Verify parses a session token and returns its auth context.
func (s *Service) Verify(tokenString string) (Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Context{}, domain.ValidationError{Field: "token", Msg: "invalid or expired session", Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Context{}, domain.ValidationError{Field: "token", Msg: "malformed claims"}
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return Context{}, domain.ValidationError{Field: "token", Msg: "missing subject"}
	}
	return Context{Subject: sub, Role: role}, nil
}
