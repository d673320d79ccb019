package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// RoleAdmin is the elevated role that lands on the dashboard after login.
const RoleAdmin = "ADMIN"

// Session is the authenticated identity held by the console between runs.
type Session struct {
	Token     string     `json:"token"`
	Role      string     `json:"role"`
	ID        string     `json:"id,omitempty"`
	Username  string     `json:"username,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// IsAdmin reports whether the session carries the administrative role.
func (s *Session) IsAdmin() bool {
	return s != nil && strings.EqualFold(s.Role, RoleAdmin)
}

// Valid reports whether the session can be used to authenticate requests.
// A missing token or an expired JWT makes the session unusable. Tokens that
// are not JWTs are opaque to the console and are accepted as long as they
// are non-empty.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || strings.TrimSpace(s.Token) == "" {
		return false
	}
	if s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return false
	}
	if exp, ok := TokenExpiry(s.Token); ok && !now.Before(exp) {
		return false
	}
	return true
}

// JwtClaims are the claims the POS backend signs into access tokens.
type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The console never holds the signing secret, so it can only use the claim
// to skip sending a token the server would reject anyway.
func TokenExpiry(token string) (time.Time, bool) {
	claims := &JwtClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// LoginRequest is the body posted to the authentication endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse accepts both the flat session shape and the
// {accessToken, user} envelope used by the retail backend.
type LoginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	ID          string `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	User        *User  `json:"user,omitempty"`
}

// User is the profile embedded in an enveloped login response.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session normalises either response shape into a Session.
func (r *LoginResponse) Session() *Session {
	s := &Session{
		Token:    r.Token,
		Role:     r.Role,
		ID:       r.ID,
		Username: r.Username,
		Name:     r.Name,
		Email:    r.Email,
	}
	if s.Token == "" {
		s.Token = r.AccessToken
	}
	if u := r.User; u != nil {
		if s.Role == "" {
			s.Role = u.Role
		}
		if s.ID == "" {
			s.ID = u.ID
		}
		if s.Username == "" {
			s.Username = u.Username
		}
		if s.Name == "" {
			s.Name = u.Name
		}
		if s.Email == "" {
			s.Email = u.Email
		}
	}
	if exp, ok := TokenExpiry(s.Token); ok {
		s.ExpiresAt = &exp
	}
	return s
}

func (r *LoginResponse) UnmarshalJSON(data []byte) error {
	type plain LoginResponse
	var raw struct {
		plain
		ID ID `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = LoginResponse(raw.plain)
	r.ID = string(raw.ID)
	return nil
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		ID ID `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	u.ID = string(raw.ID)
	return nil
}

// ErrorPayload is the JSON error body returned by the backend.
type ErrorPayload struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
