// internal/pkg/jwt/claims.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the storefront API puts into an admin access token.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Name  string   `json:"name,omitempty"`
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the display projection of the claims.
type Identity struct {
	Subject   string     `json:"subject,omitempty"`
	Email     string     `json:"email,omitempty"`
	Name      string     `json:"name,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// HasRole checks if the claims contain a specific role
func (c *Claims) HasRole(role string) bool {
	if c.Role == role {
		return true
	}
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is an admin (including super admin)
func (c *Claims) IsAdmin() bool {
	return c.HasRole("admin") || c.HasRole("ADMIN") || c.HasRole("super_admin")
}

// Inspect decodes the token WITHOUT verifying its signature. The console has
// no key material; the result is for display only and must never gate access.
func Inspect(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

func (c *Claims) Identity() Identity {
	id := Identity{
		Subject: c.Subject,
		Email:   c.Email,
		Name:    c.Name,
		Roles:   c.Roles,
	}
	if c.Role != "" && !contains(id.Roles, c.Role) {
		id.Roles = append([]string{c.Role}, id.Roles...)
	}
	if c.ExpiresAt != nil {
		t := c.ExpiresAt.Time
		id.ExpiresAt = &t
	}
	return id
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
