// pattern: Imperative Shell

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims is the shape of the backend's access token payload.
// The backend verifies signatures; the client only reads claims.
type accessClaims struct {
	UserInfo struct {
		Name  string   `json:"name"`
		Roles []string `json:"roles"`
	} `json:"UserInfo"`
	jwt.RegisteredClaims
}

// Identity is who the current session belongs to, as read from the
// access token.
type Identity struct {
	Name  string
	Roles []string
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	for _, r := range id.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}

// Login authenticates against POST /api/auth, stores the returned
// access token, and returns the identity decoded from it.
func (c *Client) Login(ctx context.Context, email, password string) (Identity, error) {
	body := map[string]string{"email": email, "password": password}
	var out loginResponse

	resp, err := c.send(ctx, http.MethodPost, "/api/auth", body, &out)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrServerNotResponding, err)
	}
	if err := responseError(resp); err != nil {
		return Identity{}, err
	}

	c.setToken(out.AccessToken)
	id, err := identityFromToken(out.AccessToken)
	if err != nil {
		c.logger.Warn("access token claims unreadable", "error", err)
		return Identity{}, nil
	}
	c.logger.Info("logged in", "user", id.Name, "roles", id.Roles)
	return id, nil
}

// Refresh trades the refresh cookie for a new access token via
// GET /refresh. Failure means the session cannot be extended.
func (c *Client) Refresh(ctx context.Context) error {
	var out loginResponse
	resp, err := c.send(ctx, http.MethodGet, "/refresh", nil, &out)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerNotResponding, err)
	}
	if err := responseError(resp); err != nil {
		return err
	}
	c.setToken(out.AccessToken)
	return nil
}

// Logout drops the local session. The refresh cookie expires on its
// own; the backend offers no revocation endpoint.
func (c *Client) Logout() {
	c.clearToken()
	c.logger.Info("logged out")
}

// identityFromToken reads the UserInfo claims without verifying the
// signature (the backend is the verifier; this is display/gating data).
func identityFromToken(token string) (Identity, error) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Identity{}, fmt.Errorf("parse access token: %w", err)
	}
	return Identity{Name: claims.UserInfo.Name, Roles: claims.UserInfo.Roles}, nil
}
