package apiservice

import (
	"fmt"
	"sync"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// Role identifies one of the two test users.
type Role string

const (
	RoleAnalyst Role = "Analyst"
	RoleAdmin   Role = "Admin"
)

// Login sends the login request and returns the raw response.
func (c *Client) Login(req servicedef.LoginRequest) (Response, error) {
	return c.PostJSON(loginPath, req, "")
}

// Logout invalidates the given token.
func (c *Client) Logout(token string) (Response, error) {
	return c.PostRaw(logoutPath, "application/json", nil, token)
}

// SessionProvider acquires bearer tokens for the two test roles and caches
// them for the duration of the run. Tokens are handed out as plain values;
// callers pass them explicitly into each request, so there is no hidden
// session state beyond the HTTP connection pool.
type SessionProvider struct {
	client *Client
	creds  map[Role]servicedef.LoginRequest
	mu     sync.Mutex
	tokens map[Role]string
}

// NewSessionProvider creates a SessionProvider with the credentials for both
// roles.
func NewSessionProvider(client *Client, analyst, admin servicedef.LoginRequest) *SessionProvider {
	return &SessionProvider{
		client: client,
		creds: map[Role]servicedef.LoginRequest{
			RoleAnalyst: analyst,
			RoleAdmin:   admin,
		},
		tokens: make(map[Role]string),
	}
}

// Token returns a cached token for the role, logging in first if needed.
func (s *SessionProvider) Token(role Role) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.tokens[role]; ok {
		return token, nil
	}
	creds, ok := s.creds[role]
	if !ok {
		return "", fmt.Errorf("no credentials configured for role %q", role)
	}
	resp, err := s.client.Login(creds)
	if err != nil {
		return "", fmt.Errorf("login request for role %q failed: %w", role, err)
	}
	if resp.Status != 200 {
		return "", fmt.Errorf("login for role %q returned status %d: %s", role, resp.Status,
			truncateForLog(resp.Body))
	}
	var loginResp servicedef.LoginResponse
	if err := resp.Decode(&loginResp); err != nil {
		return "", fmt.Errorf("login for role %q: %w", role, err)
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("login for role %q returned an empty token", role)
	}
	s.tokens[role] = loginResp.Token
	return loginResp.Token, nil
}

// Invalidate drops the cached token for a role, forcing the next Token call
// to log in again. Tests that log a token out use this to avoid poisoning
// the shared cache.
func (s *SessionProvider) Invalidate(role Role) {
	s.mu.Lock()
	delete(s.tokens, role)
	s.mu.Unlock()
}
