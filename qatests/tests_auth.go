package qatests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esg-insight/qa-contract-tests/contract"
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

func DoAuthTests(t *T) {
	t.Run("valid login returns a token", func(t *T) {
		cfg := t.Config()
		resp := t.Login(servicedef.LoginRequest{
			Email:    cfg.Analyst.Email,
			Password: cfg.Analyst.Password,
		})

		require.Equal(t, 200, resp.Status, "login failed: %s", string(resp.Body))
		assert.Contains(t, resp.ContentType(), "application/json")

		var login servicedef.LoginResponse
		require.NoError(t, resp.Decode(&login))
		assert.NotEmpty(t, login.Token)
		assert.False(t, login.ExpiresIn.IsNull(), "expiresIn missing from login response")
		assert.Equal(t, cfg.Analyst.Email, login.User.Email)
		assert.Equal(t, "Analyst", login.User.Role)
		assert.True(t, contract.ValidUUID(login.User.ID), "user id %q is not a valid UUID", login.User.ID)
	})

	t.Run("admin login returns the Admin role", func(t *T) {
		cfg := t.Config()
		resp := t.Login(servicedef.LoginRequest{
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})

		require.Equal(t, 200, resp.Status, "login failed: %s", string(resp.Body))
		var login servicedef.LoginResponse
		require.NoError(t, resp.Decode(&login))
		assert.Equal(t, "Admin", login.User.Role)
	})

	t.Run("invalid credentials are rejected", func(t *T) {
		resp := t.Login(servicedef.LoginRequest{
			Email:    "invalid@email.com",
			Password: "wrongpassword",
		})

		require.Equal(t, 401, resp.Status)
		msg := t.RequireErrorBody(resp)
		assert.Contains(t, msg, "Invalid credentials")
	})

	t.Run("logout succeeds with a valid token", func(t *T) {
		// Log in directly rather than using the cached analyst token, so
		// logging the token out does not break later tests.
		cfg := t.Config()
		loginResp := t.Login(servicedef.LoginRequest{
			Email:    cfg.Analyst.Email,
			Password: cfg.Analyst.Password,
		})
		require.Equal(t, 200, loginResp.Status)
		var login servicedef.LoginResponse
		require.NoError(t, loginResp.Decode(&login))

		resp := t.Logout(login.Token)
		require.Equal(t, 200, resp.Status, "logout failed: %s", string(resp.Body))
		var logout servicedef.LogoutResponse
		require.NoError(t, resp.Decode(&logout))
		assert.Contains(t, logout.Message, "Logout successful")
	})
}
