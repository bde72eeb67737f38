package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	sharedConfig "github.com/orris-inc/tenantdesk/internal/shared/config"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newGitHubTestServer(t *testing.T, user githubUserInfo, emails []githubEmail) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		assert.Equal(t, "the-verifier", r.Form.Get("code_verifier"))
		writeJSON(w, map[string]any{"access_token": "tok", "token_type": "bearer"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, user)
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, emails)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGitHubClient(srv *httptest.Server) *GitHubOAuthClient {
	c := NewGitHubOAuthClient(sharedConfig.OAuthProviderConfig{ClientID: "id", ClientSecret: "secret"})
	c.config.Endpoint = oauth2.Endpoint{
		AuthURL:  srv.URL + "/login/oauth/authorize",
		TokenURL: srv.URL + "/login/oauth/access_token",
	}
	c.apiBase = srv.URL
	return c
}

func TestGitHubOAuthClient_Exchange(t *testing.T) {
	tests := []struct {
		name      string
		user      githubUserInfo
		emails    []githubEmail
		wantEmail string
		wantName  string
		wantErr   bool
	}{
		{
			name:      "public email",
			user:      githubUserInfo{ID: 7, Email: "a@example.com", Login: "alice"},
			wantEmail: "a@example.com",
			wantName:  "alice",
		},
		{
			name: "private email falls back to primary",
			user: githubUserInfo{ID: 8, Name: "Bob"},
			emails: []githubEmail{
				{Email: "other@example.com"},
				{Email: "b@example.com", Primary: true, Verified: true},
			},
			wantEmail: "b@example.com",
			wantName:  "Bob",
		},
		{
			name:    "no email at all",
			user:    githubUserInfo{ID: 9},
			emails:  []githubEmail{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newGitHubTestServer(t, tt.user, tt.emails)
			c := newTestGitHubClient(srv)

			info, err := c.Exchange(context.Background(), "the-code", "the-verifier")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, info.Email)
			assert.Equal(t, tt.wantName, info.Name)
			assert.Equal(t, "github", info.Provider)
			assert.True(t, info.EmailVerified)
		})
	}
}

func TestOAuthClient_AuthURLCarriesPKCE(t *testing.T) {
	c := NewGoogleOAuthClient(sharedConfig.OAuthProviderConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"})

	raw, verifier, err := c.AuthURL("state-1")
	require.NoError(t, err)
	assert.NotEmpty(t, verifier)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.NotEqual(t, verifier, q.Get("code_challenge"))
}

func TestOAuthProviders(t *testing.T) {
	p := NewOAuthProviders(sharedConfig.OAuthConfig{
		GitHub: sharedConfig.OAuthProviderConfig{ClientID: "id", ClientSecret: "secret"},
	})

	assert.Equal(t, []string{"github"}, p.Names())

	_, err := p.Get("google")
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)

	c, err := p.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "github", c.Name())
}
