package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"golang.org/x/oauth2"

	sharedConfig "github.com/orris-inc/tenantdesk/internal/shared/config"
)

const httpClientTimeout = 30 * time.Second

var ErrOAuthNotConfigured = errors.New("oauth provider not configured")

type OAuthUserInfo struct {
	Email         string
	Name          string
	EmailVerified bool
	Provider      string
	ProviderID    string
}

// OAuthClient runs the authorization code flow with PKCE for one provider.
type OAuthClient interface {
	Name() string
	// AuthURL returns the consent URL and the PKCE verifier to keep until the callback.
	AuthURL(state string) (string, string, error)
	// Exchange trades the callback code for the provider's user profile.
	Exchange(ctx context.Context, code, codeVerifier string) (*OAuthUserInfo, error)
}

// OAuthProviders holds the configured providers by name.
type OAuthProviders struct {
	clients map[string]OAuthClient
}

func NewOAuthProviders(cfg sharedConfig.OAuthConfig) *OAuthProviders {
	p := &OAuthProviders{clients: map[string]OAuthClient{}}
	if cfg.Google.Configured() {
		p.Register(NewGoogleOAuthClient(cfg.Google))
	}
	if cfg.GitHub.Configured() {
		p.Register(NewGitHubOAuthClient(cfg.GitHub))
	}
	return p
}

func (p *OAuthProviders) Register(c OAuthClient) {
	p.clients[c.Name()] = c
}

func (p *OAuthProviders) Get(name string) (OAuthClient, error) {
	c, ok := p.clients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOAuthNotConfigured, name)
	}
	return c, nil
}

func (p *OAuthProviders) Names() []string {
	names := make([]string, 0, len(p.clients))
	for name := range p.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generatePKCEParams generates code_verifier and code_challenge for PKCE flow
func generatePKCEParams() (codeVerifier, codeChallenge string, err error) {
	verifierBytes := make([]byte, 32)
	if _, err := rand.Read(verifierBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	codeVerifier = base64.RawURLEncoding.EncodeToString(verifierBytes)
	hash := sha256.Sum256([]byte(codeVerifier))
	codeChallenge = base64.RawURLEncoding.EncodeToString(hash[:])
	return codeVerifier, codeChallenge, nil
}

// oauthBase is the part of the flow both providers share.
type oauthBase struct {
	config *oauth2.Config
}

func (b *oauthBase) authURL(state string, extra ...oauth2.AuthCodeOption) (string, string, error) {
	codeVerifier, codeChallenge, err := generatePKCEParams()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate PKCE parameters: %w", err)
	}
	opts := append([]oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	}, extra...)
	return b.config.AuthCodeURL(state, opts...), codeVerifier, nil
}

// client exchanges the code and returns an HTTP client that sends the
// resulting bearer token.
func (b *oauthBase) client(ctx context.Context, code, codeVerifier string) (*http.Client, error) {
	token, err := b.config.Exchange(ctx, code, oauth2.SetAuthURLParam("code_verifier", codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	c := b.config.Client(ctx, token)
	c.Timeout = httpClientTimeout
	return c, nil
}

func fetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, url, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
