package auth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedConfig "github.com/orris-inc/tenantdesk/internal/shared/config"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleOAuthClient struct {
	oauthBase
	userInfoURL string
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func NewGoogleOAuthClient(cfg sharedConfig.OAuthProviderConfig) *GoogleOAuthClient {
	return &GoogleOAuthClient{
		oauthBase: oauthBase{config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}},
		userInfoURL: googleUserInfoURL,
	}
}

func (c *GoogleOAuthClient) Name() string { return "google" }

func (c *GoogleOAuthClient) AuthURL(state string) (string, string, error) {
	return c.authURL(state, oauth2.AccessTypeOnline)
}

func (c *GoogleOAuthClient) Exchange(ctx context.Context, code, codeVerifier string) (*OAuthUserInfo, error) {
	client, err := c.client(ctx, code, codeVerifier)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := fetchJSON(ctx, client, c.userInfoURL, &info); err != nil {
		return nil, err
	}

	return &OAuthUserInfo{
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.VerifiedEmail,
		Provider:      c.Name(),
		ProviderID:    info.ID,
	}, nil
}
