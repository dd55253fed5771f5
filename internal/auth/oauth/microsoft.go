package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const defaultGraphBaseURL = "https://graph.microsoft.com/v1.0"

// ErrExchangeFailed is returned when the provider rejects the
// authorization code or the access token.
var ErrExchangeFailed = errors.New("provider token exchange failed")

// Profile is the subset of the Microsoft Graph /me response the auth
// gateway needs: a stable external id plus email and display name.
type Profile struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// EmailAddress returns the profile's email, falling back to the user
// principal name when Graph reports no mail attribute.
func (p *Profile) EmailAddress() string {
	if p.Mail != "" {
		return p.Mail
	}
	return p.UserPrincipalName
}

// MicrosoftProvider exchanges authorization codes for access tokens and
// resolves tokens to Graph profiles.
type MicrosoftProvider struct {
	conf         *oauth2.Config
	httpClient   *http.Client
	graphBaseURL string
}

// NewMicrosoftProvider creates a provider for the given AAD application.
func NewMicrosoftProvider(clientID, clientSecret, tenantID, redirectURL string) *MicrosoftProvider {
	return &MicrosoftProvider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile", "User.Read"},
			Endpoint:     microsoft.AzureADEndpoint(tenantID),
		},
		httpClient:   http.DefaultClient,
		graphBaseURL: defaultGraphBaseURL,
	}
}

// ExchangeCode trades an authorization code for a provider access token.
func (m *MicrosoftProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	tok, err := m.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return tok.AccessToken, nil
}

// FetchProfile resolves an access token to the caller's Graph profile.
func (m *MicrosoftProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.graphBaseURL+"/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrExchangeFailed, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	if profile.ID == "" {
		return nil, fmt.Errorf("%w: profile has no id", ErrExchangeFailed)
	}

	return &profile, nil
}
