package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultLoginBaseURL is the Microsoft identity platform endpoint.
const DefaultLoginBaseURL = "https://login.microsoftonline.com"

// TokenProvider exchanges client credentials for a Graph bearer token.
// The token itself is opaque to the pipeline.
type TokenProvider struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	httpClient *http.Client
	loginBase  string
}

// NewTokenProvider creates a token provider for the given tenant application.
func NewTokenProvider(tenantID, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		TenantID:     tenantID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		loginBase:    DefaultLoginBaseURL,
	}
}

// Token performs the client-credentials exchange and returns a bearer token.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimSuffix(p.loginBase, "/"), p.TenantID)

	form := url.Values{
		"client_id":     {p.ClientID},
		"client_secret": {p.ClientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{URL: tokenURL, Message: "failed to create token request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &Error{URL: tokenURL, Message: "token request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			URL:        tokenURL,
			Message:    fmt.Sprintf("token exchange returned status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &Error{URL: tokenURL, Message: "failed to decode token response", Cause: err}
	}
	if body.AccessToken == "" {
		return "", &Error{URL: tokenURL, Message: "token response missing access_token"}
	}
	return body.AccessToken, nil
}

// Configured reports whether the provider has complete credentials.
func (p *TokenProvider) Configured() bool {
	return p != nil && p.TenantID != "" && p.ClientID != "" && p.ClientSecret != ""
}
