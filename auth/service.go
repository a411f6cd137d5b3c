package auth

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/gorilla/securecookie"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
)

// GoogleProvider names the provider Service signs in with;
// it is the first segment of the callback path.
const GoogleProvider = "google"

const stateLength = 32

// Service builds sign in links for Google OAuth.
type Service struct {
	config *oauth2.Config
}

// NewService constructs a *Service for the OAuth client.
// redirectURL must be absolute; Google sends visitors back to it.
func NewService(clientID, clientSecret, redirectURL string) (*Service, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf(`%w: config cannot be ""`, ErrNotValid)
	}

	u, err := url.Parse(redirectURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: redirect URL %q is not absolute", ErrNotValid, redirectURL)
	}

	return &Service{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  u.String(),
			Scopes:       []string{goauth2.UserinfoEmailScope, goauth2.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
	}, nil
}

// Provider returns the name of the provider the Service signs in with.
func (s *Service) Provider() string { return GoogleProvider }

// SignInURL returns the provider's consent page URL carrying state,
// which the provider passes back to the callback untouched.
func (s *Service) SignInURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// NewState generates a random, URL-safe nonce to round trip through the provider.
func NewState() (string, error) {
	b := securecookie.GenerateRandomKey(stateLength)
	if b == nil {
		return "", fmt.Errorf("%w: could not read random bytes", ErrNotValid)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
