package auth

import (
	"crypto/subtle"
	"fmt"
	"net/url"
	"strings"
)

// A Callback is what a provider reported when redirecting back to /oauth/callback/*.
type Callback struct {
	// Provider is the first segment of Suffix, lower cased.
	Provider string

	// Suffix is the part of the path matched by the wildcard.
	Suffix string

	// HasCode reports whether the provider sent an authorization code.
	HasCode bool

	// StateValid reports whether the state param matched the expected nonce.
	StateValid bool

	// Error and ErrorDescription are set when the provider refused the sign in.
	Error            string
	ErrorDescription string
}

// ParseCallback reads the wildcard suffix and query params of a callback request,
// checking the state param against expectedState.
// An empty expectedState never matches.
func ParseCallback(suffix string, query url.Values, expectedState string) Callback {
	suffix = strings.Trim(suffix, "/")
	provider, _, _ := strings.Cut(suffix, "/")

	state := query.Get("state")
	return Callback{
		Provider:         strings.ToLower(provider),
		Suffix:           suffix,
		HasCode:          query.Get("code") != "",
		StateValid:       expectedState != "" && subtle.ConstantTimeCompare([]byte(state), []byte(expectedState)) == 1,
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}
}

// Err summarizes why the Callback cannot complete a sign in, or nil if it can.
func (c Callback) Err() error {
	switch {
	case c.Error != "":
		if c.ErrorDescription != "" {
			return fmt.Errorf("%w: %s: %s", ErrProvider, c.Error, c.ErrorDescription)
		}
		return fmt.Errorf("%w: %s", ErrProvider, c.Error)
	case !c.StateValid:
		return fmt.Errorf("%w", ErrStateMismatch)
	case !c.HasCode:
		return fmt.Errorf("%w", ErrNoCode)
	default:
		return nil
	}
}
