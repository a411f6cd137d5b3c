package auth

import "errors"

var (
	ErrNoCode        = errors.New("no authorization code")
	ErrNotValid      = errors.New("not valid")
	ErrProvider      = errors.New("provider refused sign in")
	ErrStateMismatch = errors.New("state does not match")
)
