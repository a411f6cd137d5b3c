package router

import "errors"

var (
	ErrInvalidPattern   = errors.New("invalid route pattern")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotFound         = errors.New("no route matches")
	ErrShadowed         = errors.New("route shadowed by an earlier route")
)
