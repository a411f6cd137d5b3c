package session

import (
	"net/http"
)

const (
	// Default Flash Class
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"

	// Default Flash Msg
	DefaultErrMsg  = "Uh oh! We've run into an issue."
	NoAccessMsg    = "Oops, sending you back somewhere safe."
	NotFoundMsg    = "We couldn't find that page, so here's the menu."
	SignInErrMsg   = "Hmm... signing in didn't work out. Please try again."
	SignInStateMsg = "That sign in link expired. Please try again."
)

var ContactUsErr = DefaultErrMsg + " Please contact us at %s if the issue persists."

type FlashSessionable interface {
	ClearFlashes(w http.ResponseWriter, r *http.Request)
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
}

type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}
