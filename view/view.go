package view

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/router"
)

// An ID identifies a top-level view.
type ID string

const (
	Menu       ID = "menu"
	ChatWindow ID = "chat-window"
	Auth       ID = "auth"
)

func (id ID) String() string { return string(id) }

// Paths selecting each view.
const (
	MenuPath          = "/"
	ChatWindowPath    = "/ChatWindow/:" + PersonaParam
	AuthPath          = "/auth"
	OAuthCallbackPath = "/oauth/callback/*"

	// APIPrefix prefixes the endpoints serving JSON to the client shell.
	APIPrefix    = "/api"
	NavigatePath = "/navigate"
)

// PersonaParam names the path parameter holding the persona a Chat Window talks to.
const PersonaParam = "personaName"

const (
	authTmpl       = "tmpl/auth.tmpl"
	chatWindowTmpl = "tmpl/chat_window.tmpl"
	menuTmpl       = "tmpl/menu.tmpl"
)

// A State is what a client shell needs to render a view.
type State struct {
	View   ID            `json:"view"`
	Path   string        `json:"path"`
	Params router.Params `json:"params"`
	Data   any           `json:"data,omitempty"`
}

// MenuData is the State.Data of the Menu view.
type MenuData struct {
	Tools personachat.Toolbox `json:"tools,omitempty"`
}

// ChatWindowData is the State.Data of the Chat Window view.
type ChatWindowData struct {
	PersonaName string `json:"personaName"`
}

// AuthData is the State.Data of the Auth view.
type AuthData struct {
	Provider  string        `json:"provider,omitempty"`
	SignInURL string        `json:"signInUrl,omitempty"`
	Callback  *CallbackData `json:"callback,omitempty"`
}

// CallbackData reports what an OAuth provider sent back to /oauth/callback/*.
type CallbackData struct {
	Provider string `json:"provider"`
	Suffix   string `json:"suffix"`
	HasCode  bool   `json:"hasCode"`
	Error    string `json:"error,omitempty"`
}

// Routes declares the path selecting each view, in the order they are matched.
func Routes(h *Handler) []router.Route {
	return []router.Route{
		{Path: MenuPath, Method: http.MethodGet, View: Menu.String(), Handler: h.Menu},
		{Path: ChatWindowPath, Method: http.MethodGet, View: ChatWindow.String(), Handler: h.ChatWindow},
		{Path: AuthPath, Method: http.MethodGet, View: Auth.String(), Handler: h.Auth},
		{Path: OAuthCallbackPath, Method: http.MethodGet, View: Auth.String(), Handler: h.OAuthCallback},
	}
}

// newState builds the State of view id for the route the router matched r to.
func newState(r *http.Request, id ID, data any) State {
	params := make(router.Params)
	if m, ok := router.MatchFromContext(r.Context()); ok {
		for k, v := range m.Params {
			params[k] = v
		}
	}

	return State{View: id, Path: r.URL.EscapedPath(), Params: params, Data: data}
}

// wantsJSON reports whether the client asked for a State document instead of a page.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// wantsHTML reports whether the client is a browser asking for a page.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
