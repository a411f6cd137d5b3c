package view

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/auth"
	"github.com/xy-planning-network/personachat/http/req"
	"github.com/xy-planning-network/personachat/http/resp"
	"github.com/xy-planning-network/personachat/http/router"
	"github.com/xy-planning-network/personachat/http/session"
	"github.com/xy-planning-network/personachat/logger"
)

// A Resolver selects the route a path maps to without serving it.
type Resolver interface {
	Resolve(method, target string) (router.Match, error)
}

// A SignInLinker builds the link sending a user to an OAuth provider.
type SignInLinker interface {
	Provider() string
	SignInURL(state string) string
}

// Handler serves every view.
type Handler struct {
	*resp.Responder
	auth     SignInLinker
	logger   logger.Logger
	parser   *req.Parser
	resolver Resolver
	tools    personachat.Toolbox
}

// HandlerOpt configures a *Handler.
type HandlerOpt func(*Handler)

// WithAuth offers a sign-in link on the Auth view.
func WithAuth(a SignInLinker) HandlerOpt {
	return func(h *Handler) {
		h.auth = a
	}
}

// WithToolbox offers the Tools on the Menu.
func WithToolbox(tb personachat.Toolbox) HandlerOpt {
	return func(h *Handler) {
		h.tools = tb
	}
}

// WithResolver sets the Resolver the navigation endpoint consults.
// Mount sets it to the *router.Router views are mounted on.
func WithResolver(res Resolver) HandlerOpt {
	return func(h *Handler) {
		h.resolver = res
	}
}

// NewHandler constructs a *Handler rendering with d.
func NewHandler(d *resp.Responder, l logger.Logger, opts ...HandlerOpt) *Handler {
	if l == nil {
		l = logger.New(nil)
	}

	h := &Handler{Responder: d, logger: l, parser: req.NewParser()}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Menu renders the Menu view.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, menuTmpl, newState(r, Menu, MenuData{Tools: h.tools}))
}

// ChatWindow renders the Chat Window view for the persona named in the path.
func (h *Handler) ChatWindow(w http.ResponseWriter, r *http.Request) {
	data := ChatWindowData{PersonaName: router.Param(r, PersonaParam)}
	h.render(w, r, chatWindowTmpl, newState(r, ChatWindow, data))
}

// Auth renders the Auth view.
// When a provider is configured, a fresh state nonce is stored in the session
// and the view links to the provider's sign-in page.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	data := AuthData{}
	if h.auth != nil {
		data.Provider = h.auth.Provider()
		data.SignInURL = h.signInURL(w, r)
	}

	h.render(w, r, authTmpl, newState(r, Auth, data))
}

// OAuthCallback renders the Auth view with what the provider sent back.
// The state nonce stored by Auth is consumed whether or not it matches.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	var expected string
	if s, err := h.Session(r.Context()); err == nil {
		expected, err = s.PopState(w, r)
		if err != nil && !errors.Is(err, session.ErrNoValue) {
			h.logger.Warn("popping oauth state", &logger.LogContext{Error: err, Request: r})
		}
	}

	cb := auth.ParseCallback(router.Param(r, "*"), r.URL.Query(), expected)
	data := AuthData{
		Callback: &CallbackData{
			Provider: cb.Provider,
			Suffix:   cb.Suffix,
			HasCode:  cb.HasCode,
		},
	}
	if h.auth != nil {
		data.Provider = h.auth.Provider()
	}

	code := http.StatusOK
	if err := cb.Err(); err != nil {
		code = http.StatusBadRequest
		data.Callback.Error = err.Error()
		h.logger.Warn("oauth callback rejected", &logger.LogContext{Error: err, Request: r})
	}

	h.respond(w, r, authTmpl, resp.Code(code), resp.Data(newState(r, Auth, data)))
}

// navigateQuery holds the query params of the navigation endpoint.
// Path is a path on this app; scheme-relative URLs like //host/auth are rejected.
type navigateQuery struct {
	Path string `schema:"path" validate:"required,startswith=/,startsnotwith=//"`
}

// navigateErr is the body the navigation endpoint writes when it cannot resolve a path.
type navigateErr struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

// Navigate resolves the path query parameter to the view it selects
// and writes that view's State without rendering it.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD, OPTIONS")
		h.json(w, r, resp.Code(http.StatusMethodNotAllowed), resp.Data(navigateErr{Error: "method not allowed"}))
		return
	}

	var q navigateQuery
	if err := h.parser.ParseQueryParams(r.URL.Query(), &q); err != nil {
		var verrs req.ValidationErrors
		if errors.As(err, &verrs) {
			h.json(w, r, resp.Code(http.StatusBadRequest), resp.Data(verrs))
			return
		}

		h.logger.Error("navigate: parsing query", &logger.LogContext{Error: err, Request: r})
		h.json(w, r, resp.Code(http.StatusInternalServerError), resp.Data(navigateErr{Error: "cannot parse query"}))
		return
	}

	target := q.Path
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		h.json(w, r, resp.Code(http.StatusBadRequest), resp.Data(navigateErr{Error: "path must be a URL path", Path: target}))
		return
	}

	if h.resolver == nil {
		h.logger.Error("navigate: no resolver", &logger.LogContext{Request: r})
		h.json(w, r, resp.Code(http.StatusInternalServerError), resp.Data(navigateErr{Error: "cannot resolve paths"}))
		return
	}

	m, err := h.resolver.Resolve(http.MethodGet, target)
	switch {
	case errors.Is(err, router.ErrNotFound), errors.Is(err, router.ErrMethodNotAllowed):
		h.json(w, r, resp.Code(http.StatusNotFound), resp.Data(navigateErr{Error: "no view at path", Path: u.EscapedPath()}))
		return
	case err != nil:
		h.logger.Error("navigate: resolving", &logger.LogContext{Error: err, Request: r, Data: map[string]any{"path": target}})
		h.json(w, r, resp.Code(http.StatusInternalServerError), resp.Data(navigateErr{Error: "cannot resolve path", Path: u.EscapedPath()}))
		return
	}

	if m.Route.View == "" {
		h.json(w, r, resp.Code(http.StatusNotFound), resp.Data(navigateErr{Error: "no view at path", Path: u.EscapedPath()}))
		return
	}

	state := State{View: ID(m.Route.View), Path: u.EscapedPath(), Params: m.Params}
	if state.Params == nil {
		state.Params = make(router.Params)
	}
	if state.View == ChatWindow {
		state.Data = ChatWindowData{PersonaName: m.Params.Get(PersonaParam)}
	}

	h.json(w, r, resp.Data(state))
}

// NotFound handles every path no view is declared for.
// Browsers are sent back to the Menu with a warning; everyone else gets a 404.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) && !wantsJSON(r) && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		opts := []resp.Fn{resp.Url(MenuPath)}
		if _, err := h.Session(r.Context()); err == nil {
			opts = append(opts, resp.Warn(session.NotFoundMsg))
		}

		if err := h.Redirect(w, r, opts...); err != nil {
			h.logger.Error("redirecting not found", &logger.LogContext{Error: err, Request: r})
			http.NotFound(w, r)
		}
		return
	}

	h.json(w, r, resp.Code(http.StatusNotFound), resp.Data(navigateErr{Error: "not found", Path: r.URL.EscapedPath()}))
}

// render writes state as JSON or as tmpl inside the layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl string, state State) {
	h.respond(w, r, tmpl, resp.Data(state))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, tmpl string, opts ...resp.Fn) {
	if wantsJSON(r) {
		h.json(w, r, opts...)
		return
	}

	// Html has already written an error response when it fails.
	opts = append([]resp.Fn{resp.Layout(), resp.Tmpls(tmpl)}, opts...)
	if err := h.Html(w, r, opts...); err != nil {
		h.logger.Error("rendering view", &logger.LogContext{Error: err, Request: r})
	}
}

func (h *Handler) json(w http.ResponseWriter, r *http.Request, opts ...resp.Fn) {
	if err := h.Json(w, r, opts...); err != nil {
		h.logger.Error("writing json", &logger.LogContext{Error: err, Request: r})
	}
}

// signInURL stores a new state nonce in the session and returns the provider link carrying it.
// Without a session the nonce could never be verified, so no link is offered.
func (h *Handler) signInURL(w http.ResponseWriter, r *http.Request) string {
	s, err := h.Session(r.Context())
	if err != nil {
		h.logger.Warn("no session for oauth state", &logger.LogContext{Error: err, Request: r})
		return ""
	}

	state, err := auth.NewState()
	if err != nil {
		h.logger.Error("generating oauth state", &logger.LogContext{Error: err, Request: r})
		return ""
	}

	if err := s.SetState(w, r, state); err != nil {
		h.logger.Error("storing oauth state", &logger.LogContext{Error: err, Request: r})
		return ""
	}

	return h.auth.SignInURL(state)
}
