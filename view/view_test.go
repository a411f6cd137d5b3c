package view_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/middleware"
	"github.com/xy-planning-network/personachat/http/resp"
	"github.com/xy-planning-network/personachat/http/router"
	"github.com/xy-planning-network/personachat/http/session"
	"github.com/xy-planning-network/personachat/http/template"
	"github.com/xy-planning-network/personachat/logger"
	"github.com/xy-planning-network/personachat/view"
)

const (
	htmlAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	jsonAccept = "application/json"
)

// fakeLinker records the state it was last asked to sign in with.
type fakeLinker struct {
	state string
}

func (f *fakeLinker) Provider() string { return "google" }

func (f *fakeLinker) SignInURL(state string) string {
	f.state = state
	return "https://provider.test/signin?state=" + state
}

// mount builds a router serving the views the way the server does.
func mount(t *testing.T, opts ...view.HandlerOpt) (*router.Router, *session.Stub) {
	t.Helper()

	log := logger.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	parser := template.NewParser(
		template.WithFS(view.Templates()),
		template.WithFn(template.Env(personachat.Testing)),
		template.WithFn(template.Title("personachat")),
	)
	d := resp.NewResponder(
		resp.WithLayoutTemplate(template.LayoutTmpl),
		resp.WithErrTemplate(template.ErrTmpl),
		resp.WithLogger(log),
		resp.WithParser(parser),
		resp.WithRootUrl("http://localhost:8080"),
	)

	stub := session.NewStub()
	rt := router.New(personachat.Testing, nil)
	rt.OnEveryRequest(middleware.InjectSession(stub))
	view.Mount(rt, view.NewHandler(d, log, opts...), middleware.CORS("http://localhost:8080"))

	return rt, stub
}

func serve(rt http.Handler, method, target, accept string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, nil)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}

	rt.ServeHTTP(w, r)
	return w
}

func TestMountHtml(t *testing.T) {
	tcs := []struct {
		name     string
		target   string
		code     int
		contains []string
	}{
		{
			name:     "Menu",
			target:   "/",
			code:     http.StatusOK,
			contains: []string{`data-view="menu"`, `data-path-prefix="/ChatWindow/"`},
		},
		{
			name:     "Chat-Window",
			target:   "/ChatWindow/Alice",
			code:     http.StatusOK,
			contains: []string{`data-view="chat-window"`, `data-persona="Alice"`},
		},
		{
			name:     "Chat-Window-Decoded",
			target:   "/chatwindow/Alice%20Smith/",
			code:     http.StatusOK,
			contains: []string{`data-persona="Alice Smith"`},
		},
		{
			name:     "Auth",
			target:   "/auth",
			code:     http.StatusOK,
			contains: []string{`data-view="auth"`},
		},
		{
			name:     "OAuth-Callback",
			target:   "/oauth/callback/anything/here",
			code:     http.StatusBadRequest,
			contains: []string{`data-view="auth"`, `class="callback-error"`},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rt, _ := mount(t)

			// Act
			w := serve(rt, http.MethodGet, tc.target, htmlAccept)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			body := w.Body.String()
			require.Contains(t, body, `<main id="view">`)
			for _, s := range tc.contains {
				require.Contains(t, body, s)
			}
		})
	}
}

func TestMountJson(t *testing.T) {
	tcs := []struct {
		name   string
		target string
		view   view.ID
		params router.Params
	}{
		{name: "Menu", target: "/", view: view.Menu, params: router.Params{}},
		{name: "Chat-Window", target: "/ChatWindow/Alice", view: view.ChatWindow, params: router.Params{"personaName": "Alice"}},
		{name: "Auth", target: "/auth", view: view.Auth, params: router.Params{}},
		{name: "OAuth-Callback", target: "/oauth/callback/anything/here", view: view.Auth, params: router.Params{"*": "anything/here"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rt, _ := mount(t)

			// Act
			w := serve(rt, http.MethodGet, tc.target, jsonAccept)

			// Assert
			require.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))

			var actual view.State
			require.Nil(t, json.NewDecoder(w.Body).Decode(&actual))
			require.Equal(t, tc.view, actual.View)
			require.Equal(t, tc.target, actual.Path)
			require.Equal(t, tc.params, actual.Params)
		})
	}
}

func TestMountNotFound(t *testing.T) {
	t.Run("Html-Redirects-To-Menu", func(t *testing.T) {
		// Arrange
		rt, stub := mount(t)

		// Act
		w := serve(rt, http.MethodGet, "/nonexistent", htmlAccept)

		// Assert
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, view.MenuPath, w.Header().Get("Location"))

		s, err := stub.GetSession(httptest.NewRequest(http.MethodGet, "/", nil))
		require.Nil(t, err)
		flashes := s.Flashes(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, []session.Flash{{Class: session.FlashWarning, Msg: session.NotFoundMsg}}, flashes)
	})

	t.Run("Json-404", func(t *testing.T) {
		// Arrange
		rt, _ := mount(t)

		// Act
		w := serve(rt, http.MethodGet, "/nonexistent", jsonAccept)

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), `"path":"/nonexistent"`)
	})

	t.Run("No-Accept-404", func(t *testing.T) {
		// Arrange
		rt, _ := mount(t)

		// Act
		w := serve(rt, http.MethodPost, "/nonexistent", "")

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNavigate(t *testing.T) {
	navigate := func(path string) string {
		return view.APIPrefix + view.NavigatePath + "?path=" + url.QueryEscape(path)
	}

	tcs := []struct {
		name     string
		target   string
		code     int
		expected view.State
	}{
		{
			name:     "Menu",
			target:   navigate("/"),
			code:     http.StatusOK,
			expected: view.State{View: view.Menu, Path: "/", Params: router.Params{}},
		},
		{
			name:   "Chat-Window",
			target: navigate("/chatwindow/Alice%20Smith?draft=1"),
			code:   http.StatusOK,
			expected: view.State{
				View:   view.ChatWindow,
				Path:   "/chatwindow/Alice%20Smith",
				Params: router.Params{"personaName": "Alice Smith"},
				Data:   map[string]any{"personaName": "Alice Smith"},
			},
		},
		{
			name:     "OAuth-Callback",
			target:   navigate("/oauth/callback/google"),
			code:     http.StatusOK,
			expected: view.State{View: view.Auth, Path: "/oauth/callback/google", Params: router.Params{"*": "google"}},
		},
		{
			name:   "Chat-Window-Encoded-Slash",
			target: navigate("/ChatWindow/a%2Fb"),
			code:   http.StatusOK,
			expected: view.State{
				View:   view.ChatWindow,
				Path:   "/ChatWindow/a%2Fb",
				Params: router.Params{"personaName": "a/b"},
				Data:   map[string]any{"personaName": "a/b"},
			},
		},
		{name: "Unknown-Path", target: navigate("/nonexistent"), code: http.StatusNotFound},
		{name: "Not-A-View", target: navigate("/api/navigate"), code: http.StatusNotFound},
		{name: "No-Path", target: view.APIPrefix + view.NavigatePath, code: http.StatusBadRequest},
		{name: "Relative-Path", target: navigate("ChatWindow/Alice"), code: http.StatusBadRequest},
		{name: "Scheme-Relative", target: navigate("//evil.example/auth"), code: http.StatusBadRequest},
		{name: "Absolute-URL", target: navigate("https://evil.example/auth"), code: http.StatusBadRequest},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rt, _ := mount(t)

			// Act
			w := serve(rt, http.MethodGet, tc.target, "")

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.code != http.StatusOK {
				return
			}

			var actual view.State
			require.Nil(t, json.NewDecoder(w.Body).Decode(&actual))
			require.Equal(t, tc.expected, actual)
		})
	}

	t.Run("Method-Not-Allowed", func(t *testing.T) {
		// Arrange
		rt, _ := mount(t)

		// Act
		w := serve(rt, http.MethodPost, navigate("/"), "")

		// Assert
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("CORS-Preflight", func(t *testing.T) {
		// Arrange
		rt, _ := mount(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, navigate("/"), nil)
		r.Header.Set("Origin", "http://localhost:8080")
		r.Header.Set("Access-Control-Request-Method", http.MethodGet)

		// Act
		rt.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "http://localhost:8080", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestStatePathRoundTrip(t *testing.T) {
	for _, target := range []string{"/ChatWindow/a%2F..%2Fb", "/ChatWindow/a%2Fb", "/ChatWindow/Ada%20Lovelace"} {
		t.Run(target, func(t *testing.T) {
			// Arrange
			rt, _ := mount(t)

			// Act
			w := serve(rt, http.MethodGet, target, jsonAccept)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)

			var served view.State
			require.Nil(t, json.NewDecoder(w.Body).Decode(&served))
			require.Equal(t, view.ChatWindow, served.View)
			require.Equal(t, target, served.Path)

			// Act
			w = serve(rt, http.MethodGet, view.APIPrefix+view.NavigatePath+"?path="+url.QueryEscape(served.Path), "")

			// Assert
			require.Equal(t, http.StatusOK, w.Code)

			var resolved view.State
			require.Nil(t, json.NewDecoder(w.Body).Decode(&resolved))
			require.Equal(t, served, resolved)
		})
	}
}

func TestRenderFailure(t *testing.T) {
	// Arrange
	log := logger.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	d := resp.NewResponder(
		resp.WithLayoutTemplate(template.LayoutTmpl),
		resp.WithLogger(log),
		resp.WithParser(template.NewParser(template.WithFS(fstest.MapFS{}))),
	)

	rt := router.New(personachat.Testing, nil)
	view.Mount(rt, view.NewHandler(d, log))

	// Act
	w := serve(rt, http.MethodGet, view.AuthPath, htmlAccept)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, http.StatusText(http.StatusInternalServerError)+"\n", w.Body.String())
	require.NotContains(t, w.Body.String(), "tmpl/")
}

func TestAuthSignIn(t *testing.T) {
	t.Run("No-Provider", func(t *testing.T) {
		// Arrange
		rt, _ := mount(t)

		// Act
		w := serve(rt, http.MethodGet, view.AuthPath, htmlAccept)

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.NotContains(t, w.Body.String(), `class="sign-in"`)
	})

	t.Run("Round-Trip", func(t *testing.T) {
		// Arrange
		linker := new(fakeLinker)
		rt, _ := mount(t, view.WithAuth(linker))

		// Act
		w := serve(rt, http.MethodGet, view.AuthPath, htmlAccept)

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.NotEmpty(t, linker.state)
		require.Contains(t, w.Body.String(), "https://provider.test/signin?state="+linker.state)

		// Act
		w = serve(rt, http.MethodGet, "/oauth/callback/google?code=abc&state="+linker.state, jsonAccept)

		// Assert
		require.Equal(t, http.StatusOK, w.Code)

		var actual struct {
			View view.ID       `json:"view"`
			Data view.AuthData `json:"data"`
		}
		require.Nil(t, json.NewDecoder(w.Body).Decode(&actual))
		require.Equal(t, view.Auth, actual.View)
		require.Equal(t, &view.CallbackData{Provider: "google", Suffix: "google", HasCode: true}, actual.Data.Callback)

		// Act
		w = serve(rt, http.MethodGet, "/oauth/callback/google?code=abc&state="+linker.state, htmlAccept)

		// Assert
		require.Equal(t, http.StatusBadRequest, w.Code, "a state nonce is only good once")
	})

	t.Run("Provider-Error", func(t *testing.T) {
		// Arrange
		linker := new(fakeLinker)
		rt, _ := mount(t, view.WithAuth(linker))
		serve(rt, http.MethodGet, view.AuthPath, htmlAccept)

		// Act
		w := serve(rt, http.MethodGet, "/oauth/callback/google?error=access_denied&state="+linker.state, htmlAccept)

		// Assert
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.True(t, strings.Contains(w.Body.String(), "access_denied"))
	})
}

func TestMenuToolbox(t *testing.T) {
	// Arrange
	tb := personachat.NewToolbox(personachat.Testing, personachat.Tool{
		Title:   "Routing",
		Actions: []personachat.ToolAction{{Name: "Unknown path", URL: "/nonexistent"}},
	})
	rt, _ := mount(t, view.WithToolbox(tb))

	// Act
	w := serve(rt, http.MethodGet, view.MenuPath, htmlAccept)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `<a href="/nonexistent">Unknown path</a>`)

	// Act
	w = serve(rt, http.MethodGet, view.MenuPath, jsonAccept)

	// Assert
	require.Contains(t, w.Body.String(), `"tools":[{"actions":[{"name":"Unknown path","url":"/nonexistent"}],"title":"Routing"}]`)
}
