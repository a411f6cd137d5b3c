package session_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/session"
)

func TestNewStoreService(t *testing.T) {
	// Arrange
	notHex := "😅"
	cfg := session.Config{Env: personachat.Testing, SessionName: "test", AuthKey: notHex}

	// Act
	svc, err := session.NewStoreService(cfg)

	// Assert
	require.ErrorIs(t, err, personachat.ErrBadConfig)
	require.Zero(t, svc)

	// Arrange
	cfg.AuthKey = "ABCD"
	cfg.EncryptKey = notHex

	// Act
	svc, err = session.NewStoreService(cfg)

	// Assert
	require.ErrorIs(t, err, personachat.ErrBadConfig)
	require.Zero(t, svc)

	// Arrange
	cfg.EncryptKey = "ABCD"
	cfg.SessionName = ""

	// Act
	svc, err = session.NewStoreService(cfg)

	// Assert
	require.ErrorIs(t, err, personachat.ErrBadConfig)
	require.Zero(t, svc)

	// Arrange
	cfg.SessionName = "test"
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	svc, err = session.NewStoreService(cfg)

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
	require.NotPanics(t, func() { svc.GetSession(r) })
}

func TestNewKey(t *testing.T) {
	k1 := session.NewKey()
	k2 := session.NewKey()

	require.Len(t, k1, 64)
	require.NotEqual(t, k1, k2)
}

func newCookieService(t *testing.T) session.Service {
	t.Helper()

	svc, err := session.NewStoreService(session.Config{
		Env:         personachat.Development,
		SessionName: "test",
		AuthKey:     session.NewKey(),
		EncryptKey:  session.NewKey(),
	})
	require.Nil(t, err)

	return svc
}

// roundTrip copies the cookies set on w onto a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	return r
}

func TestSessionFlashes(t *testing.T) {
	// Arrange
	svc := newCookieService(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	s, err := svc.GetSession(r)
	require.Nil(t, err)

	expected := session.Flash{Class: session.FlashWarning, Msg: session.NotFoundMsg}

	// Act
	err = s.SetFlash(w, r, expected)

	// Assert
	require.Nil(t, err)

	// Arrange
	r = roundTrip(w)
	w = httptest.NewRecorder()
	s, err = svc.GetSession(r)
	require.Nil(t, err)

	// Act
	actual := s.Flashes(w, r)

	// Assert
	require.Equal(t, []session.Flash{expected}, actual)

	// Arrange
	r = roundTrip(w)
	s, err = svc.GetSession(r)
	require.Nil(t, err)

	// Act + Assert
	require.Empty(t, s.Flashes(httptest.NewRecorder(), r))
}

func TestSessionState(t *testing.T) {
	// Arrange
	svc := newCookieService(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/auth", nil)
	s, err := svc.GetSession(r)
	require.Nil(t, err)

	// Act
	_, err = s.PopState(w, r)

	// Assert
	require.True(t, errors.Is(err, session.ErrNoValue))

	// Act
	err = s.SetState(w, r, "nonce")

	// Assert
	require.Nil(t, err)

	// Arrange
	r = roundTrip(w)
	w = httptest.NewRecorder()
	s, err = svc.GetSession(r)
	require.Nil(t, err)

	// Act
	actual, err := s.PopState(w, r)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "nonce", actual)

	// Act
	_, err = s.PopState(w, r)

	// Assert
	require.ErrorIs(t, err, session.ErrNoValue)
}

func TestSessionSetGet(t *testing.T) {
	// Arrange
	s, err := session.NewStub().GetSession(nil)
	require.Nil(t, err)

	// Act
	err = s.Set(httptest.NewRecorder(), nil, "key", "val")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "val", s.Get("key"))
	require.Nil(t, s.Get("missing"))
}
