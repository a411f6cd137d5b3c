package personachat_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/personachat"
)

func TestEnvironmentValid(t *testing.T) {
	for _, e := range []personachat.Environment{
		personachat.Demo,
		personachat.Development,
		personachat.Production,
		personachat.Review,
		personachat.Staging,
		personachat.Testing,
	} {
		require.Nil(t, e.Valid())
	}

	require.ErrorIs(t, personachat.Environment("LOCAL").Valid(), personachat.ErrNotValid)
}

func TestEnvironmentCanUseServiceStub(t *testing.T) {
	require.True(t, personachat.Development.CanUseServiceStub())
	require.True(t, personachat.Testing.CanUseServiceStub())
	require.False(t, personachat.Production.CanUseServiceStub())
	require.False(t, personachat.Staging.CanUseServiceStub())
}

func TestEnvVarOrEnv(t *testing.T) {
	key := "PERSONACHAT_TEST_ENV"

	t.Setenv(key, "")
	require.Equal(t, personachat.Development, personachat.EnvVarOrEnv(key, personachat.Development))

	t.Setenv(key, "staging")
	require.Equal(t, personachat.Staging, personachat.EnvVarOrEnv(key, personachat.Development))

	t.Setenv(key, "LOCAL")
	require.Equal(t, personachat.Development, personachat.EnvVarOrEnv(key, personachat.Development))
}

func TestEnvVarOrPrimitives(t *testing.T) {
	key := "PERSONACHAT_TEST_VAL"

	t.Setenv(key, "TRUE")
	require.True(t, personachat.EnvVarOrBool(key, false))

	t.Setenv(key, "nope")
	require.True(t, personachat.EnvVarOrBool(key, true))

	t.Setenv(key, "3s")
	require.Equal(t, 3*time.Second, personachat.EnvVarOrDuration(key, time.Second))

	t.Setenv(key, "12")
	require.Equal(t, 12, personachat.EnvVarOrInt(key, 1))
	require.Equal(t, float64(12), personachat.EnvVarOrFloat(key, 1))

	t.Setenv(key, "twelve")
	require.Equal(t, 1, personachat.EnvVarOrInt(key, 1))
	require.Equal(t, 0.5, personachat.EnvVarOrFloat(key, 0.5))

	t.Setenv(key, "")
	require.Equal(t, "def", personachat.EnvVarOrString(key, "def"))

	t.Setenv(key, "debug")
	require.Equal(t, slog.LevelDebug, personachat.EnvVarOrLogLevel(key, slog.LevelInfo))

	t.Setenv(key, "loud")
	require.Equal(t, slog.LevelInfo, personachat.EnvVarOrLogLevel(key, slog.LevelInfo))
}

func TestEnvVarOrURL(t *testing.T) {
	key := "PERSONACHAT_TEST_URL"

	t.Setenv(key, "")
	actual := personachat.EnvVarOrURL(key, "http://localhost:3000/some/path")
	require.Equal(t, "http://localhost:3000/", actual.String())

	t.Setenv(key, "https://chat.example.com")
	actual = personachat.EnvVarOrURL(key, "http://localhost:3000")
	require.Equal(t, "https://chat.example.com", actual.String())

	t.Setenv(key, "not a url")
	actual = personachat.EnvVarOrURL(key, "http://localhost:3000")
	require.Equal(t, "http://localhost:3000/", actual.String())

	require.Nil(t, personachat.EnvVarOrURL(key, "::"))
}
