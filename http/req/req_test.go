package req_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/req"
)

type query struct {
	Path string `schema:"path" validate:"required,startswith=/"`
	Page int    `schema:"page"`
}

func TestParserParseQueryParams(t *testing.T) {
	tcs := []struct {
		name     string
		params   url.Values
		expected req.ValidationErrors
	}{
		{
			name:     "Missing",
			params:   url.Values{},
			expected: req.ValidationErrors{{Field: "path", Got: "", Rule: "required; string"}},
		},
		{
			name:     "Not-A-Path",
			params:   url.Values{"path": {"ChatWindow"}},
			expected: req.ValidationErrors{{Field: "path", Got: "ChatWindow", Rule: "startswith=/; string"}},
		},
		{
			name:     "Not-An-Int",
			params:   url.Values{"path": {"/"}, "page": {"one"}},
			expected: req.ValidationErrors{{Field: "page", Got: "bad value at index 0", Rule: "must be int"}},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual req.ValidationErrors
			var q query

			// Act
			err := req.NewParser().ParseQueryParams(tc.params, &q)

			// Assert
			require.ErrorIs(t, err, personachat.ErrNotValid)
			require.ErrorAs(t, err, &actual)
			require.Equal(t, tc.expected, actual)
		})
	}

	t.Run("Valid", func(t *testing.T) {
		// Arrange
		var q query
		params := url.Values{"path": {"/ChatWindow/Alice"}, "page": {"2"}, "unknown": {"ignored"}}

		// Act
		err := req.NewParser().ParseQueryParams(params, &q)

		// Assert
		require.Nil(t, err)
		require.Equal(t, query{Path: "/ChatWindow/Alice", Page: 2}, q)
	})

	t.Run("Not-A-Pointer", func(t *testing.T) {
		// Act
		err := req.NewParser().ParseQueryParams(url.Values{}, query{})

		// Assert
		require.ErrorIs(t, err, personachat.ErrBadFormat)
	})
}

func TestValidationErrorsError(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act + Assert
	require.Zero(t, v.Error())

	// Arrange
	v = append(v,
		req.ValidationError{Field: "first", Rule: "required; string"},
		req.ValidationError{Field: "second", Got: "big boo boo", Rule: "len=1; string"},
	)

	// Act + Assert
	require.Equal(t, "field=\"first\" rule=\"required; string\" got=\"<nil>\"\nfield=\"second\" rule=\"len=1; string\" got=\"big boo boo\"", v.Error())
	b, err := v.MarshalJSON()
	require.Nil(t, err)
	require.JSONEq(t, `{"validationErrors":[{"field":"first","got":null,"rule":"required; string"},{"field":"second","got":"big boo boo","rule":"len=1; string"}]}`, string(b))
}
