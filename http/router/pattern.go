package router

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// wildcardParam names the Params entry holding the path matched by a trailing "*".
const wildcardParam = "*"

var paramName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// A segment is either a literal path segment or, when param is set, a named parameter.
type segment struct {
	lit   string
	param string
}

// A pattern is the compiled form of a Route.Path.
//
// Patterns follow these rules:
//   - "/" separates segments
//   - a literal segment matches regardless of case
//   - ":name" matches exactly one non-empty segment and captures it under name
//   - a final "*" matches the rest of the path, captured under "*"
//   - a single trailing slash in a request path is ignored
type pattern struct {
	raw      string
	segs     []segment
	wildcard bool
}

// parsePattern compiles raw into a pattern, returning ErrInvalidPattern if it breaks the rules.
func parsePattern(raw string) (pattern, error) {
	p := pattern{raw: raw}

	switch {
	case raw == "":
		return p, fmt.Errorf("%w: empty", ErrInvalidPattern)
	case raw[0] != '/':
		return p, fmt.Errorf("%w: %q does not start with /", ErrInvalidPattern, raw)
	case strings.ContainsAny(raw, "{}?#"):
		return p, fmt.Errorf("%w: %q contains reserved characters", ErrInvalidPattern, raw)
	case raw == "/":
		return p, nil
	}

	parts := strings.Split(raw[1:], "/")
	seen := make(map[string]bool)
	for i, part := range parts {
		switch {
		case part == "":
			return p, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPattern, raw)

		case part == wildcardParam:
			if i != len(parts)-1 {
				return p, fmt.Errorf("%w: %q has * before its last segment", ErrInvalidPattern, raw)
			}
			p.wildcard = true

		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if !paramName.MatchString(name) {
				return p, fmt.Errorf("%w: %q has a bad parameter name %q", ErrInvalidPattern, raw, name)
			}
			if seen[name] {
				return p, fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, raw, name)
			}
			seen[name] = true
			p.segs = append(p.segs, segment{param: name})

		case strings.ContainsAny(part, ":*"):
			return p, fmt.Errorf("%w: %q mixes literal and special characters in %q", ErrInvalidPattern, raw, part)

		default:
			lit, err := url.PathUnescape(part)
			if err != nil {
				return p, fmt.Errorf("%w: %q: %s", ErrInvalidPattern, raw, err)
			}
			p.segs = append(p.segs, segment{lit: lit})
		}
	}

	return p, nil
}

// match reports whether the escaped URL path matches p,
// returning the decoded parameters captured along the way.
func (p pattern) match(escaped string) (Params, bool) {
	if !strings.HasPrefix(escaped, "/") {
		return nil, false
	}

	if len(escaped) > 1 {
		escaped = strings.TrimSuffix(escaped, "/")
	}

	var parts []string
	if rest := escaped[1:]; rest != "" {
		parts = strings.Split(rest, "/")
	}

	if len(parts) < len(p.segs) || (!p.wildcard && len(parts) != len(p.segs)) {
		return nil, false
	}

	params := make(Params)
	for i, seg := range p.segs {
		val, err := url.PathUnescape(parts[i])
		if err != nil || val == "" {
			return nil, false
		}

		if seg.param != "" {
			params[seg.param] = val
			continue
		}

		if !strings.EqualFold(seg.lit, val) {
			return nil, false
		}
	}

	if p.wildcard {
		rest, err := url.PathUnescape(strings.Join(parts[len(p.segs):], "/"))
		if err != nil {
			return nil, false
		}
		params[wildcardParam] = rest
	}

	return params, true
}

// covers reports whether every path q matches is also matched by p,
// meaning q can never be selected once p is registered ahead of it.
func (p pattern) covers(q pattern) bool {
	switch {
	case !p.wildcard && (q.wildcard || len(q.segs) != len(p.segs)):
		return false
	case p.wildcard && len(q.segs) < len(p.segs):
		return false
	}

	for i, seg := range p.segs {
		if seg.param != "" {
			continue
		}

		other := q.segs[i]
		if other.param != "" || !strings.EqualFold(seg.lit, other.lit) {
			return false
		}
	}

	return true
}

func (p pattern) String() string { return p.raw }
