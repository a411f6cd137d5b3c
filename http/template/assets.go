package template

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/xy-planning-network/personachat"
)

// AssetURI encloses the environment and filesystem so when called executing a template,
// emits a URI for a static asset served under prefix.
//
// Outside of development, a content-hashed copy of the asset,
// e.g. nav-3f9a1c.js for nav.js, is preferred when filesys holds one.
func AssetURI(env personachat.Environment, filesys fs.FS, prefix string) (string, func(string) string) {
	prefix = "/" + strings.Trim(prefix, "/")

	return "assetURI", func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		fallback := path.Join(prefix, assetPath)

		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment() || filesys == nil:
			return fallback

		default:
			ext := path.Ext(assetPath)
			glob := fmt.Sprintf("%s-*%s", strings.TrimSuffix(assetPath, ext), ext)

			matches, err := fs.Glob(filesys, glob)
			if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
				return fallback
			}

			return path.Join(prefix, matches[0])
		}
	}
}
