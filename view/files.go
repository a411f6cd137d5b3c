package view

import (
	"embed"
	"io/fs"
)

//go:embed tmpl assets
var files embed.FS

// Templates is the file system holding the template of each view under tmpl/.
func Templates() fs.FS { return files }

// Assets is the file system holding the stylesheets the layout links to.
func Assets() fs.FS {
	sub, err := fs.Sub(files, "assets")
	if err != nil {
		panic(err)
	}

	return sub
}
