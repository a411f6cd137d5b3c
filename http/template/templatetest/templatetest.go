// Package templatetest builds template parsers over in-memory files,
// so rendering can be tested without a testdata/ directory.
package templatetest

import (
	"fmt"
	"testing/fstest"

	"github.com/xy-planning-network/personachat/http/template"
)

// A File is a template path and its contents.
type File struct {
	Name string
	Data []byte
}

// NewFile constructs a File at name holding data.
func NewFile(name string, data []byte) File { return File{Name: name, Data: data} }

// NewView constructs a File at name defining the "view" template
// the base layout renders, with body as its contents.
func NewView(name, body string) File {
	return File{Name: name, Data: []byte(fmt.Sprintf(`{{ define "view" }}%s{{ end }}`, body))}
}

// NewFS lays out files in an in-memory filesystem.
func NewFS(files ...File) fstest.MapFS {
	mfs := make(fstest.MapFS, len(files))
	for _, f := range files {
		mfs[f.Name] = &fstest.MapFile{Data: f.Data}
	}

	return mfs
}

// NewParser constructs a *template.Parse looking up files before the embedded templates.
func NewParser(files ...File) *template.Parse {
	return template.NewParser(template.WithFS(NewFS(files...)))
}
