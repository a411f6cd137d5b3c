package template

import "io/fs"

// The ParserOptFn applies functional options to a *Parse when constructing it.
type ParserOptFn func(*Parse)

// WithFn encloses a named function so it can be added to a *Parse's function map.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parse) {
		p.AddFn(name, fn)
	}
}

// WithFS adds a filesystem templates are looked up in before the embedded ones.
// Filesystems added earlier take precedence,
// so a directory of templates being edited can shadow the copies compiled in.
func WithFS(filesys fs.FS) ParserOptFn {
	return func(p *Parse) {
		if filesys != nil {
			p.layers = append(p.layers, filesys)
		}
	}
}
