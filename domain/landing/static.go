package landing

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded static tree rooted at its top directory
// (styles.css, js/, guide.pdf).
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is compiled in
		panic(err)
	}
	return sub
}
