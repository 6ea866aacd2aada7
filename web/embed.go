package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

// StaticFS provides access to the embedded static asset files, rooted
// at the static directory so paths match request paths directly.
var StaticFS fs.FS

func init() {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	StaticFS = sub
}
