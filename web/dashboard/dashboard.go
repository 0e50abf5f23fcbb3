// Package dashboard serves the embedded single-page dashboard UI.
package dashboard

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// Handler returns a file server for the dashboard assets.
// The page authenticates against the API with a bearer token it keeps in
// local storage; the server side of the dashboard is just static files.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// go:embed guarantees the directory exists
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
