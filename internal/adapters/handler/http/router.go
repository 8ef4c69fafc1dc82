package http

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler wires the full HTTP surface: the websocket endpoint, the image
// upload side-channel and the static voting pages.
func NewHandler(socket http.Handler, upload *UploadHandler, publicDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	page := func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(publicDir, "voting.html"))
	}
	r.Get("/", page)
	r.Get("/admin", page)

	r.Handle("/socket", socket)
	r.Post("/upload-image", upload.Upload)

	r.Handle("/*", http.FileServer(http.Dir(publicDir)))

	return r
}
