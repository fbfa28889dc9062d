package api

import (
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
)

// staticHandler serves files from a directory. Dotfiles (such as .env) and
// directory listings are never served.
type staticHandler struct {
	dir   string
	files http.Handler
}

func newStaticHandler(dir string) *staticHandler {
	return &staticHandler{
		dir:   dir,
		files: http.FileServer(filesOnly{http.Dir(dir)}),
	}
}

func (h *staticHandler) index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}

type filesOnly struct {
	root http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return nil, fs.ErrNotExist
		}
	}

	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
