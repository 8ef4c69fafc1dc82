package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20 // 5 MB, as the original upload limit

// UploadHandler stores card images and returns an opaque reference string.
// The poll core never sees the file itself, only the returned URL.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

type uploadError struct {
	Error string `json:"error"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, uploadError{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	// Sniff the real content type instead of trusting the client header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, uploadError{Error: "File too large"})
		return
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		writeJSON(w, http.StatusBadRequest, uploadError{Error: "Only image files are allowed"})
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, uploadError{Error: "failed to store file"})
		return
	}

	name := fmt.Sprintf("image-%s%s", uuid.New(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, uploadError{Error: "failed to store file"})
		return
	}
	defer dst.Close()

	if _, err := dst.Write(head[:n]); err != nil {
		writeJSON(w, http.StatusInternalServerError, uploadError{Error: "failed to store file"})
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		writeJSON(w, http.StatusBadRequest, uploadError{Error: "File too large"})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{ImageURL: "/uploads/" + name})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
