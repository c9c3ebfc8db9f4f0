package media

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"inkwell/internal/common"
	"inkwell/internal/config"
	"inkwell/internal/dbmongo"
)

// maxUploadBytes bounds a single image upload.
const maxUploadBytes = 10 << 20 // 10 MB

// Server handles image upload and delivery. Uploads return a public
// URL; document trees store only that URL.
type Server struct {
	storage *dbmongo.ImageStorage
	baseURL string
}

func NewServer(mongoClient *dbmongo.MongoClient, cfg *config.Config) *Server {
	return &Server{
		storage: dbmongo.NewImageStorage(mongoClient),
		baseURL: strings.TrimRight(cfg.Server.PublicBaseURL, "/"),
	}
}

// PublicURL builds the externally reachable URL for a stored file.
func (s *Server) PublicURL(fileID string) string {
	return fmt.Sprintf("%s/media/%s", s.baseURL, fileID)
}

// Upload accepts a multipart image and returns its public URL.
// Unlike notification fan-out, a storage failure here is surfaced:
// the caller is blocked without a URL.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFrom(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		common.WriteError(w, http.StatusBadRequest, "only image uploads are accepted")
		return
	}

	stored, err := s.storage.UploadFile(r.Context(), header.Filename, mimeType, principal.UserID, file)
	if err != nil {
		log.Printf("image upload failed for user %d: %v", principal.UserID, err)
		common.WriteServiceError(w, &common.UpstreamError{Upstream: "upload", Err: err})
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       stored.ID,
		"url":      s.PublicURL(stored.ID),
		"filename": stored.Filename,
		"size":     stored.Size,
	})
}

// ServeFile streams a stored image. GET /media/{fileID}.
func (s *Server) ServeFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fileID := vars["fileID"]

	fileReader, imageFile, err := s.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	contentType := imageFile.MimeType
	if contentType == "" {
		contentType = contentTypeFromName(imageFile.Filename)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", imageFile.Size))

	if _, err := io.Copy(w, fileReader); err != nil {
		log.Printf("Error streaming file %s: %v", fileID, err)
	}
}

func contentTypeFromName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
