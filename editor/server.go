// Package editor serves texture atlases and model files to the asset
// editor UI over HTTP.
package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"github.com/plus3/binsort/atlas"
)

const maxBodyBytes = 8 << 20

// Server holds the editor's stores and event hub.
type Server struct {
	cfg      Config
	textures *Store
	models   *Store
	hub      *Hub
	logger   *slog.Logger
}

// NewServer creates a server over the configured texture and model directories.
func NewServer(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		textures: NewStore(cfg.TexturesDir),
		models:   NewStore(cfg.ModelsDir),
		hub:      NewHub(logger, cfg.AllowedOrigins),
		logger:   logger,
	}
}

// Hub returns the server's event hub.
func (s *Server) Hub() *Hub { return s.hub }

// Close disconnects event subscribers.
func (s *Server) Close() { s.hub.Close() }

// Handler returns the full route table. Responses are gzip compressed except
// on the websocket route, which needs the raw connection.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/textures", s.listTextures)
	api.HandleFunc("GET /api/textures/{id}", s.getTexture)
	api.HandleFunc("PUT /api/textures/{id}", s.putTexture)
	api.HandleFunc("GET /api/models", s.listModels)
	api.HandleFunc("GET /api/models/{modelName}", s.getModel)
	api.Handle("GET /textures/", http.StripPrefix("/textures/", http.FileServer(http.Dir(s.cfg.TexturesDir))))

	root := http.NewServeMux()
	root.Handle("GET /api/events", s.hub)
	root.Handle("/", gzhttp.GzipHandler(api))

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(root)
}

type textureFile struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Path  string          `json:"path"`
	Atlas json.RawMessage `json:"atlas"`
}

func (s *Server) listTextures(w http.ResponseWriter, r *http.Request) {
	entries, err := s.textures.List()
	if err != nil {
		s.logger.Error("list textures", "err", err)
		writeError(w, http.StatusInternalServerError, "Error fetching texture list")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getTexture(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	raw, err := s.textures.Read(id)
	switch {
	case errors.Is(err, ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid texture id")
		return
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Texture file not found")
		return
	case err != nil:
		s.logger.Error("read texture", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Error reading texture file")
		return
	}
	if !json.Valid(raw) {
		s.logger.Error("texture file is not json", "id", id)
		writeError(w, http.StatusInternalServerError, "Error reading texture file")
		return
	}

	writeJSON(w, http.StatusOK, textureFile{
		ID:    id,
		Name:  id,
		Path:  "/textures/" + id + ".json",
		Atlas: raw,
	})
}

func (s *Server) putTexture(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := checkID(id); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid texture id")
		return
	}

	var body struct {
		Atlas json.RawMessage `json:"atlas"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.Atlas) == 0 || bytes.Equal(body.Atlas, []byte("null")) {
		writeError(w, http.StatusBadRequest, "Missing atlas")
		return
	}
	if err := atlas.Validate(body.Atlas); err != nil {
		s.logger.Info("rejected texture", "id", id, "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, body.Atlas, "", "  "); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid atlas")
		return
	}
	if err := s.textures.Write(id, indented.Bytes()); err != nil {
		s.logger.Error("save texture", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to save texture file")
		return
	}

	s.logger.Info("texture saved", "id", id, "bytes", indented.Len())
	s.hub.Broadcast(Event{Type: "texture_saved", ID: id})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	entries, err := s.models.List()
	if err != nil {
		s.logger.Error("list models", "err", err)
		writeError(w, http.StatusInternalServerError, "Error fetching model list")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("modelName")
	raw, err := s.models.Read(name)
	switch {
	case errors.Is(err, ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid model name")
		return
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Model file not found")
		return
	case err != nil:
		s.logger.Error("read model", "model", name, "err", err)
		writeError(w, http.StatusInternalServerError, "Error reading model file")
		return
	}
	if !json.Valid(raw) {
		s.logger.Error("model file is not json", "model", name)
		writeError(w, http.StatusInternalServerError, "Error reading model file")
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(raw))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
