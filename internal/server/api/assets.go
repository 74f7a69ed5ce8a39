// Package api provides the HTTP API handlers for the reaction engine.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/abhinaya/internal/store"
)

// AssetHandler handles HTTP requests for asset catalogue resources.
type AssetHandler struct {
	store *store.Store
}

// NewAssetHandler creates a new AssetHandler with the given store.
func NewAssetHandler(s *store.Store) *AssetHandler {
	return &AssetHandler{store: s}
}

// ServeHTTP routes /api/assets and /api/assets/{id}.
func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/assets")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type createAssetRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

type assetResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	CreatedAt string `json:"created_at"`
}

type listAssetsResponse struct {
	Assets []assetResponse `json:"assets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(a *store.Asset) assetResponse {
	return assetResponse{
		ID:        a.ID,
		Category:  a.Category,
		Name:      a.Name,
		Path:      a.Path,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/assets.
func (h *AssetHandler) list(w http.ResponseWriter, _ *http.Request) {
	assets, err := h.store.Assets().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}

	resp := listAssetsResponse{Assets: make([]assetResponse, 0, len(assets))}
	for i := range assets {
		resp.Assets = append(resp.Assets, toResponse(&assets[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// create handles POST /api/assets.
func (h *AssetHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Category == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "category and name are required")
		return
	}

	a := &store.Asset{Category: req.Category, Name: req.Name, Path: req.Path}
	if err := h.store.Assets().Create(a); err != nil {
		writeError(w, http.StatusConflict, "failed to create asset")
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(a))
}

// get handles GET /api/assets/{id}.
func (h *AssetHandler) get(w http.ResponseWriter, _ *http.Request, id string) {
	a, err := h.store.Assets().Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load asset")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(a))
}

// delete handles DELETE /api/assets/{id}.
func (h *AssetHandler) delete(w http.ResponseWriter, _ *http.Request, id string) {
	if err := h.store.Assets().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
