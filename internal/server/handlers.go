package server

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/seaward/blobtree/pkg/assets"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := s.provider.Search(r.Context(), q.Get("folder"), q.Get("keyword"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATOR", "url query parameter is required")
		return
	}
	rec, ok := s.provider.GetInfo(r.Context(), rawURL)
	if !ok {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "asset not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleExists(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATOR", "url query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"exists": s.provider.Exists(r.Context(), rawURL),
	})
}

func (s *Server) handleResolveURL(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	if input == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATOR", "input query parameter is required")
		return
	}
	abs, err := s.provider.ResolveAbsoluteURL(input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": abs})
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATOR", "url query parameter is required")
		return
	}
	rec, ok := s.provider.GetInfo(r.Context(), rawURL)
	if ok && rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	rc, err := s.provider.OpenRead(r.Context(), rawURL)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	defer rc.Close()
	if _, err := io.Copy(w, rc); err != nil {
		s.log.Warn("streaming read aborted", zap.String("url", rawURL), zap.Error(err))
	}
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATOR", "url query parameter is required")
		return
	}
	wc, err := s.provider.OpenWrite(r.Context(), rawURL)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if _, err := io.Copy(wc, r.Body); err != nil {
		_ = wc.Close()
		writeDomainError(w, r, err)
		return
	}
	if err := wc.Close(); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type removeRequest struct {
	URLs []string `json:"urls"`
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "expected JSON body with a urls array")
		return
	}
	if len(req.URLs) == 0 {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "urls must not be empty")
		return
	}
	if err := s.provider.Remove(r.Context(), req.URLs...); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var folder assets.Folder
	if err := json.NewDecoder(r.Body).Decode(&folder); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "expected JSON folder body")
		return
	}
	if err := s.provider.CreateFolder(r.Context(), folder); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type transferRequest struct {
	Src  string `json:"src"`
	Dst  string `json:"dst"`
	Mode string `json:"mode"` // move or copy
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "expected JSON transfer body")
		return
	}
	if req.Src == "" || req.Dst == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "src and dst are required")
		return
	}

	var err error
	switch req.Mode {
	case "move", "":
		err = s.provider.Move(r.Context(), req.Src, req.Dst)
	case "copy":
		err = s.provider.Copy(r.Context(), req.Src, req.Dst)
	default:
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "mode must be move or copy")
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
