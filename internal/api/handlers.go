package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/virtualboard/orf/internal/route"
)

type extractRequest struct {
	Text string `json:"text"`
}

type formatRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode,omitempty"`
	Lo   *int   `json:"lo,omitempty"`
	Hi   *int   `json:"hi,omitempty"`
}

type formatResponse struct {
	ID        string      `json:"id"`
	Mode      route.Mode  `json:"mode"`
	Range     route.Range `json:"range"`
	Output    string      `json:"output"`
	NoMatches bool        `json:"no_matches"`
}

type extractResponse struct {
	ID string `json:"id"`
	route.Document
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	mode := s.defaults.Mode
	if req.Mode != "" {
		parsed, err := route.ParseMode(req.Mode)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = parsed
	}
	rng := s.defaults.Range
	if req.Lo != nil {
		rng.Lo = *req.Lo
	}
	if req.Hi != nil {
		rng.Hi = *req.Hi
	}

	res := route.NewExtractor(s.log).Extract(req.Text)
	out := route.Render(res, rng, mode)
	writeJSON(w, http.StatusOK, formatResponse{
		ID:        RequestIDFrom(r.Context()),
		Mode:      mode,
		Range:     rng,
		Output:    out,
		NoMatches: strings.TrimSpace(out) == "",
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	res := route.NewExtractor(s.log).Extract(req.Text)
	writeJSON(w, http.StatusOK, extractResponse{
		ID:       RequestIDFrom(r.Context()),
		Document: res.Document(),
	})
}

// decode reads a size-limited JSON body, writing the error response itself
// when it fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.defaults.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
