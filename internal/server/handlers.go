package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/graph-module/graphdraw/pkg/buildinfo"
	gderrors "github.com/graph-module/graphdraw/pkg/errors"
	"github.com/graph-module/graphdraw/pkg/pipeline"
	"github.com/graph-module/graphdraw/pkg/scene"
	"github.com/graph-module/graphdraw/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Short()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sc, err := readScene(w, r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	s.render(w, r, sc)
}

func (s *Server) handleRenderScene(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	s.render(w, r, rec.Scene)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, sc *scene.Scene) {
	opts, err := renderOptions(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), sc, opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("ETag", strconv.Quote(res.SceneHash[:16]+"-"+res.Format))
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	sc, err := readScene(w, r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	rec := store.NewRecord(r.URL.Query().Get("name"), sc)
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("Location", "/v1/scenes/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, s.logger, gderrors.New(gderrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenes": recs})
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Request Decoding
// =============================================================================

// readScene parses the request body as a scene.
func readScene(w http.ResponseWriter, r *http.Request) (*scene.Scene, error) {
	format, err := sceneFormat(r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, gderrors.New(gderrors.ErrCodeInvalidInput, "request body is empty")
	}
	return scene.Parse(data, format)
}

// sceneFormat picks the scene encoding from ?input= or the Content-Type.
func sceneFormat(r *http.Request) (scene.Format, error) {
	if v := r.URL.Query().Get("input"); v != "" {
		return scene.ParseFormat(v)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return scene.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", gderrors.Wrap(gderrors.ErrCodeInvalidInput, err, "invalid Content-Type %q", ct)
	}
	switch {
	case strings.HasSuffix(mt, "json"):
		return scene.FormatJSON, nil
	case strings.HasSuffix(mt, "toml"):
		return scene.FormatTOML, nil
	case strings.HasSuffix(mt, "hcl"):
		return scene.FormatHCL, nil
	case mt == "text/plain", mt == "application/x-www-form-urlencoded":
		return scene.FormatJSON, nil
	default:
		return "", gderrors.New(gderrors.ErrCodeInvalidFormat, "unsupported Content-Type %q", mt)
	}
}

// renderOptions reads format, dangling, detailed and refresh query
// parameters.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Dangling: q.Get("dangling"),
	}
	for name, dst := range map[string]*bool{"detailed": &opts.Detailed, "refresh": &opts.Refresh} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, gderrors.New(gderrors.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = b
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
