package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/filter"
	"github.com/s0up4200/cineparadis/render"
)

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"presets": s.filters.Presets()})
}

// handleDetail serves GET /api/{kind}/{id}?tab=&filter=&preset=
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	key, err := detail.NewKey(chi.URLParam(r, "kind"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_key", err.Error())
		return
	}

	tab := 0
	if raw := r.URL.Query().Get("tab"); raw != "" {
		tab, err = strconv.Atoi(raw)
		if err != nil || !detail.Tab(tab).Valid() {
			writeError(w, http.StatusBadRequest, "invalid_tab", detail.ErrInvalidTab.Error())
			return
		}
	}

	f, err := s.filters.Resolve(r.URL.Query().Get("filter"), r.URL.Query().Get("preset"))
	if err != nil {
		var ce *filter.CompilationError
		var upe *filter.UnknownPresetError
		switch {
		case errors.As(err, &ce):
			writeError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		case errors.As(err, &upe):
			writeError(w, http.StatusBadRequest, "unknown_preset", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}

	opts := []detail.Option{
		detail.WithSite(s.site),
		detail.WithImages(s.images),
	}
	if s.fetchTimeout > 0 {
		opts = append(opts, detail.WithTimeout(s.fetchTimeout))
	}
	if s.recorder != nil {
		opts = append(opts, detail.WithRecorder(s.recorder))
	}

	c := detail.NewCoordinator(s.fetcher, *logger, opts...)
	defer c.Close()

	c.Activate(r.Context(), key)
	if err := c.Wait(r.Context()); err != nil {
		// Client went away; nobody is left to answer
		logger.Debug().Err(err).Str("key", key.Slug()).Msg("Request cancelled before fetch resolved")
		return
	}
	if _, err := c.Select(tab); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_tab", err.Error())
		return
	}

	v := c.Snapshot()
	var recs detail.RecommendationList
	if v.Loaded() && v.Tab == detail.TabRecommendations {
		recs = filter.Apply(f, v.Views.Recommendations)
	}

	writeJSON(w, statusFor(v), render.BuildPage(v, recs, s.images))
}

func statusFor(v detail.View) int {
	if v.State != detail.StateFailed {
		return http.StatusOK
	}
	switch v.ErrorKind {
	case detail.ErrorNotFound:
		return http.StatusNotFound
	case detail.ErrorNetwork, detail.ErrorMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
