package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/export"
	"bench-dashboard/internal/plot"
	"bench-dashboard/internal/plot/mappings"
	"bench-dashboard/internal/view"

	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type optionsResponse struct {
	Scenarios        []option            `json:"scenarios"`
	Languages        []string            `json:"languages"`
	Categories       map[string][]string `json:"categories"`
	Scopes           []string            `json:"scopes"`
	Formats          []string            `json:"formats"`
	DefaultScenario  string              `json:"default_scenario"`
	DefaultLanguages []string            `json:"default_languages"`
	PageSize         int                 `json:"page_size"`
}

type levelsResponse struct {
	Scenario benchmark.Scenario `json:"scenario"`
	XLabel   string             `json:"x_label"`
	Levels   []float64          `json:"levels"`
}

type entitiesResponse struct {
	view.EntityTable
	Notice string `json:"notice,omitempty"`
}

type toggleRequest struct {
	ID string `json:"id"`
}

type toggleResponse struct {
	ID       string `json:"id"`
	Selected bool   `json:"selected"`
}

type selectionResponse struct {
	Selected []string `json:"selected"`
}

type exportRequest struct {
	Name    string     `json:"name"`
	State   view.State `json:"state"`
	Formats []string   `json:"formats,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Warn("Failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) options(w http.ResponseWriter, r *http.Request) {
	resp := optionsResponse{
		Languages:        s.store.Languages(),
		Categories:       make(map[string][]string),
		Scopes:           []string{string(view.ScopeCPU), string(view.ScopeDRAM)},
		DefaultScenario:  s.cfg.Dashboard.DefaultScenario,
		DefaultLanguages: s.cfg.Dashboard.DefaultLanguages,
		PageSize:         s.cfg.Dashboard.PageSize,
	}
	for _, sc := range benchmark.LoadScenarios {
		resp.Scenarios = append(resp.Scenarios, option{Value: string(sc), Label: mappings.ScenarioLabel(sc)})
	}
	for _, name := range s.cfg.Dashboard.Categories {
		resp.Categories[name] = s.store.CategoryValues(benchmark.Category(name))
	}
	for _, f := range plot.Formats {
		resp.Formats = append(resp.Formats, string(f))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) levels(w http.ResponseWriter, r *http.Request) {
	scenario := benchmark.Scenario(r.URL.Query().Get("scenario"))
	if scenario == "" {
		scenario = benchmark.Scenario(s.cfg.Dashboard.DefaultScenario)
	}
	levels := s.store.Levels(scenario)
	if levels == nil {
		levels = []float64{}
	}
	s.writeJSON(w, http.StatusOK, levelsResponse{
		Scenario: scenario,
		XLabel:   mappings.XLabel(scenario),
		Levels:   levels,
	})
}

func (s *Server) entities(w http.ResponseWriter, r *http.Request) {
	var state view.State
	if err := decode(w, r, &state); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	table, err := view.Entities(s.store, state)
	if err != nil {
		s.logger.WithField("scenario", state.Scenario).WithError(err).Debug("Entity filter rejected")
		s.writeJSON(w, http.StatusOK, entitiesResponse{
			Notice: err.Error(),
		})
		return
	}

	ids := make([]string, len(table.Entities))
	for i, e := range table.Entities {
		ids[i] = e.ID
	}
	s.selection.Track(ids...)
	s.writeJSON(w, http.StatusOK, entitiesResponse{EntityTable: table})
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing id"))
		return
	}
	selected := s.selection.Toggle(req.ID)
	s.logger.WithFields(logrus.Fields{
		"id":       req.ID,
		"selected": selected,
	}).Debug("Selection toggled")
	s.writeJSON(w, http.StatusOK, toggleResponse{ID: req.ID, Selected: selected})
}

func (s *Server) getSelection(w http.ResponseWriter, r *http.Request) {
	selected := s.selection.Selected()
	if selected == nil {
		selected = []string{}
	}
	s.writeJSON(w, http.StatusOK, selectionResponse{Selected: selected})
}

func (s *Server) clearSelection(w http.ResponseWriter, r *http.Request) {
	s.selection.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	var state view.State
	if err := decode(w, r, &state); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view.Render(s.store, s.withServerSide(state)))
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := export.ValidateName(req.Name); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	names := req.Formats
	if len(names) == 0 {
		names = s.cfg.Export.Formats
	}
	formats, err := plot.ParseFormats(names)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	model := view.Render(s.store, s.withServerSide(req.State))
	if model.Empty {
		msg := model.Notice
		if msg == "" {
			msg = "nothing selected to export"
		}
		s.writeError(w, http.StatusUnprocessableEntity, errors.New(msg))
		return
	}

	artifacts, err := s.plots.RenderAll(r.Context(), model.Charts, formats)
	if err != nil {
		s.logger.WithField("name", req.Name).WithError(err).Error("Failed to render export charts")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	res, err := s.exporter.Export(r.Context(), req.Name, artifacts)
	switch {
	case errors.Is(err, export.ErrInvalidName):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, export.ErrNameCollision):
		s.writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		s.logger.WithField("name", req.Name).WithError(err).Error("Export failed")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Name+`.zip"`)
	w.Header().Set("X-Export-Id", res.ID)
	if res.UploadURL != "" {
		w.Header().Set("X-Export-Location", res.UploadURL)
	}
	w.Header().Set("X-Export-Files", strconv.Itoa(len(res.Files)))
	if err := s.exporter.Deliver(res, w); err != nil {
		s.logger.WithField("export_id", res.ID).WithError(err).Error("Failed to deliver export")
	}
}

// index renders the charts of the default state. Every listed framework is
// tracked first so an untouched selection shows all of them.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	state := s.defaultState()
	if table, err := view.Entities(s.store, state); err == nil {
		for _, e := range table.Entities {
			s.selection.Track(e.ID)
		}
	}

	model := view.Render(s.store, s.withServerSide(state))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.plots.WritePage(w, s.cfg.Dashboard.Name, model.Charts); err != nil {
		s.logger.WithError(err).Error("Failed to render dashboard page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
