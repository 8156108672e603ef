// internal/httpserver/routes_catalog.go
//
// Catalog management routes:
//   - GET    /vehicles               → list
//   - POST   /vehicles               → add (validated)
//   - PUT    /vehicles/{index}       → replace (validated)
//   - DELETE /vehicles/{index}       → remove; ends or re-points the round
//   - POST   /drafts                 → open an editor draft ({"fromIndex": n} to edit)
//   - GET    /drafts/{id}            → read a draft
//   - PATCH  /drafts/{id}            → edit text fields
//   - PUT    /drafts/{id}/{field}    → upload photo or mask (raw body)
//   - POST   /drafts/{id}/commit     → validate and save
//   - DELETE /drafts/{id}            → discard

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/taillight/internal/catalog"
)

func (s *Server) mountCatalog() {
	s.r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.handleListVehicles)
		r.Post("/", s.handleAddVehicle)
		r.Put("/{index}", s.handleUpdateVehicle)
		r.Delete("/{index}", s.handleRemoveVehicle)
	})
	s.r.Route("/drafts", func(r chi.Router) {
		r.Post("/", s.handleOpenDraft)
		r.Get("/{id}", s.handleGetDraft)
		r.Patch("/{id}", s.handleEditDraft)
		r.Put("/{id}/{field}", s.handleUploadImage)
		r.Post("/{id}/commit", s.handleCommitDraft)
		r.Delete("/{id}", s.handleDiscardDraft)
	})
}

// vehicleRes pairs a vehicle with its catalog position.
type vehicleRes struct {
	Index   int             `json:"index"`
	Vehicle catalog.Vehicle `json:"vehicle"`
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vs := s.ch.Vehicles()
	if vs == nil {
		vs = []catalog.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vs)
}

func (s *Server) handleAddVehicle(w http.ResponseWriter, r *http.Request) {
	var v catalog.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	saved, idx, err := s.ch.AddVehicle(r.Context(), v)
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicleRes{Index: idx, Vehicle: saved})
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	idx, ok := indexParam(w, r)
	if !ok {
		return
	}
	var v catalog.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	saved, err := s.ch.UpdateVehicle(r.Context(), idx, v)
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleRes{Index: idx, Vehicle: saved})
}

func (s *Server) handleRemoveVehicle(w http.ResponseWriter, r *http.Request) {
	idx, ok := indexParam(w, r)
	if !ok {
		return
	}
	removed, err := s.ch.RemoveVehicle(r.Context(), idx)
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed, "state": s.ch.State()})
}

type openDraftReq struct {
	FromIndex *int `json:"fromIndex"`
}

func (s *Server) handleOpenDraft(w http.ResponseWriter, r *http.Request) {
	var req openDraftReq
	// An empty body opens a blank draft.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	from := -1
	if req.FromIndex != nil {
		from = *req.FromIndex
		if from < 0 {
			writeError(w, http.StatusBadRequest, "bad_index", nil)
			return
		}
	}
	d, err := s.ch.OpenDraft(from)
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.ch.Draft(chi.URLParam(r, "id"))
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleEditDraft(w http.ResponseWriter, r *http.Request) {
	var e catalog.DraftEdit
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	d, err := s.ch.EditDraft(chi.URLParam(r, "id"), e)
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleUploadImage reads the body into the draft. The body is only valid
// while the handler runs, so it is read here rather than in the background.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	field, err := catalog.ParseImageField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_field", nil)
		return
	}
	d, err := s.ch.UploadImage(r.Context(), chi.URLParam(r, "id"), field, r.Body)
	if r.Context().Err() != nil {
		// client gone or timed out; chimw.Timeout owns the response
		return
	}
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCommitDraft(w http.ResponseWriter, r *http.Request) {
	v, idx, err := s.ch.CommitDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleRes{Index: idx, Vehicle: v})
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.ch.DiscardDraft(chi.URLParam(r, "id")); err != nil {
		s.respondCatalogErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondCatalogErr writes a mapped error; validation errors list the
// missing fields.
func (s *Server) respondCatalogErr(w http.ResponseWriter, err error) {
	code, msg := errorStatus(err)
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		writeError(w, code, msg, map[string]any{"fields": verr.Fields})
		return
	}
	writeError(w, code, msg, nil)
}

// indexParam parses {index}; on failure it writes a 400 and returns false.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 {
		writeError(w, http.StatusBadRequest, "bad_index", nil)
		return 0, false
	}
	return idx, true
}
