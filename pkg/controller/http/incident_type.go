package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/usecase"
	"github.com/secops-lab/incidentdesk/pkg/utils/errutil"
)

type customTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type incidentTypesResponse struct {
	Builtin []string             `json:"builtin"`
	Custom  []customTypeResponse `json:"custom"`
}

func (s *Server) listIncidentTypes(w http.ResponseWriter, r *http.Request) {
	customTypes, err := s.uc.CustomType.List(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	resp := incidentTypesResponse{
		Builtin: make([]string, 0, len(s.typeCatalog)),
		Custom:  make([]customTypeResponse, 0, len(customTypes)),
	}
	resp.Builtin = append(resp.Builtin, s.typeCatalog...)
	for _, ct := range customTypes {
		resp.Custom = append(resp.Custom, customTypeResponse{
			ID:        ct.ID.String(),
			Name:      ct.Name,
			CreatedAt: ct.CreatedAt,
		})
	}

	respondJSON(w, r, http.StatusOK, resp)
}

type createIncidentTypeRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) createIncidentType(w http.ResponseWriter, r *http.Request) {
	var req createIncidentTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.CustomType.Create(r.Context(), req.Name)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, usecase.ErrDuplicateType) {
			status = http.StatusConflict
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	respondJSON(w, r, http.StatusCreated, customTypeResponse{
		ID:        created.ID.String(),
		Name:      created.Name,
		CreatedAt: created.CreatedAt,
	})
}

func (s *Server) deleteIncidentType(w http.ResponseWriter, r *http.Request) {
	id := types.TypeID(chi.URLParam(r, "typeID"))

	if err := s.uc.CustomType.Delete(r.Context(), id); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
