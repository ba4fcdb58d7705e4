package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/usecase"
	"github.com/secops-lab/incidentdesk/pkg/utils/errutil"
)

type leakRequest struct {
	Email              string    `json:"email" validate:"required,email"`
	Username           string    `json:"username" validate:"required"`
	NotificationDate   time.Time `json:"notification_date" validate:"required"`
	NotificationSource string    `json:"notification_source" validate:"required"`
	ActionTaken        string    `json:"action_taken"`
	PartialPassword    string    `json:"partial_password"`
}

func (x *leakRequest) toModel() *model.CredentialLeak {
	return &model.CredentialLeak{
		Email:              x.Email,
		Username:           x.Username,
		NotificationDate:   x.NotificationDate,
		NotificationSource: x.NotificationSource,
		ActionTaken:        x.ActionTaken,
		PartialPassword:    x.PartialPassword,
	}
}

type leakResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Username           string    `json:"username"`
	NotificationDate   time.Time `json:"notification_date"`
	NotificationSource string    `json:"notification_source"`
	ActionTaken        string    `json:"action_taken"`
	PartialPassword    string    `json:"partial_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func leakToResponse(leak *model.CredentialLeak) *leakResponse {
	return &leakResponse{
		ID:                 leak.ID.String(),
		Email:              leak.Email,
		Username:           leak.Username,
		NotificationDate:   leak.NotificationDate,
		NotificationSource: leak.NotificationSource,
		ActionTaken:        leak.ActionTaken,
		PartialPassword:    leak.PartialPassword,
		CreatedAt:          leak.CreatedAt,
		UpdatedAt:          leak.UpdatedAt,
	}
}

type leakLogResponse struct {
	ID            string            `json:"id"`
	LeakID        string            `json:"leak_id"`
	Action        string            `json:"action"`
	UserID        string            `json:"user_id,omitempty"`
	Old           *leakResponse     `json:"old,omitempty"`
	New           *leakResponse     `json:"new,omitempty"`
	ChangedFields map[string]string `json:"changed_fields,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

func leakLogToResponse(entry *model.CredentialLeakLog) *leakLogResponse {
	resp := &leakLogResponse{
		ID:            entry.ID.String(),
		LeakID:        entry.LeakID.String(),
		Action:        entry.Action.String(),
		UserID:        entry.UserID,
		ChangedFields: entry.Details.ChangedFields,
		CreatedAt:     entry.CreatedAt,
	}
	if entry.Details.Old != nil {
		resp.Old = leakToResponse(entry.Details.Old)
	}
	if entry.Details.New != nil {
		resp.New = leakToResponse(entry.Details.New)
	}
	return resp
}

func (s *Server) listLeaks(w http.ResponseWriter, r *http.Request) {
	leaks, err := s.uc.Leak.List(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	leaks = model.FilterLeaks(leaks, model.LeakFilter{Query: r.URL.Query().Get("q")})

	resp := make([]*leakResponse, 0, len(leaks))
	for _, leak := range leaks {
		resp = append(resp, leakToResponse(leak))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) createLeak(w http.ResponseWriter, r *http.Request) {
	var req leakRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.Leak.Create(r.Context(), req.toModel())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	respondJSON(w, r, http.StatusCreated, leakToResponse(created))
}

func (s *Server) getLeak(w http.ResponseWriter, r *http.Request) {
	id := types.LeakID(chi.URLParam(r, "leakID"))

	leak, err := s.uc.Leak.Get(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	if leak == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("credential leak not found", goerr.V("id", id)), http.StatusNotFound)
		return
	}

	respondJSON(w, r, http.StatusOK, leakToResponse(leak))
}

func (s *Server) updateLeak(w http.ResponseWriter, r *http.Request) {
	id := types.LeakID(chi.URLParam(r, "leakID"))

	var req leakRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	leak := req.toModel()
	leak.ID = id
	updated, err := s.uc.Leak.Update(r.Context(), leak)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, usecase.ErrLeakNotFound) {
			status = http.StatusNotFound
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	respondJSON(w, r, http.StatusOK, leakToResponse(updated))
}

func (s *Server) deleteLeak(w http.ResponseWriter, r *http.Request) {
	id := types.LeakID(chi.URLParam(r, "leakID"))

	if err := s.uc.Leak.Delete(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrLeakNotFound) {
			status = http.StatusNotFound
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listLeakLogs(w http.ResponseWriter, r *http.Request) {
	id := types.LeakID(chi.URLParam(r, "leakID"))

	entries, err := s.uc.Leak.Logs(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	resp := make([]*leakLogResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, leakLogToResponse(entry))
	}
	respondJSON(w, r, http.StatusOK, resp)
}
