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

type assigneeBody struct {
	Name     string `json:"name" validate:"required"`
	Initials string `json:"initials"`
}

type timelineEventBody struct {
	Time  time.Time `json:"time" validate:"required"`
	Event string    `json:"event" validate:"required"`
}

type incidentRequest struct {
	Title             string              `json:"title" validate:"required"`
	Description       string              `json:"description"`
	Severity          string              `json:"severity" validate:"required"`
	Status            string              `json:"status" validate:"required"`
	Type              string              `json:"type"`
	AdditionalDetails string              `json:"additional_details"`
	Assignee          *assigneeBody       `json:"assignee"`
	AffectedSystems   []string            `json:"affected_systems"`
	Timeline          []timelineEventBody `json:"timeline"`
}

func (x *incidentRequest) toModel() *model.Incident {
	inc := &model.Incident{
		Title:             x.Title,
		Description:       x.Description,
		Severity:          types.Severity(x.Severity),
		Status:            types.Status(x.Status),
		Type:              types.IncidentType(x.Type),
		AdditionalDetails: x.AdditionalDetails,
		AffectedSystems:   x.AffectedSystems,
	}
	if x.Assignee != nil {
		inc.Assignee = &model.Assignee{
			Name:     x.Assignee.Name,
			Initials: x.Assignee.Initials,
		}
	}
	for _, ev := range x.Timeline {
		inc.Timeline = append(inc.Timeline, model.TimelineEvent{
			Time:  ev.Time,
			Event: ev.Event,
		})
	}
	return inc
}

type incidentResponse struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Severity          string              `json:"severity"`
	Status            string              `json:"status"`
	Type              string              `json:"type"`
	AdditionalDetails string              `json:"additional_details"`
	Assignee          *assigneeBody       `json:"assignee"`
	AffectedSystems   []string            `json:"affected_systems"`
	Timeline          []timelineEventBody `json:"timeline"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func incidentToResponse(inc *model.Incident) *incidentResponse {
	resp := &incidentResponse{
		ID:                inc.ID.String(),
		Title:             inc.Title,
		Description:       inc.Description,
		Severity:          inc.Severity.String(),
		Status:            inc.Status.String(),
		Type:              inc.Type.String(),
		AdditionalDetails: inc.AdditionalDetails,
		AffectedSystems:   inc.AffectedSystems,
		Timeline:          make([]timelineEventBody, 0, len(inc.Timeline)),
		CreatedAt:         inc.CreatedAt,
		UpdatedAt:         inc.UpdatedAt,
	}
	if resp.AffectedSystems == nil {
		resp.AffectedSystems = []string{}
	}
	if inc.Assignee != nil {
		resp.Assignee = &assigneeBody{
			Name:     inc.Assignee.Name,
			Initials: inc.Assignee.Initials,
		}
	}
	for _, ev := range inc.Timeline {
		resp.Timeline = append(resp.Timeline, timelineEventBody{
			Time:  ev.Time,
			Event: ev.Event,
		})
	}
	return resp
}

func (s *Server) listIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := s.uc.Incident.List(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filter := model.IncidentFilter{
		Tab:      q.Get("tab"),
		Status:   q.Get("status"),
		Severity: q.Get("severity"),
		Type:     q.Get("type"),
		Query:    q.Get("q"),
	}
	incidents = model.FilterIncidents(incidents, filter)

	resp := make([]*incidentResponse, 0, len(incidents))
	for _, inc := range incidents {
		resp = append(resp, incidentToResponse(inc))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) createIncident(w http.ResponseWriter, r *http.Request) {
	var req incidentRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.Incident.Create(r.Context(), req.toModel())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	respondJSON(w, r, http.StatusCreated, incidentToResponse(created))
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	id := types.IncidentID(chi.URLParam(r, "incidentID"))

	inc, err := s.uc.Incident.Get(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	if inc == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("incident not found", goerr.V("id", id)), http.StatusNotFound)
		return
	}

	respondJSON(w, r, http.StatusOK, incidentToResponse(inc))
}

func (s *Server) updateIncident(w http.ResponseWriter, r *http.Request) {
	id := types.IncidentID(chi.URLParam(r, "incidentID"))

	existing, err := s.uc.Incident.Get(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	if existing == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("incident not found", goerr.V("id", id)), http.StatusNotFound)
		return
	}

	var req incidentRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	inc := req.toModel()
	inc.ID = id
	updated, err := s.uc.Incident.Update(r.Context(), inc)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	respondJSON(w, r, http.StatusOK, incidentToResponse(updated))
}

func (s *Server) deleteIncident(w http.ResponseWriter, r *http.Request) {
	id := types.IncidentID(chi.URLParam(r, "incidentID"))

	if err := s.uc.Incident.Delete(r.Context(), id); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type appendTimelineRequest struct {
	Events []timelineEventBody `json:"events" validate:"required,min=1,dive"`
}

func (s *Server) appendTimelineEvents(w http.ResponseWriter, r *http.Request) {
	id := types.IncidentID(chi.URLParam(r, "incidentID"))

	var req appendTimelineRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	events := make([]model.TimelineEvent, 0, len(req.Events))
	for _, ev := range req.Events {
		events = append(events, model.TimelineEvent{Time: ev.Time, Event: ev.Event})
	}

	updated, err := s.uc.Incident.AppendEvent(r.Context(), id, events...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrIncidentNotFound) {
			status = http.StatusNotFound
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	respondJSON(w, r, http.StatusOK, incidentToResponse(updated))
}
