package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"campusevents/internal/domain"
	"campusevents/internal/dto"
)

func eventID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadEventID
	}
	return id, nil
}

func toEventList(events []domain.Event) dto.EventListResponse {
	out := dto.EventListResponse{Events: make([]dto.EventResponse, 0, len(events))}
	for i := range events {
		out.Events = append(out.Events, dto.FromEvent(&events[i]))
	}
	return out
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventList(events))
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	var req dto.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingFields)
		return
	}
	evt, err := h.Events.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromEvent(evt))
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	evt, err := h.Events.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromEvent(evt))
}

func (h *Handler) patchEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	id, err := eventID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req dto.EventPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingFields)
		return
	}
	evt, err := h.Events.Update(r.Context(), actor, id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromEvent(evt))
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	id, err := eventID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Events.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Event deleted"})
}

func (h *Handler) uploadEventImage(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	id, err := eventID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, domain.ErrMissingFields)
		return
	}
	defer file.Close()

	url, err := h.Events.SetImage(r.Context(), actor, id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Image uploaded", "image_url": url})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	var req dto.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EventID <= 0 {
		writeError(w, domain.ErrBadEventID)
		return
	}
	if err := h.Events.Register(r.Context(), user.Email, req.EventID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Registered successfully."})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	var req dto.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EventID <= 0 {
		writeError(w, domain.ErrBadEventID)
		return
	}
	if err := h.Events.Unregister(r.Context(), user.Email, req.EventID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Unregistered successfully."})
}

func (h *Handler) myEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	events, err := h.Events.ListForUser(r.Context(), user.Email, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventList(events))
}
