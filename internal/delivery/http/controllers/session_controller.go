package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// CreateSessionRequest is the request body for POST /conferences/{conferenceID}/sessions.
// date uses YYYY-MM-DD and start_time uses HH:MM.
type CreateSessionRequest struct {
	Name            string   `json:"name"`
	Highlights      []string `json:"highlights"`
	Speaker         string   `json:"speaker"`
	DurationMinutes int      `json:"duration_minutes"`
	TypeOfSession   string   `json:"type_of_session"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
}

// Validate implements Validator.
func (s CreateSessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if s.DurationMinutes < 0 {
		errs = append(errs, "duration_minutes must not be negative")
	}
	return errs
}

// SessionListSuccessResponse is the success response envelope for session lists.
type SessionListSuccessResponse struct {
	Data  []*domain.Session `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{Logger: logger, Service: svc}
}

// CreateSession godoc
// @Summary Create a session
// @Description Adds a session to a conference. Only the organizer may add sessions. Omitted fields fall back to defaults (speaker "none").
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} helpers.APIResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	session, err := c.Service.CreateSession(r.Context(), id, conferenceID, domain.SessionInput{
		Name:            strings.TrimSpace(req.Name),
		Highlights:      req.Highlights,
		Speaker:         strings.TrimSpace(req.Speaker),
		DurationMinutes: req.DurationMinutes,
		TypeOfSession:   strings.TrimSpace(req.TypeOfSession),
		Date:            req.Date,
		StartTime:       req.StartTime,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// ListByConference godoc
// @Summary List sessions of a conference
// @Description Returns the conference's sessions in creation order.
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [get]
func (c *SessionController) ListByConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathID(w, r, "conferenceID")
	if !ok {
		return
	}
	sessions, err := c.Service.ListByConference(r.Context(), conferenceID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ListByConferenceAndType godoc
// @Summary List sessions of a conference by type
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param type path string true "Type of session"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions/type/{type} [get]
func (c *SessionController) ListByConferenceAndType(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathID(w, r, "conferenceID")
	if !ok {
		return
	}
	typeOfSession := r.PathValue("type")
	if typeOfSession == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing type")
		return
	}
	sessions, err := c.Service.ListByConferenceAndType(r.Context(), conferenceID, typeOfSession)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ListBySpeaker godoc
// @Summary List sessions by speaker
// @Description Returns the speaker's sessions across all conferences ordered by name.
// @Tags sessions
// @Produce json
// @Param speaker path string true "Speaker name"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/speaker/{speaker} [get]
func (c *SessionController) ListBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := r.PathValue("speaker")
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speaker")
		return
	}
	sessions, err := c.Service.ListBySpeaker(r.Context(), speaker)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
