package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// CreateConferenceRequest is the request body for POST /conferences. Dates use YYYY-MM-DD.
// Omitted city and topics fall back to defaults.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	} else if c.MaxAttendees > domain.MaxAttendeesLimit {
		errs = append(errs, "max_attendees is too large")
	}
	return errs
}

// UpdateConferenceRequest is the request body for PUT /conferences/{conferenceID}.
// All fields optional; omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Topics       *[]string `json:"topics"`
	City         *string   `json:"city"`
	StartDate    *string   `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	MaxAttendees *int      `json:"max_attendees"`
}

// Validate implements Validator.
func (u UpdateConferenceRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.MaxAttendees != nil {
		if *u.MaxAttendees < 0 {
			errs = append(errs, "max_attendees must not be negative")
		} else if *u.MaxAttendees > domain.MaxAttendeesLimit {
			errs = append(errs, "max_attendees is too large")
		}
	}
	return errs
}

func (u UpdateConferenceRequest) patch() domain.ConferencePatch {
	p := domain.ConferencePatch{
		Name:         u.Name,
		Description:  u.Description,
		City:         u.City,
		StartDate:    u.StartDate,
		EndDate:      u.EndDate,
		MaxAttendees: u.MaxAttendees,
	}
	if u.Topics != nil {
		p.Topics = *u.Topics
		if p.Topics == nil {
			p.Topics = []string{}
		}
	}
	return p
}

// QueryConferencesRequest is the request body for POST /conferences/query.
// Filters are combined with AND; an empty list returns every conference ordered by name.
type QueryConferencesRequest struct {
	Filters []domain.Filter `json:"filters"`
}

// Validate implements Validator.
func (q QueryConferencesRequest) Validate() []string {
	var errs []string
	for i, f := range q.Filters {
		if strings.TrimSpace(f.Field) == "" || strings.TrimSpace(f.Operator) == "" {
			errs = append(errs, "filter "+strconv.Itoa(i)+": field and operator are required")
		}
	}
	return errs
}

// ConferenceSuccessResponse is the success response envelope for a single conference.
type ConferenceSuccessResponse struct {
	Data  *domain.ConferenceWithOrganizer `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

// ConferenceListSuccessResponse is the success response envelope for conference lists.
type ConferenceListSuccessResponse struct {
	Data  []*domain.ConferenceWithOrganizer `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{Logger: logger, Service: svc}
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference organized by the caller. seats_available starts at max_attendees and month is taken from start_date. A confirmation email is sent to the organizer.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body CreateConferenceRequest true "Conference data"
// @Success 201 {object} helpers.APIResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	conf, err := c.Service.CreateConference(r.Context(), id, domain.ConferenceInput{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Topics:       req.Topics,
		City:         req.City,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, conf)
}

// GetConference godoc
// @Summary Get a conference
// @Description Returns the conference with its organizer's display name.
// @Tags conferences
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathID(w, r, "conferenceID")
	if !ok {
		return
	}
	conf, err := c.Service.GetConference(r.Context(), conferenceID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Applies the provided fields. Only the organizer may update. Changing max_attendees shifts seats_available by the same amount and fails with 409 if more seats are held than the new capacity.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param conference body UpdateConferenceRequest true "Fields to change"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	conf, err := c.Service.UpdateConference(r.Context(), id, conferenceID, req.patch())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// QueryConferences godoc
// @Summary Query conferences
// @Description Filters conferences by city, topics, month and max_attendees. Operators: EQ, GT, GTEQ, LT, LTEQ, NE. At most one field may use operators other than EQ; results are then sorted by that field, then by name.
// @Tags conferences
// @Accept json
// @Produce json
// @Param query body QueryConferencesRequest true "Filters"
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	confs, err := c.Service.QueryConferences(r.Context(), req.Filters)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

// ListCreated godoc
// @Summary List conferences created by the caller
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) ListCreated(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	confs, err := c.Service.ListCreated(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}
