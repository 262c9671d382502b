package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

const noFeaturedSpeakerMessage = "There are no featured speakers for this conference."

// AnnouncementResponse is the data payload of GET /announcement. Announcement is empty when nothing is nearly sold out.
type AnnouncementResponse struct {
	Announcement string `json:"announcement"`
}

// FeaturedSpeakerResponse is the data payload of GET /conferences/{conferenceID}/featured-speaker.
type FeaturedSpeakerResponse struct {
	Featured     bool     `json:"featured"`
	ConferenceID string   `json:"conference_id"`
	Speaker      string   `json:"speaker,omitempty"`
	SessionNames []string `json:"session_names,omitempty"`
	Message      string   `json:"message,omitempty"`
}

type DerivedFactController struct {
	Logger  *slog.Logger
	Service domain.DerivedFactService
}

func NewDerivedFactController(logger *slog.Logger, svc domain.DerivedFactService) *DerivedFactController {
	return &DerivedFactController{Logger: logger, Service: svc}
}

// GetAnnouncement godoc
// @Summary Get the nearly sold out announcement
// @Description Lists conferences with five or fewer seats left. The text is refreshed periodically and may lag behind registrations.
// @Tags announcements
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains announcement"
// @Router /announcement [get]
func (c *DerivedFactController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	text, _ := c.Service.Announcement()
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{Announcement: text})
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured speaker of a conference
// @Description Returns a speaker with more than one session in the conference. featured is false when none has been recorded.
// @Tags announcements
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the featured speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/featured-speaker [get]
func (c *DerivedFactController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathID(w, r, "conferenceID")
	if !ok {
		return
	}
	entry, found, err := c.Service.FeaturedSpeaker(r.Context(), conferenceID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if !found {
		helpers.WriteJSONSuccess(w, http.StatusOK, FeaturedSpeakerResponse{
			ConferenceID: conferenceID,
			Message:      noFeaturedSpeakerMessage,
		})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FeaturedSpeakerResponse{
		Featured:     true,
		ConferenceID: entry.ConferenceID,
		Speaker:      entry.Speaker,
		SessionNames: entry.SessionNames,
	})
}
