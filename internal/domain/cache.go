package domain

import "context"

// NearlySoldOutThreshold is the inclusive upper bound of seats left for a
// conference to be listed in the announcement.
const NearlySoldOutThreshold = 5

// FeaturedSpeaker is a derived fact: a speaker with more than one session in a
// conference. It is not authoritative and may be stale or absent.
// swagger:model FeaturedSpeaker
type FeaturedSpeaker struct {
	ConferenceID string   `json:"conference_id"`
	Speaker      string   `json:"speaker"`
	SessionNames []string `json:"session_names"`
}

// DerivedFactCache holds best-effort derived facts. Absence is always a valid
// state and readers never see errors.
type DerivedFactCache interface {
	SetAnnouncement(text string)
	DeleteAnnouncement()
	Announcement() (string, bool)
	SetFeaturedSpeaker(entry FeaturedSpeaker)
	FeaturedSpeaker(conferenceID string) (FeaturedSpeaker, bool)
}

// DerivedFactService recomputes and serves derived facts.
type DerivedFactService interface {
	// RecomputeAnnouncement rebuilds the announcement from nearly sold out
	// conferences, clearing it when none match. It returns the new text.
	RecomputeAnnouncement(ctx context.Context) (string, error)
	// RecomputeFeaturedSpeaker checks whether speaker has more than one session
	// in the conference and, if so, stores the entry.
	RecomputeFeaturedSpeaker(ctx context.Context, conferenceID, speaker string) error
	Announcement() (string, bool)
	// FeaturedSpeaker fails with ErrNotFound only when the conference does not exist.
	FeaturedSpeaker(ctx context.Context, conferenceID string) (FeaturedSpeaker, bool, error)
}
