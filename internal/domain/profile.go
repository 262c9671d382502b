package domain

import (
	"context"
	"slices"
	"time"
)

// TeeShirtNotSpecified is the tee-shirt size of a freshly created profile.
const TeeShirtNotSpecified = "NOT_SPECIFIED"

// TeeShirtSizes lists the accepted tee-shirt sizes.
var TeeShirtSizes = []string{
	TeeShirtNotSpecified,
	"XS_M", "XS_W", "S_M", "S_W", "M_M", "M_W", "L_M", "L_W",
	"XL_M", "XL_W", "XXL_M", "XXL_W", "XXXL_M", "XXXL_W",
}

// Profile is a user's registration state. RegisteredConferenceIDs and
// WishlistSessionIDs have set semantics.
// swagger:model Profile
type Profile struct {
	UserID                  string    `json:"user_id"`
	DisplayName             string    `json:"display_name"`
	MainEmail               string    `json:"main_email"`
	TeeShirtSize            string    `json:"tee_shirt_size"`
	RegisteredConferenceIDs []string  `json:"registered_conference_ids"`
	WishlistSessionIDs      []string  `json:"wishlist_session_ids"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// NewProfile returns a profile with default fields for the given identity.
func NewProfile(id Identity, now time.Time) *Profile {
	return &Profile{
		UserID:                  id.UserID,
		DisplayName:             id.DisplayName,
		MainEmail:               id.Email,
		TeeShirtSize:            TeeShirtNotSpecified,
		RegisteredConferenceIDs: []string{},
		WishlistSessionIDs:      []string{},
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// IsRegistered reports whether a seat is held for the conference.
func (p *Profile) IsRegistered(conferenceID string) bool {
	return slices.Contains(p.RegisteredConferenceIDs, conferenceID)
}

// AddRegistration adds conferenceID to the registered set. It returns false if already present.
func (p *Profile) AddRegistration(conferenceID string) bool {
	if p.IsRegistered(conferenceID) {
		return false
	}
	p.RegisteredConferenceIDs = append(p.RegisteredConferenceIDs, conferenceID)
	return true
}

// RemoveRegistration removes conferenceID from the registered set. It returns false if absent.
func (p *Profile) RemoveRegistration(conferenceID string) bool {
	n := len(p.RegisteredConferenceIDs)
	p.RegisteredConferenceIDs = slices.DeleteFunc(p.RegisteredConferenceIDs, func(id string) bool { return id == conferenceID })
	return len(p.RegisteredConferenceIDs) != n
}

// InWishlist reports whether the session is in the wishlist.
func (p *Profile) InWishlist(sessionID string) bool {
	return slices.Contains(p.WishlistSessionIDs, sessionID)
}

// AddToWishlist adds sessionID to the wishlist. It returns false if already present.
func (p *Profile) AddToWishlist(sessionID string) bool {
	if p.InWishlist(sessionID) {
		return false
	}
	p.WishlistSessionIDs = append(p.WishlistSessionIDs, sessionID)
	return true
}

// RemoveFromWishlist removes sessionID from the wishlist. It returns false if absent.
func (p *Profile) RemoveFromWishlist(sessionID string) bool {
	n := len(p.WishlistSessionIDs)
	p.WishlistSessionIDs = slices.DeleteFunc(p.WishlistSessionIDs, func(id string) bool { return id == sessionID })
	return len(p.WishlistSessionIDs) != n
}

// ProfileRepository defines the interface for profile storage.
// Methods run inside the transaction carried by ctx when there is one.
type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]*Profile, error)
	Update(ctx context.Context, p *Profile) error
}

// ProfileService defines operations on the caller's own profile.
type ProfileService interface {
	GetProfile(ctx context.Context, id Identity) (*Profile, error)
	SaveProfile(ctx context.Context, id Identity, displayName, teeShirtSize string) (*Profile, error)
}

// RegistrationService moves seats between a conference and a profile.
type RegistrationService interface {
	// Register takes a seat for the caller. It fails with ErrNotFound, or ErrConflict
	// when already registered or sold out.
	Register(ctx context.Context, id Identity, conferenceID string) (bool, error)
	// Unregister gives the seat back. It returns false without changes when the caller was not registered.
	Unregister(ctx context.Context, id Identity, conferenceID string) (bool, error)
	ListAttending(ctx context.Context, id Identity) ([]*ConferenceWithOrganizer, error)
}

// WishlistService manages the caller's session wishlist.
type WishlistService interface {
	AddToWishlist(ctx context.Context, id Identity, sessionID string) (bool, error)
	RemoveFromWishlist(ctx context.Context, id Identity, sessionID string) (bool, error)
	ListWishlist(ctx context.Context, id Identity) ([]*Session, error)
	ListWishlistByType(ctx context.Context, id Identity, typeOfSession string) ([]*Session, error)
	ListWishlistBySpeaker(ctx context.Context, id Identity, speaker string) ([]*Session, error)
}
