package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

type WishlistController struct {
	Logger  *slog.Logger
	Service domain.WishlistService
}

func NewWishlistController(logger *slog.Logger, svc domain.WishlistService) *WishlistController {
	return &WishlistController{Logger: logger, Service: svc}
}

// AddToWishlist godoc
// @Summary Add a session to the caller's wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} controllers.ResultSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist/{sessionID} [post]
func (c *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := helpers.PathID(w, r, "sessionID")
	if !ok {
		return
	}
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	added, err := c.Service.AddToWishlist(r.Context(), id, sessionID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ResultResponse{Result: added})
}

// RemoveFromWishlist godoc
// @Summary Remove a session from the caller's wishlist
// @Description result is false when the session was not in the wishlist.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} controllers.ResultSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist/{sessionID} [delete]
func (c *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := helpers.PathID(w, r, "sessionID")
	if !ok {
		return
	}
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	removed, err := c.Service.RemoveFromWishlist(r.Context(), id, sessionID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ResultResponse{Result: removed})
}

// ListWishlist godoc
// @Summary List the caller's wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist [get]
func (c *WishlistController) ListWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	sessions, err := c.Service.ListWishlist(r.Context(), id)
	c.writeSessions(w, r, sessions, err)
}

// ListWishlistByType godoc
// @Summary List wishlist sessions of a type
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param type path string true "Type of session"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist/type/{type} [get]
func (c *WishlistController) ListWishlistByType(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	sessions, err := c.Service.ListWishlistByType(r.Context(), id, r.PathValue("type"))
	c.writeSessions(w, r, sessions, err)
}

// ListWishlistBySpeaker godoc
// @Summary List wishlist sessions by a speaker
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param speaker path string true "Speaker name"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist/speaker/{speaker} [get]
func (c *WishlistController) ListWishlistBySpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	sessions, err := c.Service.ListWishlistBySpeaker(r.Context(), id, r.PathValue("speaker"))
	c.writeSessions(w, r, sessions, err)
}

func (c *WishlistController) writeSessions(w http.ResponseWriter, r *http.Request, sessions []*domain.Session, err error) {
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
