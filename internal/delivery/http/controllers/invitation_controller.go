package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"partyplanner/internal/delivery/http/helpers"
	"partyplanner/internal/domain"
)

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvitationRequest is the request body for POST /events/{eventID}/invitations.
type CreateInvitationRequest struct {
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
}

// Validate implements helpers.Validator.
func (r *CreateInvitationRequest) Validate() []string {
	var errs []string
	r.GuestName = strings.TrimSpace(r.GuestName)
	r.GuestEmail = strings.TrimSpace(r.GuestEmail)
	if r.GuestName == "" {
		errs = append(errs, "guest_name is required")
	}
	if r.GuestEmail != "" {
		if _, err := mail.ParseAddress(r.GuestEmail); err != nil {
			errs = append(errs, "guest_email is not a valid email address")
		}
	}
	return errs
}

// InvitationWithLink is an invitation plus its public response link.
// swagger:model InvitationWithLink
type InvitationWithLink struct {
	*domain.Invitation
	InviteLink string `json:"invite_link"`
}

// CreateInvitation godoc
// @Summary Invite a guest
// @Description Creates a pending invitation for the event and returns it with the response link. The guest receives an email when an address is given.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.CreateInvitationRequest true "Guest details"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *InvitationController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	inv, err := c.Service.CreateInvitation(r.Context(), eventID, req.GuestName, req.GuestEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, InvitationWithLink{
		Invitation: inv,
		InviteLink: c.Service.InviteLink(inv.InviteCode),
	})
}

// ListInvitations godoc
// @Summary List an event's invitations
// @Description Lists the event's invitations newest first, each with its response link.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	invs, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	out := make([]InvitationWithLink, 0, len(invs))
	for _, inv := range invs {
		out = append(out, InvitationWithLink{
			Invitation: inv,
			InviteLink: c.Service.InviteLink(inv.InviteCode),
		})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// ResolveInvitation godoc
// @Summary Resolve an invite code
// @Description Returns the invitation and its event for the guest's response page. No authentication: the unguessable code is the credential.
// @Tags invitations
// @Produce json
// @Param inviteCode path string true "Invite code"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /respond/{inviteCode} [get]
func (c *InvitationController) ResolveInvitation(w http.ResponseWriter, r *http.Request) {
	inviteCode := r.PathValue("inviteCode")
	if inviteCode == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invite code")
		return
	}

	resolved, err := c.Service.Resolve(r.Context(), inviteCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resolved)
}

// RespondRequest is the request body for POST /respond/{inviteCode}.
type RespondRequest struct {
	Decision string `json:"decision"`
}

// Validate implements helpers.Validator.
func (r *RespondRequest) Validate() []string {
	if _, err := domain.ParseDecision(r.Decision); err != nil {
		return []string{`decision must be "accepted" or "declined"`}
	}
	return nil
}

// RespondResponse reports the invitation after a response attempt. Changed is
// false when the guest had already responded; the stored status is returned
// unchanged in that case.
type RespondResponse struct {
	Invitation *domain.Invitation `json:"invitation"`
	Changed    bool               `json:"changed"`
}

// Respond godoc
// @Summary Respond to an invitation
// @Description Records the guest's accept/decline decision. The first response wins; repeated calls return the stored status without modifying it.
// @Tags invitations
// @Accept json
// @Produce json
// @Param inviteCode path string true "Invite code"
// @Param body body controllers.RespondRequest true "Decision"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /respond/{inviteCode} [post]
func (c *InvitationController) Respond(w http.ResponseWriter, r *http.Request) {
	inviteCode := r.PathValue("inviteCode")
	if inviteCode == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invite code")
		return
	}

	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	decision, _ := domain.ParseDecision(req.Decision)

	inv, changed, err := c.Service.Respond(r.Context(), inviteCode, decision)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid decision")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RespondResponse{Invitation: inv, Changed: changed})
}
