package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"partyplanner/internal/delivery/http/controllers"
	"partyplanner/internal/delivery/http/middleware"
	"partyplanner/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// The /respond/ routes are public: the unguessable invite code is the only
// credential a guest has. Everything else requires a bearer token.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	invitationController *controllers.InvitationController,
	submissionController *controllers.SubmissionController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Invitations
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(invitationController.CreateInvitation))
	mux.HandleFunc("GET /events/{eventID}/invitations", auth(invitationController.ListInvitations))
	mux.HandleFunc("GET /respond/{inviteCode}", invitationController.ResolveInvitation)
	mux.HandleFunc("POST /respond/{inviteCode}", invitationController.Respond)

	// Submissions and voting
	mux.HandleFunc("POST /events/{eventID}/photos/upload", auth(submissionController.UploadPhoto))
	mux.HandleFunc("POST /events/{eventID}/{kind}", auth(submissionController.Submit))
	mux.HandleFunc("GET /events/{eventID}/{kind}", auth(submissionController.List))
	mux.HandleFunc("POST /submissions/{submissionID}/votes", auth(submissionController.Vote))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
