package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"partyplanner/internal/delivery/http/helpers"
	"partyplanner/internal/delivery/http/middleware"
	"partyplanner/internal/domain"
)

// maxPhotoUploadBytes caps multipart photo uploads.
const maxPhotoUploadBytes = 10 << 20

// kindFromPath maps the collection segment of the URL to a submission kind.
var kindFromPath = map[string]domain.SubmissionKind{
	"tracks":   domain.KindTrack,
	"costumes": domain.KindCostume,
	"photos":   domain.KindPhoto,
}

type SubmissionController struct {
	Logger    *slog.Logger
	Service   domain.SubmissionService
	BlobStore domain.BlobStore
}

func NewSubmissionController(logger *slog.Logger, svc domain.SubmissionService, blobStore domain.BlobStore) *SubmissionController {
	return &SubmissionController{
		Logger:    logger,
		Service:   svc,
		BlobStore: blobStore,
	}
}

// SubmitRequest is the request body for POST /events/{eventID}/{tracks|costumes|photos}.
// URL is the track reference for tracks and the image URL otherwise; caption
// holds the costume title or photo caption.
type SubmitRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// Submit godoc
// @Summary Submit content to an event
// @Description Creates a track, costume, or photo submission with zero votes. Track references are normalized to the canonical open.spotify.com URL before storing.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param kind path string true "Collection: tracks, costumes, or photos"
// @Param body body controllers.SubmitRequest true "Submission payload"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/{kind} [post]
func (c *SubmissionController) Submit(w http.ResponseWriter, r *http.Request) {
	eventID, kind, ok := c.eventAndKind(w, r)
	if !ok {
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SubmitRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	sub, err := c.Service.Submit(r.Context(), kind, eventID, userID, domain.SubmissionPayload{
		URL:     req.URL,
		Caption: req.Caption,
	})
	if err != nil {
		c.writeSubmitError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// List godoc
// @Summary List an event's submissions
// @Description Lists submissions of one kind for an event, most-voted first with ties in insertion order.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param kind path string true "Collection: tracks, costumes, or photos"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/{kind} [get]
func (c *SubmissionController) List(w http.ResponseWriter, r *http.Request) {
	eventID, kind, ok := c.eventAndKind(w, r)
	if !ok {
		return
	}

	subs, err := c.Service.ListByEvent(r.Context(), kind, eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}

// UploadPhoto godoc
// @Summary Upload a photo
// @Description Accepts a multipart photo upload, stores the file in the blob store, and creates a photo submission pointing at its public URL.
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param file formData file true "Image file"
// @Param caption formData string false "Caption"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/photos/upload [post]
func (c *SubmissionController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if c.BlobStore == nil {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "photo storage not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file must be an image")
		return
	}

	key := fmt.Sprintf("events/%s/photos/%s%s", eventID, uuid.NewString(), filepath.Ext(header.Filename))
	publicURL, err := c.BlobStore.Put(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "photo upload failed", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "photo upload failed")
		return
	}

	sub, err := c.Service.Submit(r.Context(), domain.KindPhoto, eventID, userID, domain.SubmissionPayload{
		URL:     publicURL,
		Caption: r.FormValue("caption"),
	})
	if err != nil {
		c.writeSubmitError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// Vote godoc
// @Summary Vote for a submission
// @Description Atomically increments the submission's vote counter and returns the new count.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param submissionID path string true "Submission ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /submissions/{submissionID}/votes [post]
func (c *SubmissionController) Vote(w http.ResponseWriter, r *http.Request) {
	submissionID := r.PathValue("submissionID")
	if !uuidRegex.MatchString(submissionID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid submissionID")
		return
	}

	votes, err := c.Service.Vote(r.Context(), submissionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "submission not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]int{"votes": votes})
}

func (c *SubmissionController) eventAndKind(w http.ResponseWriter, r *http.Request) (string, domain.SubmissionKind, bool) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return "", "", false
	}
	kind, ok := kindFromPath[r.PathValue("kind")]
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown submission kind")
		return "", "", false
	}
	return eventID, kind, true
}

func (c *SubmissionController) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid submission payload")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
